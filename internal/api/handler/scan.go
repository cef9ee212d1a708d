package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/internal/usecases/auditing"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
)

// RunScan executa uma auditoria de SEO/privacidade/acessibilidade em um site
func RunScan(service auditing.ScanService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunScan")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req auditing.ScanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.URL == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "URL do site não fornecida", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"user_id": userClaims.UserID,
			"url":     req.URL,
			"mode":    req.Mode,
		}).Info("Iniciando auditoria de site")

		result, err := service.Scan(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, auditing.ErrInvalidURL):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "URL inválida", nil)

			case errors.Is(err, auditing.ErrUnsupportedMode):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Modo de auditoria inválido", nil)

			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao auditar o site", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error(err)
		}
	}
}
