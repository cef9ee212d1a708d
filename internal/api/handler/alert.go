package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
)

const defaultAlertListLimit = 50

// ListAlerts lista os alertas do usuário, opcionalmente filtrados por cohort
// via query string (?cohort_id=)
func ListAlerts(repo repository.AlertRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cohortID := r.URL.Query().Get("cohort_id")

		limit := defaultAlertListLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		alerts, err := repo.ListAlerts(userClaims.UserID, cohortID, limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar alertas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(alerts); err != nil {
			logrus.Error(err)
		}
	}
}
