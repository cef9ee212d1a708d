package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/internal/usecases/reporting"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
)

type CreateReportRequest struct {
	CohortID string `json:"cohort_id"`
}

// CreateReport gera um link compartilhável para o último snapshot de um cohort
func CreateReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateReport")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req CreateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		if req.CohortID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cohort não fornecido", nil)
			return
		}

		report, err := service.CreateReport(userClaims.UserID, req.CohortID)
		if err != nil {
			handleReportError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}

// ListReports lista os relatórios do usuário, opcionalmente por cohort
func ListReports(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cohortID := r.URL.Query().Get("cohort_id")

		reports, err := service.ListReports(userClaims.UserID, cohortID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar relatórios", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(reports); err != nil {
			logrus.Error(err)
		}
	}
}

// DeleteReport revoga um relatório compartilhável do usuário
func DeleteReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteReport")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		reportID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if reportID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do relatório não fornecido", nil)
			return
		}

		if err := service.DeleteReport(userClaims.UserID, reportID); err != nil {
			handleReportError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetPublicReport serve a página HTML pública de um relatório compartilhável.
// A rota não exige autenticação: o slug opaco é a credencial.
func GetPublicReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
		if slug == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Slug do relatório não fornecido", nil)
			return
		}

		data, err := service.GetReportData(slug)
		if err != nil {
			handleReportError(w, err)
			return
		}

		html, err := service.RenderHTML(data)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao renderizar relatório", nil)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(html)); err != nil {
			logrus.Error(err)
		}
	}
}

func handleReportError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, reporting.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Relatório não encontrado", nil)

	case errors.Is(err, reporting.ErrReportExpired):
		apiErrors.WriteError(w, apiErrors.ErrReportExpired, "Relatório expirado", nil)

	case errors.Is(err, reporting.ErrCohortNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Cohort não encontrado", nil)

	case errors.Is(err, reporting.ErrNoSnapshots):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Cohort ainda não possui snapshots", nil)

	case errors.Is(err, reporting.ErrReportLimitReached):
		apiErrors.WriteError(w, apiErrors.ErrReportLimitReached, "Limite de relatórios do plano atingido", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar relatório", nil)
	}
}
