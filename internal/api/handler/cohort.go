package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/internal/domain"
	"github.com/jbiddulph/localseo/internal/usecases/cohorting"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
	"github.com/jbiddulph/localseo/pkg/middleware"
)

// claimsFromRequest extrai as claims do usuário autenticado do contexto
func claimsFromRequest(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	return claims, ok
}

// CreateCohort cria um novo cohort para o usuário autenticado
func CreateCohort(service cohorting.CohortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCohort")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateCohortRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		cohort, err := service.CreateCohort(userClaims.UserID, req)
		if err != nil {
			handleCohortError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(cohort); err != nil {
			logrus.Error(err)
		}
	}
}

// ListCohorts lista os cohorts do usuário autenticado
func ListCohorts(service cohorting.CohortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cohorts, err := service.ListCohorts(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar cohorts", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"cohorts": cohorts,
			"limit":   service.CohortLimit(userClaims.UserID),
		}); err != nil {
			logrus.Error(err)
		}
	}
}

// GetCohort retorna um cohort do usuário pelo ID
func GetCohort(service cohorting.CohortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cohortID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if cohortID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cohort não fornecido", nil)
			return
		}

		cohort, err := service.GetCohort(userClaims.UserID, cohortID)
		if err != nil {
			handleCohortError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cohort); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateCohort atualiza campos de um cohort do usuário
func UpdateCohort(service cohorting.CohortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateCohort")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cohortID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if cohortID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cohort não fornecido", nil)
			return
		}

		var req domain.UpdateCohortRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = cohortID

		cohort, err := service.UpdateCohort(userClaims.UserID, req)
		if err != nil {
			handleCohortError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cohort); err != nil {
			logrus.Error(err)
		}
	}
}

// DeleteCohort remove um cohort do usuário
func DeleteCohort(service cohorting.CohortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteCohort")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		cohortID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if cohortID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do cohort não fornecido", nil)
			return
		}

		if err := service.DeleteCohort(userClaims.UserID, cohortID); err != nil {
			handleCohortError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleCohortError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, cohorting.ErrCohortNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Cohort não encontrado", nil)

	case errors.Is(err, cohorting.ErrCohortLimitReached):
		apiErrors.WriteError(w, apiErrors.ErrCohortLimitReached, "Limite de cohorts do plano atingido", nil)

	case errors.Is(err, cohorting.ErrMissingName), errors.Is(err, cohorting.ErrMissingPostcode):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar cohort", nil)
	}
}
