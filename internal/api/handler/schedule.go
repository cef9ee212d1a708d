package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/internal/domain"
	"github.com/jbiddulph/localseo/internal/usecases/tracking"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
)

// CreateSchedule cria um agendamento de rastreamento para um cohort do usuário
func CreateSchedule(service tracking.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateSchedule")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CreateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		schedule, err := service.CreateSchedule(userClaims.UserID, req)
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(schedule); err != nil {
			logrus.Error(err)
		}
	}
}

// ListSchedules lista os agendamentos do usuário autenticado
func ListSchedules(service tracking.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		schedules, err := service.ListSchedules(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar agendamentos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(schedules); err != nil {
			logrus.Error(err)
		}
	}
}

// GetSchedule retorna um agendamento do usuário pelo ID
func GetSchedule(service tracking.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		scheduleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if scheduleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do agendamento não fornecido", nil)
			return
		}

		schedule, err := service.GetSchedule(userClaims.UserID, scheduleID)
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(schedule); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateSchedule atualiza frequência, horário ou status de um agendamento
func UpdateSchedule(service tracking.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateSchedule")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		scheduleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if scheduleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do agendamento não fornecido", nil)
			return
		}

		var req domain.UpdateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = scheduleID

		schedule, err := service.UpdateSchedule(userClaims.UserID, req)
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(schedule); err != nil {
			logrus.Error(err)
		}
	}
}

// DeleteSchedule remove um agendamento do usuário
func DeleteSchedule(service tracking.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteSchedule")

		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		scheduleID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if scheduleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do agendamento não fornecido", nil)
			return
		}

		if err := service.DeleteSchedule(userClaims.UserID, scheduleID); err != nil {
			handleScheduleError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleScheduleError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, tracking.ErrScheduleNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Agendamento não encontrado", nil)

	case errors.Is(err, tracking.ErrCohortNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Cohort não encontrado", nil)

	case errors.Is(err, tracking.ErrInvalidFrequency),
		errors.Is(err, tracking.ErrInvalidHour),
		errors.Is(err, tracking.ErrInvalidDayOfWeek),
		errors.Is(err, tracking.ErrCohortRequired):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar agendamento", nil)
	}
}
