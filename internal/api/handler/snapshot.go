package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
)

const defaultSnapshotListLimit = 30

// ListCohortSnapshots lista o histórico de snapshots de um cohort do usuário
func ListCohortSnapshots(repo repository.SnapshotRepository) http.HandlerFunc {
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

		limit := defaultSnapshotListLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		infos, err := repo.ListSnapshotInfos(cohortID, userClaims.UserID, limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshots", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(infos); err != nil {
			logrus.Error(err)
		}
	}
}

// GetSnapshot retorna um snapshot completo, com os itens ranqueados
func GetSnapshot(repo repository.SnapshotRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsFromRequest(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		snapshotID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if snapshotID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do snapshot não fornecido", nil)
			return
		}

		snapshot, err := repo.GetSnapshotByID(snapshotID, userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar snapshot", nil)
			return
		}

		if snapshot == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Snapshot não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logrus.Error(err)
		}
	}
}
