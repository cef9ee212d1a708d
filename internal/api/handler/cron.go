package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/internal/config"
	"github.com/jbiddulph/localseo/internal/scheduler"
	"github.com/jbiddulph/localseo/pkg/apiErrors"
	"github.com/jbiddulph/localseo/pkg/middleware"
)

// Tipos de cron job que podem ser disparados manualmente
const (
	CronJobTypeTracking  = "tracking"
	CronJobTypeRetention = "retention"
	CronJobTypeAll       = "all"
)

// CronJobServices contém os serviços de cron necessários para execução manual
type CronJobServices struct {
	TrackingSyncService   *scheduler.TrackingSyncService
	RetentionPruneService *scheduler.RetentionPruneService
}

// RunCronJob dispara manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		userClaims, ok := claimsFromRequest(r)
		if !ok || userClaims.UserRoleID != middleware.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeTracking:
			if services.TrackingSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de rastreamento não disponível", nil)
				return
			}
			services.TrackingSyncService.TriggerManualSync()

		case CronJobTypeRetention:
			if services.RetentionPruneService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de retenção não disponível", nil)
				return
			}
			services.RetentionPruneService.TriggerManualSync()

		case CronJobTypeAll:
			if services.TrackingSyncService != nil {
				services.TrackingSyncService.TriggerManualSync()
			}
			if services.RetentionPruneService != nil {
				services.RetentionPruneService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo de cron job desconhecido", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "triggered",
			"type":   cronType,
		})
	}
}

// GetCronStatus retorna o estado de execução de todas as cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}

		if services.TrackingSyncService != nil {
			status["tracking"] = services.TrackingSyncService.GetStatus()
		}
		if services.RetentionPruneService != nil {
			status["retention"] = services.RetentionPruneService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logrus.Error(err)
		}
	}
}

// ExternalTrackingRun executa o ciclo de rastreamento de forma síncrona,
// disparado por um agendador externo (ex.: cron de plataforma). A rota é
// pública e protegida por segredo compartilhado na query string.
func ExternalTrackingRun(service *scheduler.TrackingSyncService, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		secret := r.URL.Query().Get("secret")
		if cfg.CronSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.CronSecret)) != 1 {
			logrus.Warn("Tentativa de disparo externo de cron com segredo inválido")
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Segredo inválido", nil)
			return
		}

		summary, err := service.RunNow(r.Context())
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar ciclo de rastreamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error(err)
		}
	}
}
