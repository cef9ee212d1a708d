package handler

import (
	"net/http"

	"github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces"
	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/api/handler/router"
	"github.com/jbiddulph/localseo/internal/config"
	"github.com/jbiddulph/localseo/internal/usecases/auditing"
	"github.com/jbiddulph/localseo/internal/usecases/authenticating"
	"github.com/jbiddulph/localseo/internal/usecases/billing"
	"github.com/jbiddulph/localseo/internal/usecases/cohorting"
	"github.com/jbiddulph/localseo/internal/usecases/reporting"
	"github.com/jbiddulph/localseo/internal/usecases/tracking"
	"github.com/jbiddulph/localseo/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Cohorts(service cohorting.CohortService, snapshotRepo repository.SnapshotRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cohorts",
			Method:      http.MethodGet,
			Handler:     ListCohorts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cohorts",
			Method:      http.MethodPost,
			Handler:     CreateCohort(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cohorts/:id",
			Method:      http.MethodGet,
			Handler:     GetCohort(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cohorts/:id",
			Method:      http.MethodPut,
			Handler:     UpdateCohort(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cohorts/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCohort(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/cohorts/:id/snapshots",
			Method:      http.MethodGet,
			Handler:     ListCohortSnapshots(snapshotRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Schedules(service tracking.ScheduleService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/schedules",
			Method:      http.MethodGet,
			Handler:     ListSchedules(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules",
			Method:      http.MethodPost,
			Handler:     CreateSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/:id",
			Method:      http.MethodGet,
			Handler:     GetSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/:id",
			Method:      http.MethodPut,
			Handler:     UpdateSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Snapshots(snapshotRepo repository.SnapshotRepository, alertRepo repository.AlertRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/snapshots/:id",
			Method:      http.MethodGet,
			Handler:     GetSnapshot(snapshotRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/alerts",
			Method:      http.MethodGet,
			Handler:     ListAlerts(alertRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Places(service googleplaces.PlacesIntegrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/places/search",
			Method:      http.MethodPost,
			Handler:     PreviewPlaces(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports",
			Method:      http.MethodGet,
			Handler:     ListReports(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports",
			Method:      http.MethodPost,
			Handler:     CreateReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			// Página pública: o slug é a credencial de acesso
			Path:    "/v1/reports/:slug",
			Method:  http.MethodGet,
			Handler: GetPublicReport(service),
		},
	}
}

func Billing(service billing.BillingService, authService authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/billing/checkout",
			Method:      http.MethodPost,
			Handler:     CreateCheckout(service, authService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/billing/portal",
			Method:      http.MethodPost,
			Handler:     CreatePortal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/billing/subscription",
			Method:      http.MethodGet,
			Handler:     GetSubscription(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/billing/subscription/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshSubscription(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			// Autenticado pela assinatura do Stripe no cabeçalho
			Path:    "/v1/billing/webhook",
			Method:  http.MethodPost,
			Handler: StripeWebhook(service),
		},
	}
}

func Scan(service auditing.ScanService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/scan",
			Method:      http.MethodPost,
			Handler:     RunScan(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			// Gatilho externo síncrono, protegido por segredo compartilhado
			Path:    "/v1/cron/track",
			Method:  http.MethodGet,
			Handler: ExternalTrackingRun(services.TrackingSyncService, cfg),
		},
	}
}
