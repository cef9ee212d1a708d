package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces"
	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/api/handler"
	"github.com/jbiddulph/localseo/internal/api/handler/router"
	"github.com/jbiddulph/localseo/internal/config"
	"github.com/jbiddulph/localseo/internal/scheduler"
	"github.com/jbiddulph/localseo/internal/usecases/auditing"
	"github.com/jbiddulph/localseo/internal/usecases/authenticating"
	"github.com/jbiddulph/localseo/internal/usecases/billing"
	"github.com/jbiddulph/localseo/internal/usecases/cohorting"
	"github.com/jbiddulph/localseo/internal/usecases/reporting"
	"github.com/jbiddulph/localseo/internal/usecases/tracking"
	"github.com/jbiddulph/localseo/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Authenticator  authenticating.Authenticator
	CohortService  cohorting.CohortService
	Schedules      tracking.ScheduleService
	ReportService  reporting.ReportService
	BillingService billing.BillingService
	ScanService    auditing.ScanService
	Places         googleplaces.PlacesIntegrator
	SnapshotRepo   repository.SnapshotRepository
	AlertRepo      repository.AlertRepository
}

func New(
	config *config.Config,
	services Services,
	trackingSyncService *scheduler.TrackingSyncService,
	retentionPruneService *scheduler.RetentionPruneService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		TrackingSyncService:   trackingSyncService,
		RetentionPruneService: retentionPruneService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Cohorts(services.CohortService, services.SnapshotRepo)...),
		router.WithRoutes(handler.Schedules(services.Schedules)...),
		router.WithRoutes(handler.Snapshots(services.SnapshotRepo, services.AlertRepo)...),
		router.WithRoutes(handler.Places(services.Places)...),
		router.WithRoutes(handler.Reports(services.ReportService)...),
		router.WithRoutes(handler.Billing(services.BillingService, services.Authenticator)...),
		router.WithRoutes(handler.Scan(services.ScanService)...),
		router.WithRoutes(handler.CronJobs(cronServices, config)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(services.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Aguardar pelo sinal ou pelo cancelamento do contexto
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
