package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jbiddulph/localseo/infrastructure/database/postgres"
	"github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces"
	"github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces/placesclient"
	"github.com/jbiddulph/localseo/infrastructure/integrator/resend"
	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/api"
	"github.com/jbiddulph/localseo/internal/config"
	"github.com/jbiddulph/localseo/internal/scheduler"
	"github.com/jbiddulph/localseo/internal/usecases/auditing"
	"github.com/jbiddulph/localseo/internal/usecases/authenticating"
	"github.com/jbiddulph/localseo/internal/usecases/billing"
	"github.com/jbiddulph/localseo/internal/usecases/cohorting"
	"github.com/jbiddulph/localseo/internal/usecases/reporting"
	"github.com/jbiddulph/localseo/internal/usecases/tracking"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	cohortRepo := repository.NewCohortRepository(pgConn)
	scheduleRepo := repository.NewScheduleRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	alertRepo := repository.NewAlertRepository(pgConn)
	reportRepo := repository.NewReportRepository(pgConn)
	billingRepo := repository.NewBillingRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	placesClient := placesclient.NewClient(cfg)
	placesIntegrator := googleplaces.New(cfg, placesClient)

	notifier := resend.NewClient(cfg)

	cohortService := cohorting.NewService(cohortRepo, billingRepo)
	scheduleService := tracking.NewScheduleService(scheduleRepo, cohortRepo)
	reportService := reporting.NewService(reportRepo, cohortRepo, snapshotRepo, billingRepo)
	billingService := billing.NewService(cfg, billingRepo)
	scanService := auditing.NewService(cfg)

	tracker := tracking.NewService(
		scheduleRepo,
		snapshotRepo,
		userRepo,
		placesIntegrator,
		notifier,
	)

	// Agendadores em background: ciclo de rastreamento e poda de retenção
	trackingSyncService := scheduler.NewTrackingSyncService(tracker, cfg)
	retentionPruneService := scheduler.NewRetentionPruneService(
		snapshotRepo,
		alertRepo,
		reportRepo,
		cfg,
	)

	if err := trackingSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de rastreamento")
	} else {
		logrus.Info("Agendador de rastreamento iniciado com sucesso")
	}

	if err := retentionPruneService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de poda de retenção")
	} else {
		logrus.Info("Agendador de poda de retenção iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		api.Services{
			Authenticator:  authenticator,
			CohortService:  cohortService,
			Schedules:      scheduleService,
			ReportService:  reportService,
			BillingService: billingService,
			ScanService:    scanService,
			Places:         placesIntegrator,
			SnapshotRepo:   snapshotRepo,
			AlertRepo:      alertRepo,
		},
		trackingSyncService,
		retentionPruneService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
