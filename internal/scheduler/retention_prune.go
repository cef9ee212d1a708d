package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/config"
)

// RetentionPruneConfig representa a configuração da limpeza de retenção
type RetentionPruneConfig struct {
	CronSchedule    string
	PruneEnabled    bool
	SnapshotDays    int
	AlertDays       int
	DeleteBatchSize int
}

// RetentionPruneService remove snapshots, alertas e relatórios fora da
// janela de retenção
type RetentionPruneService struct {
	scheduler            *gocron.Scheduler
	config               RetentionPruneConfig
	snapshotRepo         repository.SnapshotRepository
	alertRepo            repository.AlertRepository
	reportRepo           repository.ReportRepository
	pruneRunning         bool
	pruneMutex           sync.Mutex
	lastPruneStartedAt   time.Time
	lastPruneCompletedAt time.Time
	lastPrunedSnapshots  int64
	lastPrunedAlerts     int64
	lastPrunedReports    int64
}

// NewRetentionPruneService cria uma nova instância do serviço de limpeza de retenção
func NewRetentionPruneService(
	snapshotRepo repository.SnapshotRepository,
	alertRepo repository.AlertRepository,
	reportRepo repository.ReportRepository,
	appConfig *config.Config,
) *RetentionPruneService {
	pruneConfig := RetentionPruneConfig{
		CronSchedule:    appConfig.RetentionPrune.CronSchedule,
		PruneEnabled:    appConfig.RetentionPrune.Enabled,
		SnapshotDays:    appConfig.RetentionPrune.SnapshotDays,
		AlertDays:       appConfig.RetentionPrune.AlertDays,
		DeleteBatchSize: appConfig.RetentionPrune.DeleteBatchSize,
	}

	if pruneConfig.DeleteBatchSize <= 0 {
		pruneConfig.DeleteBatchSize = 500
	}

	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":     pruneConfig.CronSchedule,
		"prune_enabled":     pruneConfig.PruneEnabled,
		"snapshot_days":     pruneConfig.SnapshotDays,
		"alert_days":        pruneConfig.AlertDays,
		"delete_batch_size": pruneConfig.DeleteBatchSize,
	}).Info("Configuração da limpeza de retenção carregada")

	return &RetentionPruneService{
		scheduler:    scheduler,
		config:       pruneConfig,
		snapshotRepo: snapshotRepo,
		alertRepo:    alertRepo,
		reportRepo:   reportRepo,
		pruneRunning: false,
	}
}

// Start inicia o agendador
func (s *RetentionPruneService) Start(ctx context.Context) error {
	if !s.config.PruneEnabled {
		logrus.Info("Limpeza de retenção desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de retenção")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runPrune()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de retenção: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de retenção")
		s.scheduler.Stop()
	}()

	return nil
}

// runPrune executa a limpeza das três tabelas, protegida contra sobreposição
func (s *RetentionPruneService) runPrune() {
	s.pruneMutex.Lock()
	if s.pruneRunning {
		s.pruneMutex.Unlock()
		logrus.Info("Limpeza de retenção já em andamento, ignorando")
		return
	}
	s.pruneRunning = true
	s.pruneMutex.Unlock()

	startTime := time.Now()
	s.lastPruneStartedAt = startTime

	defer func() {
		s.pruneMutex.Lock()
		s.pruneRunning = false
		s.pruneMutex.Unlock()
	}()

	logrus.WithFields(logrus.Fields{
		"snapshot_days": s.config.SnapshotDays,
		"alert_days":    s.config.AlertDays,
	}).Info("Iniciando limpeza de retenção")

	snapshots, err := s.snapshotRepo.DeleteOlderThan(s.config.SnapshotDays, s.config.DeleteBatchSize)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover snapshots antigos")
	}

	alerts, err := s.alertRepo.DeleteOlderThan(s.config.AlertDays, s.config.DeleteBatchSize)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover alertas antigos")
	}

	reports, err := s.reportRepo.DeleteExpired()
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover relatórios expirados")
	}

	s.lastPrunedSnapshots = snapshots
	s.lastPrunedAlerts = alerts
	s.lastPrunedReports = reports
	s.lastPruneCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration_seconds": time.Since(startTime).Seconds(),
		"snapshots":        snapshots,
		"alerts":           alerts,
		"reports":          reports,
	}).Info("Limpeza de retenção concluída")
}

// TriggerManualSync inicia manualmente uma limpeza de retenção
func (s *RetentionPruneService) TriggerManualSync() {
	s.pruneMutex.Lock()
	if s.pruneRunning {
		s.pruneMutex.Unlock()
		logrus.Info("Limpeza de retenção já em andamento, ignorando solicitação manual")
		return
	}
	s.pruneMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de retenção")
	go s.runPrune()
}

// GetStatus retorna o status atual da limpeza
func (s *RetentionPruneService) GetStatus() map[string]any {
	return map[string]any{
		"prune_enabled":           s.config.PruneEnabled,
		"prune_cron":              s.config.CronSchedule,
		"snapshot_retention_days": s.config.SnapshotDays,
		"alert_retention_days":    s.config.AlertDays,
		"delete_batch_size":       s.config.DeleteBatchSize,
		"last_prune_started_at":   s.lastPruneStartedAt,
		"last_prune_completed_at": s.lastPruneCompletedAt,
		"last_pruned_snapshots":   s.lastPrunedSnapshots,
		"last_pruned_alerts":      s.lastPrunedAlerts,
		"last_pruned_reports":     s.lastPrunedReports,
	}
}
