// Package scheduler contém os agendadores de fundo da aplicação: o ciclo de
// sincronização de rastreamento e a limpeza de retenção
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/jbiddulph/localseo/internal/config"
	"github.com/jbiddulph/localseo/internal/usecases/tracking"
)

// TrackingSyncConfig representa a configuração do agendador de rastreamento
type TrackingSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// TrackingSyncService agenda a execução periódica do ciclo de rastreamento.
// O cron dispara de hora em hora; o predicado de cada agendamento decide
// quais cohorts coletar.
type TrackingSyncService struct {
	scheduler           *gocron.Scheduler
	config              TrackingSyncConfig
	tracker             tracking.Tracker
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *tracking.RunSummary
}

// NewTrackingSyncService cria uma nova instância do serviço de sincronização de rastreamento
func NewTrackingSyncService(tracker tracking.Tracker, appConfig *config.Config) *TrackingSyncService {
	syncConfig := TrackingSyncConfig{
		CronSchedule: appConfig.TrackingSync.CronSchedule,
		SyncEnabled:  appConfig.TrackingSync.Enabled,
	}

	// Agendador em UTC: o predicado de janela compara a hora UTC
	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de rastreamento carregada")

	return &TrackingSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		tracker:     tracker,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *TrackingSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de rastreamento desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de rastreamento")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runTrackingCycle()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de rastreamento: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de rastreamento")
		s.scheduler.Stop()
	}()

	return nil
}

// runTrackingCycle executa um ciclo completo, protegido contra sobreposição
func (s *TrackingSyncService) runTrackingCycle() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ciclo de rastreamento já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando ciclo de sincronização de rastreamento")

	summary, err := s.tracker.RunDueSchedules(context.Background(), startTime.UTC())
	if err != nil {
		logrus.WithError(err).Error("Erro ao executar ciclo de rastreamento")
		return
	}

	s.lastSummary = summary
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"duration_seconds": time.Since(startTime).Seconds(),
		"due":              summary.Due,
		"succeeded":        summary.Succeeded,
		"no_changes":       summary.NoChanges,
		"skipped":          summary.Skipped,
		"failed":           summary.Failed,
	}).Info("Ciclo de sincronização de rastreamento concluído")
}

// TriggerManualSync inicia manualmente um ciclo de rastreamento
func (s *TrackingSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ciclo de rastreamento já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando ciclo manual de rastreamento")
	go s.runTrackingCycle()
}

// RunNow executa um ciclo de forma síncrona e devolve o resumo. Usado pela
// rota de cron externa.
func (s *TrackingSyncService) RunNow(ctx context.Context) (*tracking.RunSummary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		return nil, fmt.Errorf("ciclo de rastreamento já em andamento")
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	s.lastSyncStartedAt = time.Now()
	summary, err := s.tracker.RunDueSchedules(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.lastSummary = summary
	s.lastSyncCompletedAt = time.Now()
	return summary, nil
}

// GetStatus retorna o status atual do agendador
func (s *TrackingSyncService) GetStatus() map[string]any {
	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastSummary != nil {
		status["last_summary"] = s.lastSummary
	}

	return status
}
