package tracking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces"
	"github.com/jbiddulph/localseo/infrastructure/integrator/resend"
	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/domain"
)

type RunStatus string

const (
	RunStatusSuccess               RunStatus = "success"
	RunStatusNoChanges             RunStatus = "no_changes"
	RunStatusSkippedMissingKeyword RunStatus = "skipped_missing_keyword"
	RunStatusSnapshotFailed        RunStatus = "snapshot_failed"
)

// ScheduleRunResult é o desfecho de um agendamento dentro de um ciclo
type ScheduleRunResult struct {
	ScheduleID string    `json:"schedule_id"`
	CohortID   string    `json:"cohort_id"`
	Status     RunStatus `json:"status"`
	Alerts     int       `json:"alerts"`
	Error      string    `json:"error,omitempty"`
}

// RunSummary resume um ciclo de sincronização
type RunSummary struct {
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Due        int                 `json:"due"`
	Succeeded  int                 `json:"succeeded"`
	NoChanges  int                 `json:"no_changes"`
	Skipped    int                 `json:"skipped"`
	Failed     int                 `json:"failed"`
	Results    []ScheduleRunResult `json:"results"`
}

type Tracker interface {
	RunDueSchedules(ctx context.Context, now time.Time) (*RunSummary, error)
}

type Service struct {
	scheduleRepo repository.ScheduleRepository
	snapshotRepo repository.SnapshotRepository
	userRepo     repository.UserRepository
	places       googleplaces.PlacesIntegrator
	notifier     resend.Notifier
}

func NewService(
	scheduleRepo repository.ScheduleRepository,
	snapshotRepo repository.SnapshotRepository,
	userRepo repository.UserRepository,
	places googleplaces.PlacesIntegrator,
	notifier resend.Notifier,
) Tracker {
	return &Service{
		scheduleRepo: scheduleRepo,
		snapshotRepo: snapshotRepo,
		userRepo:     userRepo,
		places:       places,
		notifier:     notifier,
	}
}

// RunDueSchedules percorre os agendamentos ativos e executa os que estão
// devidos. Cada agendamento é independente: a falha de um não interrompe os
// demais. O marcador last_run_at só avança quando o ciclo chega ao fim com
// sucesso (snapshot persistido ou sem mudanças); falha de coleta ou de
// persistência deixa o agendamento devido para o próximo ciclo.
func (s *Service) RunDueSchedules(ctx context.Context, now time.Time) (*RunSummary, error) {
	schedules, err := s.scheduleRepo.ListActiveSchedules()
	if err != nil {
		return nil, fmt.Errorf("erro ao listar agendamentos ativos: %w", err)
	}

	summary := &RunSummary{
		StartedAt: now,
		Results:   make([]ScheduleRunResult, 0),
	}

	for _, schedule := range schedules {
		if !IsDue(*schedule, now) {
			continue
		}
		summary.Due++

		result := s.runSchedule(ctx, schedule, now)
		summary.Results = append(summary.Results, result)

		switch result.Status {
		case RunStatusSuccess:
			summary.Succeeded++
		case RunStatusNoChanges:
			summary.NoChanges++
		case RunStatusSkippedMissingKeyword:
			summary.Skipped++
		case RunStatusSnapshotFailed:
			summary.Failed++
		}
	}

	summary.FinishedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"due":        summary.Due,
		"succeeded":  summary.Succeeded,
		"no_changes": summary.NoChanges,
		"skipped":    summary.Skipped,
		"failed":     summary.Failed,
	}).Info("tracking: ciclo de sincronização concluído")

	return summary, nil
}

func (s *Service) runSchedule(ctx context.Context, schedule *domain.TrackingSchedule, now time.Time) ScheduleRunResult {
	result := ScheduleRunResult{
		ScheduleID: schedule.ID,
		CohortID:   schedule.CohortID,
	}

	cohort := schedule.Cohort
	if cohort == nil || cohort.Keyword == nil || strings.TrimSpace(*cohort.Keyword) == "" {
		logrus.WithFields(logrus.Fields{
			"schedule_id": schedule.ID,
			"cohort_id":   schedule.CohortID,
		}).Warn("tracking: cohort sem palavra-chave, agendamento pulado")
		result.Status = RunStatusSkippedMissingKeyword
		return result
	}

	search, err := s.places.CollectRankedPlaces(cohort.Postcode, *cohort.Keyword, cohort.RadiusKm)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"schedule_id": schedule.ID,
			"cohort_id":   schedule.CohortID,
			"error":       err.Error(),
		}).Error("tracking: falha na coleta do provedor")
		result.Status = RunStatusSnapshotFailed
		result.Error = err.Error()
		return result
	}

	previous, err := s.snapshotRepo.GetLatestSnapshot(cohort.ID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"schedule_id": schedule.ID,
			"cohort_id":   schedule.CohortID,
			"error":       err.Error(),
		}).Error("tracking: falha ao buscar snapshot anterior")
		result.Status = RunStatusSnapshotFailed
		result.Error = err.Error()
		return result
	}

	// Sem mudanças não gera snapshot novo, mas conta como execução
	if previous != nil && !HasChanged(previous.Items, search.Items) {
		if err := s.scheduleRepo.UpdateLastRunAt(schedule.ID, now); err != nil {
			logrus.WithField("schedule_id", schedule.ID).WithError(err).
				Error("tracking: falha ao avançar last_run_at")
		}
		result.Status = RunStatusNoChanges
		return result
	}

	// O primeiro snapshot também classifica: sem anterior, todos os itens do
	// top 3 contam como entrantes e a visibilidade do negócio é avaliada
	var previousItems []domain.RankedPlace
	if previous != nil {
		previousItems = previous.Items
	}

	alerts := BuildAlerts(previousItems, search.Items, cohort.BusinessName)
	for i := range alerts {
		alerts[i].OwnerID = cohort.OwnerID
		alerts[i].CohortID = cohort.ID
	}

	snapshot := &domain.Snapshot{
		OwnerID:   cohort.OwnerID,
		CohortID:  cohort.ID,
		Keyword:   *cohort.Keyword,
		Postcode:  cohort.Postcode,
		RadiusKm:  cohort.RadiusKm,
		CenterLat: search.CenterLat,
		CenterLng: search.CenterLng,
		Items:     search.Items,
	}

	snapshot, err = s.snapshotRepo.InsertSnapshot(ctx, snapshot, alerts)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"schedule_id": schedule.ID,
			"cohort_id":   schedule.CohortID,
			"error":       err.Error(),
		}).Error("tracking: falha ao persistir snapshot")
		result.Status = RunStatusSnapshotFailed
		result.Error = err.Error()
		return result
	}

	if err := s.scheduleRepo.UpdateLastRunAt(schedule.ID, now); err != nil {
		logrus.WithField("schedule_id", schedule.ID).WithError(err).
			Error("tracking: falha ao avançar last_run_at")
	}

	if len(alerts) > 0 {
		s.notifyAlerts(cohort, alerts)
	}

	result.Status = RunStatusSuccess
	result.Alerts = len(alerts)
	return result
}

// notifyAlerts envia o resumo dos alertas por e-mail. Falha de envio não
// interfere no resultado do ciclo.
func (s *Service) notifyAlerts(cohort *domain.Cohort, alerts []domain.Alert) {
	if s.notifier == nil {
		return
	}

	owner, err := s.userRepo.GetUserByID(cohort.OwnerID)
	if err != nil || owner == nil {
		logrus.WithField("owner_id", cohort.OwnerID).Warn("tracking: dono do cohort não encontrado para notificação")
		return
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h2>Alertas para %s</h2><ul>", cohort.Name))
	for _, alert := range alerts {
		body.WriteString(fmt.Sprintf("<li><strong>%s</strong> (%s): %s</li>", alert.Type, alert.Severity, alert.Message))
	}
	body.WriteString("</ul>")

	subject := fmt.Sprintf("LocalSEO: %d alerta(s) para %s", len(alerts), cohort.Name)
	if err := s.notifier.SendAlertEmail(owner.Email, subject, body.String()); err != nil {
		logrus.WithFields(logrus.Fields{
			"owner_id": cohort.OwnerID,
			"error":    err.Error(),
		}).Warn("tracking: falha ao enviar e-mail de alerta")
	}
}
