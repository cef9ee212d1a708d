package tracking

import (
	"errors"

	"github.com/jbiddulph/localseo/infrastructure/repository"
	"github.com/jbiddulph/localseo/internal/domain"
)

var (
	ErrScheduleNotFound = errors.New("agendamento não encontrado")
	ErrInvalidFrequency = errors.New("frequência deve ser daily ou weekly")
	ErrInvalidHour      = errors.New("hora UTC deve estar entre 0 e 23")
	ErrInvalidDayOfWeek = errors.New("dia da semana deve estar entre 0 (domingo) e 6 (sábado)")
	ErrCohortRequired   = errors.New("cohort é obrigatório")
	ErrCohortNotFound   = errors.New("cohort não encontrado")
)

type ScheduleService interface {
	CreateSchedule(ownerID int, req domain.CreateScheduleRequest) (*domain.TrackingSchedule, error)
	UpdateSchedule(ownerID int, req domain.UpdateScheduleRequest) (*domain.TrackingSchedule, error)
	GetSchedule(ownerID int, scheduleID string) (*domain.TrackingSchedule, error)
	ListSchedules(ownerID int) ([]*domain.TrackingSchedule, error)
	DeleteSchedule(ownerID int, scheduleID string) error
}

type Scheduler struct {
	scheduleRepo repository.ScheduleRepository
	cohortRepo   repository.CohortRepository
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, cohortRepo repository.CohortRepository) ScheduleService {
	return &Scheduler{
		scheduleRepo: scheduleRepo,
		cohortRepo:   cohortRepo,
	}
}

func validateFrequency(frequency domain.ScheduleFrequency) error {
	if frequency != domain.FrequencyDaily && frequency != domain.FrequencyWeekly {
		return ErrInvalidFrequency
	}
	return nil
}

func validateHourUTC(hour int) error {
	if hour < 0 || hour > 23 {
		return ErrInvalidHour
	}
	return nil
}

func validateDayOfWeek(day *int) error {
	if day != nil && (*day < 0 || *day > 6) {
		return ErrInvalidDayOfWeek
	}
	return nil
}

func (s *Scheduler) CreateSchedule(ownerID int, req domain.CreateScheduleRequest) (*domain.TrackingSchedule, error) {
	if req.CohortID == "" {
		return nil, ErrCohortRequired
	}

	if err := validateFrequency(req.Frequency); err != nil {
		return nil, err
	}

	if err := validateHourUTC(req.HourUTC); err != nil {
		return nil, err
	}

	if err := validateDayOfWeek(req.DayOfWeek); err != nil {
		return nil, err
	}

	// O cohort precisa existir e pertencer ao usuário
	cohort, err := s.cohortRepo.GetCohortByID(req.CohortID, ownerID)
	if err != nil {
		return nil, err
	}
	if cohort == nil {
		return nil, ErrCohortNotFound
	}

	schedule := &domain.TrackingSchedule{
		OwnerID:   ownerID,
		CohortID:  req.CohortID,
		Frequency: req.Frequency,
		DayOfWeek: req.DayOfWeek,
		HourUTC:   req.HourUTC,
		Active:    true,
	}

	return s.scheduleRepo.CreateSchedule(schedule)
}

func (s *Scheduler) UpdateSchedule(ownerID int, req domain.UpdateScheduleRequest) (*domain.TrackingSchedule, error) {
	existing, err := s.scheduleRepo.GetScheduleByID(req.ID, ownerID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrScheduleNotFound
	}

	if req.Frequency != nil {
		if err := validateFrequency(*req.Frequency); err != nil {
			return nil, err
		}
	}

	if req.HourUTC != nil {
		if err := validateHourUTC(*req.HourUTC); err != nil {
			return nil, err
		}
	}

	if err := validateDayOfWeek(req.DayOfWeek); err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.UpdateSchedule(req, ownerID); err != nil {
		return nil, err
	}

	return s.scheduleRepo.GetScheduleByID(req.ID, ownerID)
}

func (s *Scheduler) GetSchedule(ownerID int, scheduleID string) (*domain.TrackingSchedule, error) {
	schedule, err := s.scheduleRepo.GetScheduleByID(scheduleID, ownerID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	return schedule, nil
}

func (s *Scheduler) ListSchedules(ownerID int) ([]*domain.TrackingSchedule, error) {
	return s.scheduleRepo.ListSchedules(ownerID)
}

func (s *Scheduler) DeleteSchedule(ownerID int, scheduleID string) error {
	schedule, err := s.scheduleRepo.GetScheduleByID(scheduleID, ownerID)
	if err != nil {
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}

	return s.scheduleRepo.DeleteSchedule(scheduleID, ownerID)
}
