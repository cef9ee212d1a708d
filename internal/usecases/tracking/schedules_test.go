package tracking

import (
	"testing"

	"github.com/jbiddulph/localseo/infrastructure/repository/mocks"
	"github.com/jbiddulph/localseo/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestScheduler_CreateSchedule(t *testing.T) {
	tests := []struct {
		name        string
		req         domain.CreateScheduleRequest
		setup       func(scheduleRepo *mocks.MockScheduleRepository, cohortRepo *mocks.MockCohortRepository)
		expectedErr error
	}{
		{
			name: "deve criar agendamento diário para cohort do usuário",
			req: domain.CreateScheduleRequest{
				CohortID:  "cohort-1",
				Frequency: domain.FrequencyDaily,
				HourUTC:   6,
			},
			setup: func(scheduleRepo *mocks.MockScheduleRepository, cohortRepo *mocks.MockCohortRepository) {
				cohortRepo.EXPECT().
					GetCohortByID("cohort-1", 42).
					Return(&domain.Cohort{ID: "cohort-1", OwnerID: 42}, nil)
				scheduleRepo.EXPECT().
					CreateSchedule(gomock.Any()).
					DoAndReturn(func(schedule *domain.TrackingSchedule) (*domain.TrackingSchedule, error) {
						assert.Equal(t, 42, schedule.OwnerID)
						assert.True(t, schedule.Active)
						return schedule, nil
					})
			},
		},
		{
			name: "deve recusar frequência desconhecida",
			req: domain.CreateScheduleRequest{
				CohortID:  "cohort-1",
				Frequency: "hourly",
				HourUTC:   6,
			},
			setup:       func(_ *mocks.MockScheduleRepository, _ *mocks.MockCohortRepository) {},
			expectedErr: ErrInvalidFrequency,
		},
		{
			name: "deve recusar hora fora do intervalo",
			req: domain.CreateScheduleRequest{
				CohortID:  "cohort-1",
				Frequency: domain.FrequencyDaily,
				HourUTC:   24,
			},
			setup:       func(_ *mocks.MockScheduleRepository, _ *mocks.MockCohortRepository) {},
			expectedErr: ErrInvalidHour,
		},
		{
			name: "deve recusar dia da semana inválido",
			req: domain.CreateScheduleRequest{
				CohortID:  "cohort-1",
				Frequency: domain.FrequencyWeekly,
				DayOfWeek: intPtr(7),
				HourUTC:   6,
			},
			setup:       func(_ *mocks.MockScheduleRepository, _ *mocks.MockCohortRepository) {},
			expectedErr: ErrInvalidDayOfWeek,
		},
		{
			name: "deve recusar requisição sem cohort",
			req: domain.CreateScheduleRequest{
				Frequency: domain.FrequencyDaily,
				HourUTC:   6,
			},
			setup:       func(_ *mocks.MockScheduleRepository, _ *mocks.MockCohortRepository) {},
			expectedErr: ErrCohortRequired,
		},
		{
			name: "deve recusar cohort de outro usuário",
			req: domain.CreateScheduleRequest{
				CohortID:  "cohort-9",
				Frequency: domain.FrequencyDaily,
				HourUTC:   6,
			},
			setup: func(_ *mocks.MockScheduleRepository, cohortRepo *mocks.MockCohortRepository) {
				cohortRepo.EXPECT().
					GetCohortByID("cohort-9", 42).
					Return(nil, nil)
			},
			expectedErr: ErrCohortNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			scheduleRepo := mocks.NewMockScheduleRepository(ctrl)
			cohortRepo := mocks.NewMockCohortRepository(ctrl)
			tt.setup(scheduleRepo, cohortRepo)

			service := NewScheduleService(scheduleRepo, cohortRepo)

			schedule, err := service.CreateSchedule(42, tt.req)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, schedule)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, schedule)
		})
	}
}

func TestScheduler_UpdateSchedule(t *testing.T) {
	frequency := domain.FrequencyWeekly

	tests := []struct {
		name        string
		req         domain.UpdateScheduleRequest
		setup       func(scheduleRepo *mocks.MockScheduleRepository)
		expectedErr error
	}{
		{
			name: "deve atualizar agendamento existente",
			req: domain.UpdateScheduleRequest{
				ID:        "schedule-1",
				Frequency: &frequency,
				DayOfWeek: intPtr(3),
			},
			setup: func(scheduleRepo *mocks.MockScheduleRepository) {
				existing := &domain.TrackingSchedule{ID: "schedule-1", OwnerID: 42}
				scheduleRepo.EXPECT().
					GetScheduleByID("schedule-1", 42).
					Return(existing, nil)
				scheduleRepo.EXPECT().
					UpdateSchedule(gomock.Any(), 42).
					Return(nil)
				scheduleRepo.EXPECT().
					GetScheduleByID("schedule-1", 42).
					Return(existing, nil)
			},
		},
		{
			name: "deve recusar agendamento inexistente",
			req:  domain.UpdateScheduleRequest{ID: "schedule-9"},
			setup: func(scheduleRepo *mocks.MockScheduleRepository) {
				scheduleRepo.EXPECT().
					GetScheduleByID("schedule-9", 42).
					Return(nil, nil)
			},
			expectedErr: ErrScheduleNotFound,
		},
		{
			name: "deve validar dia da semana antes de persistir",
			req: domain.UpdateScheduleRequest{
				ID:        "schedule-1",
				DayOfWeek: intPtr(-1),
			},
			setup: func(scheduleRepo *mocks.MockScheduleRepository) {
				scheduleRepo.EXPECT().
					GetScheduleByID("schedule-1", 42).
					Return(&domain.TrackingSchedule{ID: "schedule-1", OwnerID: 42}, nil)
			},
			expectedErr: ErrInvalidDayOfWeek,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			scheduleRepo := mocks.NewMockScheduleRepository(ctrl)
			tt.setup(scheduleRepo)

			service := NewScheduleService(scheduleRepo, mocks.NewMockCohortRepository(ctrl))

			schedule, err := service.UpdateSchedule(42, tt.req)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, schedule)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, schedule)
		})
	}
}
