package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces"
	placesmocks "github.com/jbiddulph/localseo/infrastructure/integrator/googleplaces/mocks"
	"github.com/jbiddulph/localseo/infrastructure/repository/mocks"
	"github.com/jbiddulph/localseo/internal/domain"
)

func dueSchedule(cohort *domain.Cohort) *domain.TrackingSchedule {
	return &domain.TrackingSchedule{
		ID:        "sched-1",
		OwnerID:   cohort.OwnerID,
		CohortID:  cohort.ID,
		Frequency: domain.FrequencyDaily,
		HourUTC:   9,
		Active:    true,
		Cohort:    cohort,
	}
}

func trackedCohort() *domain.Cohort {
	return &domain.Cohort{
		ID:       "cohort-1",
		OwnerID:  42,
		Name:     "Óticas centro",
		Postcode: "SW1A 1AA",
		Keyword:  stringPtr("ótica"),
	}
}

func TestService_RunDueSchedules(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	searchResult := &googleplaces.SearchResult{
		CenterLat: 51.5,
		CenterLng: -0.14,
		Items: []domain.RankedPlace{
			{PlaceID: "a", Name: "Ótica Um", Rank: 1},
			{PlaceID: "b", Name: "Ótica Dois", Rank: 2},
		},
	}

	tests := []struct {
		name     string
		setup    func(scheduleRepo *mocks.MockScheduleRepository, snapshotRepo *mocks.MockSnapshotRepository, places *placesmocks.MockPlacesIntegrator)
		validate func(t *testing.T, summary *RunSummary)
	}{
		{
			name: "Primeiro snapshot persiste e classifica os entrantes do top 3",
			setup: func(scheduleRepo *mocks.MockScheduleRepository, snapshotRepo *mocks.MockSnapshotRepository, places *placesmocks.MockPlacesIntegrator) {
				cohort := trackedCohort()
				scheduleRepo.EXPECT().
					ListActiveSchedules().
					Return([]*domain.TrackingSchedule{dueSchedule(cohort)}, nil)

				places.EXPECT().
					CollectRankedPlaces("SW1A 1AA", "ótica", nil).
					Return(searchResult, nil)

				snapshotRepo.EXPECT().
					GetLatestSnapshot("cohort-1").
					Return(nil, nil)

				snapshotRepo.EXPECT().
					InsertSnapshot(gomock.Any(), gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ context.Context, snapshot *domain.Snapshot, alerts []domain.Alert) (*domain.Snapshot, error) {
						assert.Equal(t, 42, snapshot.OwnerID)
						assert.Equal(t, "cohort-1", snapshot.CohortID)
						assert.Len(t, snapshot.Items, 2)
						assert.Equal(t, domain.AlertTypeNewTopThree, alerts[0].Type)
						snapshot.ID = "snap-1"
						return snapshot, nil
					})

				scheduleRepo.EXPECT().
					UpdateLastRunAt("sched-1", now).
					Return(nil)
			},
			validate: func(t *testing.T, summary *RunSummary) {
				assert.Equal(t, 1, summary.Due)
				assert.Equal(t, 1, summary.Succeeded)
				assert.Equal(t, RunStatusSuccess, summary.Results[0].Status)
				assert.Equal(t, 1, summary.Results[0].Alerts)
			},
		},
		{
			name: "Snapshot idêntico ao anterior avança o marcador sem persistir",
			setup: func(scheduleRepo *mocks.MockScheduleRepository, snapshotRepo *mocks.MockSnapshotRepository, places *placesmocks.MockPlacesIntegrator) {
				cohort := trackedCohort()
				scheduleRepo.EXPECT().
					ListActiveSchedules().
					Return([]*domain.TrackingSchedule{dueSchedule(cohort)}, nil)

				places.EXPECT().
					CollectRankedPlaces("SW1A 1AA", "ótica", nil).
					Return(searchResult, nil)

				snapshotRepo.EXPECT().
					GetLatestSnapshot("cohort-1").
					Return(&domain.Snapshot{ID: "snap-0", Items: searchResult.Items}, nil)

				scheduleRepo.EXPECT().
					UpdateLastRunAt("sched-1", now).
					Return(nil)
			},
			validate: func(t *testing.T, summary *RunSummary) {
				assert.Equal(t, 1, summary.Due)
				assert.Equal(t, 1, summary.NoChanges)
				assert.Equal(t, RunStatusNoChanges, summary.Results[0].Status)
			},
		},
		{
			name: "Cohort sem palavra-chave é pulado sem consultar o provedor",
			setup: func(scheduleRepo *mocks.MockScheduleRepository, snapshotRepo *mocks.MockSnapshotRepository, places *placesmocks.MockPlacesIntegrator) {
				cohort := trackedCohort()
				cohort.Keyword = nil
				scheduleRepo.EXPECT().
					ListActiveSchedules().
					Return([]*domain.TrackingSchedule{dueSchedule(cohort)}, nil)
			},
			validate: func(t *testing.T, summary *RunSummary) {
				assert.Equal(t, 1, summary.Due)
				assert.Equal(t, 1, summary.Skipped)
				assert.Equal(t, RunStatusSkippedMissingKeyword, summary.Results[0].Status)
			},
		},
		{
			name: "Falha do provedor não avança o marcador",
			setup: func(scheduleRepo *mocks.MockScheduleRepository, snapshotRepo *mocks.MockSnapshotRepository, places *placesmocks.MockPlacesIntegrator) {
				cohort := trackedCohort()
				scheduleRepo.EXPECT().
					ListActiveSchedules().
					Return([]*domain.TrackingSchedule{dueSchedule(cohort)}, nil)

				places.EXPECT().
					CollectRankedPlaces("SW1A 1AA", "ótica", nil).
					Return(nil, errors.New("quota excedida"))
			},
			validate: func(t *testing.T, summary *RunSummary) {
				assert.Equal(t, 1, summary.Due)
				assert.Equal(t, 1, summary.Failed)
				assert.Equal(t, RunStatusSnapshotFailed, summary.Results[0].Status)
				assert.Contains(t, summary.Results[0].Error, "quota excedida")
			},
		},
		{
			name: "Falha ao persistir o snapshot não avança o marcador",
			setup: func(scheduleRepo *mocks.MockScheduleRepository, snapshotRepo *mocks.MockSnapshotRepository, places *placesmocks.MockPlacesIntegrator) {
				cohort := trackedCohort()
				scheduleRepo.EXPECT().
					ListActiveSchedules().
					Return([]*domain.TrackingSchedule{dueSchedule(cohort)}, nil)

				places.EXPECT().
					CollectRankedPlaces("SW1A 1AA", "ótica", nil).
					Return(searchResult, nil)

				snapshotRepo.EXPECT().
					GetLatestSnapshot("cohort-1").
					Return(nil, nil)

				snapshotRepo.EXPECT().
					InsertSnapshot(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("conexão perdida"))
			},
			validate: func(t *testing.T, summary *RunSummary) {
				assert.Equal(t, 1, summary.Failed)
				assert.Equal(t, RunStatusSnapshotFailed, summary.Results[0].Status)
			},
		},
		{
			name: "Agendamento fora da janela não entra no ciclo",
			setup: func(scheduleRepo *mocks.MockScheduleRepository, snapshotRepo *mocks.MockSnapshotRepository, places *placesmocks.MockPlacesIntegrator) {
				cohort := trackedCohort()
				schedule := dueSchedule(cohort)
				schedule.HourUTC = 15
				scheduleRepo.EXPECT().
					ListActiveSchedules().
					Return([]*domain.TrackingSchedule{schedule}, nil)
			},
			validate: func(t *testing.T, summary *RunSummary) {
				assert.Equal(t, 0, summary.Due)
				assert.Empty(t, summary.Results)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			scheduleRepo := mocks.NewMockScheduleRepository(ctrl)
			snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
			places := placesmocks.NewMockPlacesIntegrator(ctrl)

			tt.setup(scheduleRepo, snapshotRepo, places)

			service := &Service{
				scheduleRepo: scheduleRepo,
				snapshotRepo: snapshotRepo,
				places:       places,
			}

			summary, err := service.RunDueSchedules(context.Background(), now)
			assert.NoError(t, err)
			tt.validate(t, summary)
		})
	}
}

func TestService_RunDueSchedules_GeneratesAlertsOnChange(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduleRepo := mocks.NewMockScheduleRepository(ctrl)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	places := placesmocks.NewMockPlacesIntegrator(ctrl)

	cohort := trackedCohort()
	cohort.BusinessName = stringPtr("Minha Ótica")

	scheduleRepo.EXPECT().
		ListActiveSchedules().
		Return([]*domain.TrackingSchedule{dueSchedule(cohort)}, nil)

	previousItems := []domain.RankedPlace{
		{PlaceID: "a", Name: "Ótica Um", Rank: 1},
		{PlaceID: "b", Name: "Minha Ótica", Rank: 2},
	}
	currentItems := []domain.RankedPlace{
		{PlaceID: "x", Name: "Ótica Nova", Rank: 1},
		{PlaceID: "a", Name: "Ótica Um", Rank: 2},
	}

	places.EXPECT().
		CollectRankedPlaces("SW1A 1AA", "ótica", nil).
		Return(&googleplaces.SearchResult{Items: currentItems}, nil)

	snapshotRepo.EXPECT().
		GetLatestSnapshot("cohort-1").
		Return(&domain.Snapshot{ID: "snap-0", Items: previousItems}, nil)

	snapshotRepo.EXPECT().
		InsertSnapshot(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *domain.Snapshot, alerts []domain.Alert) (*domain.Snapshot, error) {
			// Entrante no top 3 e negócio fora do top 10, cada alerta com dono
			// e cohort preenchidos para a persistência
			assert.Len(t, alerts, 2)
			assert.Equal(t, domain.AlertTypeNewTopThree, alerts[0].Type)
			assert.Equal(t, domain.AlertTypeBusinessOutOfTop, alerts[1].Type)
			for _, alert := range alerts {
				assert.Equal(t, 42, alert.OwnerID)
				assert.Equal(t, "cohort-1", alert.CohortID)
			}
			snapshot.ID = "snap-1"
			return snapshot, nil
		})

	scheduleRepo.EXPECT().
		UpdateLastRunAt("sched-1", now).
		Return(nil)

	service := &Service{
		scheduleRepo: scheduleRepo,
		snapshotRepo: snapshotRepo,
		places:       places,
	}

	summary, err := service.RunDueSchedules(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Results[0].Alerts)
}

func TestService_RunDueSchedules_FirstSnapshotClassifiesVisibility(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	scheduleRepo := mocks.NewMockScheduleRepository(ctrl)
	snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	places := placesmocks.NewMockPlacesIntegrator(ctrl)

	cohort := trackedCohort()
	cohort.BusinessName = stringPtr("Minha Ótica")

	scheduleRepo.EXPECT().
		ListActiveSchedules().
		Return([]*domain.TrackingSchedule{dueSchedule(cohort)}, nil)

	// Negócio ausente dos resultados e dois entrantes no top 3
	places.EXPECT().
		CollectRankedPlaces("SW1A 1AA", "ótica", nil).
		Return(&googleplaces.SearchResult{Items: []domain.RankedPlace{
			{PlaceID: "a", Name: "Ótica Um", Rank: 1},
			{PlaceID: "b", Name: "Ótica Dois", Rank: 2},
		}}, nil)

	snapshotRepo.EXPECT().
		GetLatestSnapshot("cohort-1").
		Return(nil, nil)

	snapshotRepo.EXPECT().
		InsertSnapshot(gomock.Any(), gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ context.Context, snapshot *domain.Snapshot, alerts []domain.Alert) (*domain.Snapshot, error) {
			assert.Equal(t, domain.AlertTypeNewTopThree, alerts[0].Type)
			assert.Equal(t, domain.AlertTypeBusinessOutOfTop, alerts[1].Type)
			for _, alert := range alerts {
				assert.Equal(t, 42, alert.OwnerID)
				assert.Equal(t, "cohort-1", alert.CohortID)
			}
			snapshot.ID = "snap-1"
			return snapshot, nil
		})

	scheduleRepo.EXPECT().
		UpdateLastRunAt("sched-1", now).
		Return(nil)

	service := &Service{
		scheduleRepo: scheduleRepo,
		snapshotRepo: snapshotRepo,
		places:       places,
	}

	summary, err := service.RunDueSchedules(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Results[0].Alerts)
}
