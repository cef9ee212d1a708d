package reporting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/jbiddulph/localseo/infrastructure/repository/mocks"
	"github.com/jbiddulph/localseo/internal/domain"
)

func place(id, name string, rank int) domain.RankedPlace {
	return domain.RankedPlace{PlaceID: id, Name: name, Rank: rank}
}

func TestService_CreateReport(t *testing.T) {
	t.Run("Cohort sem snapshots não gera relatório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reportRepo := mocks.NewMockReportRepository(ctrl)
		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
		billingRepo := mocks.NewMockBillingRepository(ctrl)

		cohortRepo.EXPECT().
			GetCohortByID("cohort-1", 42).
			Return(&domain.Cohort{ID: "cohort-1", OwnerID: 42}, nil)
		reportRepo.EXPECT().
			CountActiveReports(42).
			Return(0, nil)
		billingRepo.EXPECT().
			GetSubscriptionByOwnerID(42).
			Return(nil, nil)
		snapshotRepo.EXPECT().
			GetLatestSnapshot("cohort-1").
			Return(nil, nil)

		service := &Service{reportRepo: reportRepo, cohortRepo: cohortRepo, snapshotRepo: snapshotRepo, billingRepo: billingRepo}

		_, err := service.CreateReport(42, "cohort-1")
		assert.ErrorIs(t, err, ErrNoSnapshots)
	})

	t.Run("Plano gratuito com relatório ativo recusa novo relatório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reportRepo := mocks.NewMockReportRepository(ctrl)
		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		billingRepo := mocks.NewMockBillingRepository(ctrl)

		cohortRepo.EXPECT().
			GetCohortByID("cohort-1", 42).
			Return(&domain.Cohort{ID: "cohort-1", OwnerID: 42}, nil)
		reportRepo.EXPECT().
			CountActiveReports(42).
			Return(FreePlanReportLimit, nil)
		billingRepo.EXPECT().
			GetSubscriptionByOwnerID(42).
			Return(nil, nil)

		service := &Service{reportRepo: reportRepo, cohortRepo: cohortRepo, billingRepo: billingRepo}

		_, err := service.CreateReport(42, "cohort-1")
		assert.ErrorIs(t, err, ErrReportLimitReached)
	})

	t.Run("Assinante pode criar relatório além do limite gratuito", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reportRepo := mocks.NewMockReportRepository(ctrl)
		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
		billingRepo := mocks.NewMockBillingRepository(ctrl)

		periodEnd := time.Now().Add(24 * time.Hour)

		cohortRepo.EXPECT().
			GetCohortByID("cohort-1", 42).
			Return(&domain.Cohort{ID: "cohort-1", OwnerID: 42}, nil)
		reportRepo.EXPECT().
			CountActiveReports(42).
			Return(FreePlanReportLimit, nil)
		billingRepo.EXPECT().
			GetSubscriptionByOwnerID(42).
			Return(&domain.Subscription{
				Status:           domain.SubscriptionActive,
				CurrentPeriodEnd: &periodEnd,
			}, nil)
		snapshotRepo.EXPECT().
			GetLatestSnapshot("cohort-1").
			Return(&domain.Snapshot{ID: "snap-1"}, nil)
		reportRepo.EXPECT().
			CreateReport(gomock.Any()).
			DoAndReturn(func(report *domain.Report) (*domain.Report, error) {
				report.ID = "report-2"
				return report, nil
			})

		service := &Service{reportRepo: reportRepo, cohortRepo: cohortRepo, snapshotRepo: snapshotRepo, billingRepo: billingRepo}

		report, err := service.CreateReport(42, "cohort-1")
		assert.NoError(t, err)
		assert.Equal(t, "report-2", report.ID)
	})

	t.Run("Relatório recebe slug opaco e validade de 30 dias", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reportRepo := mocks.NewMockReportRepository(ctrl)
		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
		billingRepo := mocks.NewMockBillingRepository(ctrl)

		cohortRepo.EXPECT().
			GetCohortByID("cohort-1", 42).
			Return(&domain.Cohort{ID: "cohort-1", OwnerID: 42}, nil)
		reportRepo.EXPECT().
			CountActiveReports(42).
			Return(0, nil)
		billingRepo.EXPECT().
			GetSubscriptionByOwnerID(42).
			Return(nil, nil)
		snapshotRepo.EXPECT().
			GetLatestSnapshot("cohort-1").
			Return(&domain.Snapshot{ID: "snap-1"}, nil)

		before := time.Now()
		reportRepo.EXPECT().
			CreateReport(gomock.Any()).
			DoAndReturn(func(report *domain.Report) (*domain.Report, error) {
				assert.Equal(t, 42, report.OwnerID)
				assert.Equal(t, "cohort-1", report.CohortID)
				assert.Len(t, report.Slug, 12)
				assert.True(t, report.ExpiresAt.After(before.AddDate(0, 0, ShareExpiryDays-1)))
				report.ID = "report-1"
				return report, nil
			})

		service := &Service{reportRepo: reportRepo, cohortRepo: cohortRepo, snapshotRepo: snapshotRepo, billingRepo: billingRepo}

		report, err := service.CreateReport(42, "cohort-1")
		assert.NoError(t, err)
		assert.Equal(t, "report-1", report.ID)
	})
}

func TestService_GetReportData(t *testing.T) {
	t.Run("Slug desconhecido retorna não encontrado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reportRepo := mocks.NewMockReportRepository(ctrl)
		reportRepo.EXPECT().GetReportBySlug("nope").Return(nil, nil)

		service := &Service{
			reportRepo:   reportRepo,
			cohortRepo:   mocks.NewMockCohortRepository(ctrl),
			snapshotRepo: mocks.NewMockSnapshotRepository(ctrl),
		}

		_, err := service.GetReportData("nope")
		assert.ErrorIs(t, err, ErrReportNotFound)
	})

	t.Run("Relatório expirado é recusado sem tocar nos snapshots", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reportRepo := mocks.NewMockReportRepository(ctrl)
		reportRepo.EXPECT().
			GetReportBySlug("old").
			Return(&domain.Report{
				Slug:      "old",
				ExpiresAt: time.Now().Add(-time.Hour),
			}, nil)

		service := &Service{
			reportRepo:   reportRepo,
			cohortRepo:   mocks.NewMockCohortRepository(ctrl),
			snapshotRepo: mocks.NewMockSnapshotRepository(ctrl),
		}

		_, err := service.GetReportData("old")
		assert.ErrorIs(t, err, ErrReportExpired)
	})

	t.Run("Dois snapshots produzem itens e deltas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reportRepo := mocks.NewMockReportRepository(ctrl)
		cohortRepo := mocks.NewMockCohortRepository(ctrl)
		snapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		reportRepo.EXPECT().
			GetReportBySlug("abc123").
			Return(&domain.Report{
				Slug:      "abc123",
				OwnerID:   42,
				CohortID:  "cohort-1",
				ExpiresAt: time.Now().Add(24 * time.Hour),
			}, nil)

		cohortRepo.EXPECT().
			GetCohortByID("cohort-1", 42).
			Return(&domain.Cohort{ID: "cohort-1", OwnerID: 42, Name: "Óticas centro"}, nil)

		snapshotRepo.EXPECT().
			ListSnapshotInfos("cohort-1", 42, 2).
			Return([]*domain.SnapshotInfo{
				{ID: "snap-2"},
				{ID: "snap-1"},
			}, nil)

		snapshotRepo.EXPECT().
			GetSnapshotByID("snap-2", 42).
			Return(&domain.Snapshot{ID: "snap-2", Items: []domain.RankedPlace{
				place("b", "Loja B", 1),
				place("a", "Loja A", 2),
			}}, nil)

		snapshotRepo.EXPECT().
			GetSnapshotByID("snap-1", 42).
			Return(&domain.Snapshot{ID: "snap-1", Items: []domain.RankedPlace{
				place("a", "Loja A", 1),
				place("b", "Loja B", 2),
			}}, nil)

		service := &Service{reportRepo: reportRepo, cohortRepo: cohortRepo, snapshotRepo: snapshotRepo}

		data, err := service.GetReportData("abc123")
		assert.NoError(t, err)
		assert.Equal(t, "Óticas centro", data.Cohort.Name)
		assert.Equal(t, "snap-2", data.LatestSnapshot.ID)
		assert.Equal(t, "snap-1", data.PreviousSnapshot.ID)
		assert.Len(t, data.Items, 2)
		assert.Len(t, data.Deltas, 2)
	})
}

func TestBuildDeltas(t *testing.T) {
	t.Run("Delta positivo é subida e negativo é queda", func(t *testing.T) {
		previous := []domain.RankedPlace{
			place("a", "Loja A", 1),
			place("b", "Loja B", 2),
		}
		current := []domain.RankedPlace{
			place("b", "Loja B", 1),
			place("a", "Loja A", 2),
		}

		deltas := buildDeltas(previous, current)

		assert.Len(t, deltas, 2)
		assert.Equal(t, "Loja B", deltas[0].Name)
		assert.Equal(t, 1, deltas[0].Delta)
		assert.Equal(t, "Loja A", deltas[1].Name)
		assert.Equal(t, -1, deltas[1].Delta)
	})

	t.Run("Item sem movimentação entra com delta zero", func(t *testing.T) {
		items := []domain.RankedPlace{place("a", "Loja A", 1)}

		deltas := buildDeltas(items, items)

		assert.Len(t, deltas, 1)
		assert.Equal(t, "Loja A", deltas[0].Name)
		assert.Zero(t, deltas[0].Delta)
	})

	t.Run("Itens sem par são ignorados", func(t *testing.T) {
		previous := []domain.RankedPlace{place("a", "Loja A", 1)}
		current := []domain.RankedPlace{place("b", "Loja B", 1)}
		assert.Empty(t, buildDeltas(previous, current))
	})

	t.Run("Maiores movimentações em módulo vêm primeiro, limitadas ao teto", func(t *testing.T) {
		previous := make([]domain.RankedPlace, 0, 10)
		current := make([]domain.RankedPlace, 0, 10)
		for i := 1; i <= 10; i++ {
			id := string(rune('a' + i - 1))
			previous = append(previous, place(id, "Loja "+strings.ToUpper(id), i))
			// Inverte a lista: deltas variados, maiores nas pontas
			current = append(current, place(id, "Loja "+strings.ToUpper(id), 11-i))
		}

		deltas := buildDeltas(previous, current)

		assert.Len(t, deltas, MaxReportDeltas)
		assert.Equal(t, 9, abs(deltas[0].Delta))
		for i := 1; i < len(deltas); i++ {
			assert.GreaterOrEqual(t, abs(deltas[i-1].Delta), abs(deltas[i].Delta))
		}
	})
}
