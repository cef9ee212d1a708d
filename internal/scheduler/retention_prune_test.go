package scheduler

import (
	"testing"
	"time"

	"github.com/jbiddulph/localseo/infrastructure/repository/mocks"
	"github.com/jbiddulph/localseo/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNewRetentionPruneService_DefaultBatchSize(t *testing.T) {
	appConfig := &config.Config{
		RetentionPrune: config.RetentionPrune{
			CronSchedule: "0 4 * * *",
			Enabled:      true,
			SnapshotDays: 90,
			AlertDays:    120,
		},
	}

	service := NewRetentionPruneService(nil, nil, nil, appConfig)

	assert.Equal(t, 500, service.config.DeleteBatchSize)
	assert.Equal(t, "0 4 * * *", service.config.CronSchedule)
}

func TestRetentionPruneService_runPrune(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)
	mockAlertRepo := mocks.NewMockAlertRepository(ctrl)
	mockReportRepo := mocks.NewMockReportRepository(ctrl)

	service := &RetentionPruneService{
		config: RetentionPruneConfig{
			SnapshotDays:    90,
			AlertDays:       120,
			DeleteBatchSize: 200,
		},
		snapshotRepo: mockSnapshotRepo,
		alertRepo:    mockAlertRepo,
		reportRepo:   mockReportRepo,
	}

	mockSnapshotRepo.EXPECT().DeleteOlderThan(90, 200).Return(int64(12), nil)
	mockAlertRepo.EXPECT().DeleteOlderThan(120, 200).Return(int64(3), nil)
	mockReportRepo.EXPECT().DeleteExpired().Return(int64(1), nil)

	service.runPrune()

	status := service.GetStatus()
	assert.Equal(t, int64(12), status["last_pruned_snapshots"])
	assert.Equal(t, int64(3), status["last_pruned_alerts"])
	assert.Equal(t, int64(1), status["last_pruned_reports"])
	assert.False(t, status["last_prune_completed_at"].(time.Time).IsZero())
}

func TestRetentionPruneService_runPrune_SkipsWhenAlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada esperada nos repositórios
	service := &RetentionPruneService{
		config: RetentionPruneConfig{
			SnapshotDays:    90,
			AlertDays:       120,
			DeleteBatchSize: 200,
		},
		snapshotRepo: mocks.NewMockSnapshotRepository(ctrl),
		alertRepo:    mocks.NewMockAlertRepository(ctrl),
		reportRepo:   mocks.NewMockReportRepository(ctrl),
		pruneRunning: true,
	}

	service.runPrune()

	assert.True(t, service.GetStatus()["last_prune_started_at"].(time.Time).IsZero())
}
