package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/jellywind/jellywind-api/infrastructure/repository/mocks"
)

func TestReportRetentionService_RunRetention(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReportRepository(ctrl)

	service := &ReportRetentionService{
		reportRepo: mockRepo,
		config: ReportRetentionConfig{
			MaxAgeDays: 30,
			Enabled:    true,
		},
	}

	mockRepo.EXPECT().
		DeleteOlderThan(30).
		Return(int64(4), nil)

	err := service.RunRetention()
	assert.NoError(t, err)
	assert.Equal(t, int64(4), service.lastRunDeleted)
	assert.False(t, service.lastRunStartedAt.IsZero())
	assert.False(t, service.lastRunCompletedAt.IsZero())
}

func TestReportRetentionService_RunRetention_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockReportRepository(ctrl)

	service := &ReportRetentionService{
		reportRepo: mockRepo,
		config: ReportRetentionConfig{
			MaxAgeDays: 30,
			Enabled:    true,
		},
	}

	mockRepo.EXPECT().
		DeleteOlderThan(30).
		Return(int64(0), errors.New("connection refused"))

	err := service.RunRetention()
	assert.Error(t, err)
	assert.False(t, service.runRunning)
}

func TestReportRetentionService_GetStatus(t *testing.T) {
	service := &ReportRetentionService{
		config: ReportRetentionConfig{
			CronSchedule: "0 4 * * *",
			MaxAgeDays:   30,
			Enabled:      true,
		},
	}

	status := service.GetStatus()
	assert.Equal(t, true, status["retention_enabled"])
	assert.Equal(t, "0 4 * * *", status["retention_cron"])
	assert.Equal(t, 30, status["max_age_days"])
}
