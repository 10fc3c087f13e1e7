package service

import (
	"fmt"
	"testing"

	"koreanvocab/internal/domain"
	"koreanvocab/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestStatsService_CleanupOldData(t *testing.T) {
	tests := []struct {
		name          string
		retention     int
		expectedDays  int
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			retention:     30,
			expectedDays:  30,
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "default retention",
			retention:     0,
			expectedDays:  DefaultRetentionDays,
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			retention:     30,
			expectedDays:  30,
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockResultRepository)
			mockRepo.On("CleanOldResults", tt.expectedDays).Return(tt.mockError)

			logger := testutil.NewTestLogger()
			service := NewStatsService(mockRepo, tt.retention, logger)

			err := service.CleanupOldData()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStatsService_Summary(t *testing.T) {
	best := []domain.BestScore{{Mode: domain.ModeQuiz, Score: 80, Games: 2}}
	recent := []domain.SessionResult{{ID: 1, UserID: 123, Mode: domain.ModeQuiz, Score: 80}}

	tests := []struct {
		name          string
		bestErr       error
		recentErr     error
		expectedError bool
	}{
		{name: "summary"},
		{name: "best scores fail", bestErr: fmt.Errorf("db error"), expectedError: true},
		{name: "recent results fail", recentErr: fmt.Errorf("db error"), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockResultRepository)
			if tt.bestErr != nil {
				mockRepo.On("GetBestScores", int64(123)).Return(nil, tt.bestErr)
			} else {
				mockRepo.On("GetBestScores", int64(123)).Return(best, nil)
				if tt.recentErr != nil {
					mockRepo.On("GetRecentResults", int64(123), RecentLimit).Return(nil, tt.recentErr)
				} else {
					mockRepo.On("GetRecentResults", int64(123), RecentLimit).Return(recent, nil)
				}
			}

			service := NewStatsService(mockRepo, 30, testutil.NewTestLogger())

			summary, err := service.Summary(123)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, summary)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, best, summary.Best)
				assert.Equal(t, recent, summary.Recent)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
