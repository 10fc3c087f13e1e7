package service

import (
	"fmt"

	"koreanvocab/internal/domain"
	"koreanvocab/internal/repository"

	"go.uber.org/zap"
)

// DefaultRetentionDays is how long finished sessions are kept
const DefaultRetentionDays = 90

// RecentLimit is how many past sessions a summary lists
const RecentLimit = 5

// Summary is a user's play history
type Summary struct {
	Best   []domain.BestScore
	Recent []domain.SessionResult
}

// StatsService handles statistics and cleanup
type StatsService struct {
	resultRepo    repository.ResultRepository
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(resultRepo repository.ResultRepository, retentionDays int, logger *zap.Logger) *StatsService {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &StatsService{
		resultRepo:    resultRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes session results past the retention period
func (s *StatsService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of old results", zap.Int("retention_days", s.retentionDays))

	err := s.resultRepo.CleanOldResults(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old results", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}

// Summary returns best scores per mode and the latest sessions
func (s *StatsService) Summary(userID int64) (*Summary, error) {
	best, err := s.resultRepo.GetBestScores(userID)
	if err != nil {
		return nil, fmt.Errorf("get best scores: %w", err)
	}

	recent, err := s.resultRepo.GetRecentResults(userID, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("get recent results: %w", err)
	}

	return &Summary{Best: best, Recent: recent}, nil
}
