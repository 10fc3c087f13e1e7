package repository

import (
	"koreanvocab/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
	GetPreferences(userID int64) (domain.Preferences, error)
	SavePreferences(userID int64, prefs domain.Preferences) error
}

// ResultRepository defines finished session operations
type ResultRepository interface {
	SaveResult(result *domain.SessionResult) error
	GetBestScores(userID int64) ([]domain.BestScore, error)
	GetRecentResults(userID int64, limit int) ([]domain.SessionResult, error)
	CleanOldResults(days int) error
}
