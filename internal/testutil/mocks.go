package testutil

import (
	"context"

	"koreanvocab/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetPreferences(userID int64) (domain.Preferences, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.Preferences), args.Error(1)
}

func (m *MockUserRepository) SavePreferences(userID int64, prefs domain.Preferences) error {
	args := m.Called(userID, prefs)
	return args.Error(0)
}

// MockResultRepository is a mock for ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) SaveResult(result *domain.SessionResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockResultRepository) GetBestScores(userID int64) ([]domain.BestScore, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BestScore), args.Error(1)
}

func (m *MockResultRepository) GetRecentResults(userID int64, limit int) ([]domain.SessionResult, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionResult), args.Error(1)
}

func (m *MockResultRepository) CleanOldResults(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MockLoader is a mock for catalog.Loader
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, bin domain.Bin) (*domain.Catalog, error) {
	args := m.Called(ctx, bin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}
