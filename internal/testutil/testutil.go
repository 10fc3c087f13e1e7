package testutil

import (
	"fmt"
	"time"

	"koreanvocab/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestCatalog creates a Words catalog with n records in each category
func NewTestCatalog(n int, categories ...string) *domain.Catalog {
	cat := &domain.Catalog{
		Bin:        domain.BinWords,
		Categories: categories,
		Words:      make(map[string][]domain.WordRecord, len(categories)),
	}
	for _, c := range categories {
		for i := 0; i < n; i++ {
			cat.Words[c] = append(cat.Words[c], NewTestRecord(c, i))
		}
	}
	return cat
}

// NewTestRecord creates a record whose words are unique per category and index
func NewTestRecord(category string, i int) domain.WordRecord {
	idx := fmt.Sprintf("%03d", i)
	return domain.WordRecord{
		Index:   idx,
		English: fmt.Sprintf("%s %d", category, i),
		Korean:  fmt.Sprintf("%s 한국어 %d", category, i),
		AudioEn: fmt.Sprintf("English/Words/%s/%s.mp3", category, idx),
		AudioKo: fmt.Sprintf("Korean/Words/%s/%s.mp3", category, idx),
	}
}
