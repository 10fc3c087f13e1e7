package postgres

import (
	"database/sql"

	"koreanvocab/internal/domain"

	"github.com/lib/pq"
)

// ResultRepo implements repository.ResultRepository
type ResultRepo struct {
	db *sql.DB
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveResult stores a finished session and fills in its ID and finish time
func (r *ResultRepo) SaveResult(result *domain.SessionResult) error {
	query := `
		INSERT INTO session_results
			(user_id, bin, mode, direction, categories, score, correct, total, accuracy, passes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, finished_at
	`
	return r.db.QueryRow(query,
		result.UserID,
		string(result.Bin),
		string(result.Mode),
		string(result.Direction),
		pq.Array(result.Categories),
		result.Score,
		result.Correct,
		result.Total,
		result.Accuracy,
		result.Passes,
	).Scan(&result.ID, &result.FinishedAt)
}

// GetBestScores returns the best score and game count per mode
func (r *ResultRepo) GetBestScores(userID int64) ([]domain.BestScore, error) {
	query := `
		SELECT mode, MAX(score), COUNT(*)
		FROM session_results
		WHERE user_id = $1
		GROUP BY mode
		ORDER BY mode
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []domain.BestScore
	for rows.Next() {
		var s domain.BestScore
		var mode string
		if err := rows.Scan(&mode, &s.Score, &s.Games); err != nil {
			return nil, err
		}
		s.Mode = domain.Mode(mode)
		scores = append(scores, s)
	}

	return scores, rows.Err()
}

// GetRecentResults returns the latest sessions, newest first
func (r *ResultRepo) GetRecentResults(userID int64, limit int) ([]domain.SessionResult, error) {
	query := `
		SELECT id, user_id, bin, mode, direction, categories, score, correct, total, accuracy, passes, finished_at
		FROM session_results
		WHERE user_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SessionResult
	for rows.Next() {
		var res domain.SessionResult
		var bin, mode, direction string
		if err := rows.Scan(
			&res.ID, &res.UserID, &bin, &mode, &direction, pq.Array(&res.Categories),
			&res.Score, &res.Correct, &res.Total, &res.Accuracy, &res.Passes, &res.FinishedAt,
		); err != nil {
			return nil, err
		}
		res.Bin = domain.Bin(bin)
		res.Mode = domain.Mode(mode)
		res.Direction = domain.Direction(direction)
		results = append(results, res)
	}

	return results, rows.Err()
}

// CleanOldResults deletes sessions older than specified days
func (r *ResultRepo) CleanOldResults(days int) error {
	query := `
		DELETE FROM session_results
		WHERE finished_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
