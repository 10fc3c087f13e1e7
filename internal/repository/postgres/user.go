package postgres

import (
	"database/sql"

	"koreanvocab/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	var authorized bool
	query := `SELECT authorized FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&authorized)

	if err == sql.ErrNoRows {
		// User doesn't exist yet
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return authorized, nil
}

// AuthorizeUser marks user as authorized
func (r *UserRepo) AuthorizeUser(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, TRUE)
		ON CONFLICT (user_id)
		DO UPDATE SET authorized = TRUE
	`
	_, err := r.db.Exec(query, userID)
	return err
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) error {
	query := `
		INSERT INTO users (user_id, authorized)
		VALUES ($1, FALSE)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(query, userID)
	return err
}


// GetPreferences returns the last direction and mode the user played with
func (r *UserRepo) GetPreferences(userID int64) (domain.Preferences, error) {
	var direction, mode string
	query := `SELECT direction, mode FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&direction, &mode)

	if err == sql.ErrNoRows {
		return domain.DefaultPreferences(), nil
	}
	if err != nil {
		return domain.Preferences{}, err
	}

	prefs := domain.DefaultPreferences()
	if d, err := domain.ParseDirection(direction); err == nil {
		prefs.Direction = d
	}
	if m, err := domain.ParseMode(mode); err == nil {
		prefs.Mode = m
	}
	return prefs, nil
}

// SavePreferences stores the user's direction and mode
func (r *UserRepo) SavePreferences(userID int64, prefs domain.Preferences) error {
	query := `
		INSERT INTO users (user_id, direction, mode)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET direction = EXCLUDED.direction, mode = EXCLUDED.mode
	`
	_, err := r.db.Exec(query, userID, string(prefs.Direction), string(prefs.Mode))
	return err
}
