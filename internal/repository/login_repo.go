package repository

import (
	"fmt"

	"singlang/internal/database"
)

// LoginRepository handles login activity records, kept solely for streak
// computation. At most one row per (user, calendar day).
type LoginRepository struct {
	db *database.DB
}

// NewLoginRepository creates a new login repository
func NewLoginRepository(db *database.DB) *LoginRepository {
	return &LoginRepository{db: db}
}

// RecordLogin stores a login for the given calendar day (ISO date string).
// Repeated logins on the same day are no-ops.
func (r *LoginRepository) RecordLogin(userID int64, date string) error {
	query := "INSERT INTO login_activity (user_id, login_date) VALUES (?, ?) " +
		r.db.GetDialect().InsertIgnoreClause("user_id, login_date")

	_, err := r.db.Exec(query, userID, date)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// GetLoginDates retrieves the user's distinct login days, most recent first
func (r *LoginRepository) GetLoginDates(userID int64) ([]string, error) {
	query := "SELECT DISTINCT login_date FROM login_activity WHERE user_id = ? ORDER BY login_date DESC"

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}
