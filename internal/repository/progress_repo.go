package repository

import (
	"fmt"
	"time"

	"singlang/internal/database"
	"singlang/internal/models"
)

// ProgressRepository handles watched-sign progress records. The table is an
// append-only log; rows are never updated or deleted.
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// SaveSignProgress appends a watched record. Idempotent on
// (user, lesson, sign, level): a duplicate watch event is a no-op.
// Returns true if a new record was created.
func (r *ProgressRepository) SaveSignProgress(p *models.SignProgress) (bool, error) {
	query := `
		INSERT INTO sign_progress (user_id, lesson_id, sign_id, level, module, subject, sign_title, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	` + r.db.GetDialect().InsertIgnoreClause("user_id, lesson_id, sign_id, level")

	result, err := r.db.Exec(query,
		p.UserID, p.LessonID, p.SignID, p.Level, p.Module, p.Subject, p.SignTitle, models.StatusWatched,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save sign progress: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetWatchedSignIDs retrieves the set of sign ids the user has watched
func (r *ProgressRepository) GetWatchedSignIDs(userID int64) (map[int64]bool, error) {
	query := "SELECT DISTINCT sign_id FROM sign_progress WHERE user_id = ? AND status = ?"
	return r.querySignIDSet(query, userID, models.StatusWatched)
}

// GetWatchedSignIDsBySubject retrieves the user's watched sign ids for one subject
func (r *ProgressRepository) GetWatchedSignIDsBySubject(userID int64, subject string) (map[int64]bool, error) {
	query := "SELECT DISTINCT sign_id FROM sign_progress WHERE user_id = ? AND status = ? AND subject = ?"
	return r.querySignIDSet(query, userID, models.StatusWatched, subject)
}

// GetByUserLesson retrieves the user's watched records for one lesson
func (r *ProgressRepository) GetByUserLesson(userID, lessonID int64) ([]models.SignProgress, error) {
	query := `
		SELECT id, user_id, lesson_id, sign_id, level, module, subject, sign_title, status, created_at
		FROM sign_progress
		WHERE user_id = ? AND lesson_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, userID, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SignProgress
	for rows.Next() {
		var p models.SignProgress
		err := rows.Scan(
			&p.ID, &p.UserID, &p.LessonID, &p.SignID, &p.Level,
			&p.Module, &p.Subject, &p.SignTitle, &p.Status, &p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}

	return records, rows.Err()
}

// GetSignIDsWatchedSince retrieves the distinct sign ids from records created
// on or after the given instant. Deduplicated here rather than assuming the
// table's uniqueness constraint held at write time.
func (r *ProgressRepository) GetSignIDsWatchedSince(userID int64, since time.Time) (map[int64]bool, error) {
	query := "SELECT DISTINCT sign_id FROM sign_progress WHERE user_id = ? AND created_at >= ?"
	return r.querySignIDSet(query, userID, since)
}

// CountWatchedAtLevel counts the user's distinct watched signs for a subject at a level
func (r *ProgressRepository) CountWatchedAtLevel(userID int64, subject, level string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT sign_id)
		FROM sign_progress
		WHERE user_id = ? AND subject = ? AND level = ? AND status = ?
	`

	var count int
	err := r.db.QueryRow(query, userID, subject, level, models.StatusWatched).Scan(&count)
	return count, err
}

func (r *ProgressRepository) querySignIDSet(query string, args ...interface{}) (map[int64]bool, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}

	return ids, rows.Err()
}
