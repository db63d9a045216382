package repository

import (
	"database/sql"
	"fmt"
	"time"

	"singlang/internal/database"
	"singlang/internal/models"
)

// ScheduleRepository handles weekly schedule database operations
type ScheduleRepository struct {
	db *database.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *database.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetByUserWeek retrieves the schedule for (user, weekStart).
// Returns nil if none has been generated.
func (r *ScheduleRepository) GetByUserWeek(userID int64, weekStart string) (*models.WeeklySchedule, error) {
	query := "SELECT id, user_id, week_start, generated_at FROM weekly_schedules WHERE user_id = ? AND week_start = ?"
	return r.scanSchedule(r.db.QueryRow(query, userID, weekStart))
}

// GetLatestByUser retrieves the user's most recent schedule by week start.
// Returns nil if the user has never had a schedule.
func (r *ScheduleRepository) GetLatestByUser(userID int64) (*models.WeeklySchedule, error) {
	query := `
		SELECT id, user_id, week_start, generated_at
		FROM weekly_schedules
		WHERE user_id = ?
		ORDER BY week_start DESC
		LIMIT 1
	`
	return r.scanSchedule(r.db.QueryRow(query, userID))
}

// Upsert stores a fully-formed schedule keyed on (user, week_start). A
// concurrent upsert for the same key leaves the last writer's complete
// document, never a partial merge.
func (r *ScheduleRepository) Upsert(schedule *models.WeeklySchedule) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsert := "INSERT INTO weekly_schedules (user_id, week_start, generated_at) VALUES (?, ?, ?) " +
		r.db.GetDialect().UpsertClause("user_id, week_start", "generated_at")
	if _, err := tx.Exec(upsert, schedule.UserID, schedule.WeekStart, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert schedule: %w", err)
	}

	var scheduleID int64
	err = tx.QueryRow(
		"SELECT id FROM weekly_schedules WHERE user_id = ? AND week_start = ?",
		schedule.UserID, schedule.WeekStart,
	).Scan(&scheduleID)
	if err != nil {
		return fmt.Errorf("failed to read schedule id: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM schedule_entries WHERE schedule_id = ?", scheduleID); err != nil {
		return fmt.Errorf("failed to clear schedule entries: %w", err)
	}

	entryQuery := `
		INSERT INTO schedule_entries (schedule_id, entry_date, weekday, subject, module, level, lesson_label, lesson_id, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, entry := range schedule.Entries {
		_, err := tx.Exec(entryQuery,
			scheduleID, entry.Date, entry.Weekday, entry.Subject, entry.Module,
			entry.Level, entry.LessonLabel, entry.LessonID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert schedule entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	schedule.ID = scheduleID
	return nil
}

// DeleteByUserWeek removes the schedule for (user, weekStart), if any
func (r *ScheduleRepository) DeleteByUserWeek(userID int64, weekStart string) error {
	_, err := r.db.Exec("DELETE FROM weekly_schedules WHERE user_id = ? AND week_start = ?", userID, weekStart)
	return err
}

func (r *ScheduleRepository) scanSchedule(row *sql.Row) (*models.WeeklySchedule, error) {
	schedule := &models.WeeklySchedule{}
	err := row.Scan(&schedule.ID, &schedule.UserID, &schedule.WeekStart, &schedule.GeneratedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := r.getEntries(schedule.ID)
	if err != nil {
		return nil, err
	}
	schedule.Entries = entries

	return schedule, nil
}

func (r *ScheduleRepository) getEntries(scheduleID int64) ([]models.ScheduleEntry, error) {
	query := `
		SELECT entry_date, weekday, subject, module, level, lesson_label, lesson_id
		FROM schedule_entries
		WHERE schedule_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ScheduleEntry
	for rows.Next() {
		var entry models.ScheduleEntry
		err := rows.Scan(
			&entry.Date,
			&entry.Weekday,
			&entry.Subject,
			&entry.Module,
			&entry.Level,
			&entry.LessonLabel,
			&entry.LessonID,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
