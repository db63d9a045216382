package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"singlang/internal/database"
	"singlang/internal/models"
)

// StudyPlanRepository handles study plan database operations
type StudyPlanRepository struct {
	db *database.DB
}

// NewStudyPlanRepository creates a new study plan repository
func NewStudyPlanRepository(db *database.DB) *StudyPlanRepository {
	return &StudyPlanRepository{db: db}
}

// Create inserts a study plan and its subject entries in one transaction
func (r *StudyPlanRepository) Create(userID int64, subjects []models.SubjectPlan) (*models.StudyPlan, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	planID, err := tx.ExecReturningID("INSERT INTO study_plans (user_id) VALUES (?)", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create study plan: %w", err)
	}

	if err := insertPlanSubjects(tx, planID, subjects); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetByUserID(userID)
}

// GetByUserID retrieves a user's study plan with its subject entries.
// Returns nil if the user has no plan.
func (r *StudyPlanRepository) GetByUserID(userID int64) (*models.StudyPlan, error) {
	query := "SELECT id, user_id, created_at, updated_at FROM study_plans WHERE user_id = ?"

	plan := &models.StudyPlan{}
	err := r.db.QueryRow(query, userID).Scan(&plan.ID, &plan.UserID, &plan.CreatedAt, &plan.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	subjectsQuery := `
		SELECT subject, starting_level, starting_module, weekly_lessons, study_days
		FROM study_plan_subjects
		WHERE study_plan_id = ?
		ORDER BY subject
	`
	rows, err := r.db.Query(subjectsQuery, plan.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sp models.SubjectPlan
		var days string
		err := rows.Scan(&sp.Subject, &sp.StartingLevel, &sp.StartingModule, &sp.WeeklyLessons, &days)
		if err != nil {
			return nil, err
		}
		sp.StudyDays = splitDays(days)
		plan.Subjects = append(plan.Subjects, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plan, nil
}

// ReplaceSubjects atomically replaces all of a plan's subject entries
func (r *StudyPlanRepository) ReplaceSubjects(planID int64, subjects []models.SubjectPlan) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM study_plan_subjects WHERE study_plan_id = ?", planID); err != nil {
		return fmt.Errorf("failed to clear plan subjects: %w", err)
	}

	if err := insertPlanSubjects(tx, planID, subjects); err != nil {
		return err
	}

	if _, err := tx.Exec("UPDATE study_plans SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", planID); err != nil {
		return fmt.Errorf("failed to touch plan: %w", err)
	}

	return tx.Commit()
}

// UpdateSubjectLevel moves one subject of a plan to a new level and starting module
func (r *StudyPlanRepository) UpdateSubjectLevel(planID int64, subject, level, startingModule string) error {
	query := `
		UPDATE study_plan_subjects
		SET starting_level = ?, starting_module = ?
		WHERE study_plan_id = ? AND subject = ?
	`
	_, err := r.db.Exec(query, level, startingModule, planID, subject)
	return err
}

func insertPlanSubjects(tx *database.Tx, planID int64, subjects []models.SubjectPlan) error {
	query := `
		INSERT INTO study_plan_subjects (study_plan_id, subject, starting_level, starting_module, weekly_lessons, study_days)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, sp := range subjects {
		_, err := tx.Exec(query, planID, sp.Subject, sp.StartingLevel, sp.StartingModule, sp.WeeklyLessons, joinDays(sp.StudyDays))
		if err != nil {
			return fmt.Errorf("failed to insert plan subject %q: %w", sp.Subject, err)
		}
	}
	return nil
}

// Study days are stored as a comma-separated list of weekday abbreviations

func joinDays(days []string) string {
	return strings.Join(days, ",")
}

func splitDays(days string) []string {
	if days == "" {
		return nil
	}
	parts := strings.Split(days, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
