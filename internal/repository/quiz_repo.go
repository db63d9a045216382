package repository

import (
	"fmt"
	"time"

	"singlang/internal/database"
	"singlang/internal/models"
)

// QuizRepository handles quiz questions and quiz attempt records
type QuizRepository struct {
	db *database.DB
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *database.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// GetQuestionsByModule retrieves all authored questions for a module
func (r *QuizRepository) GetQuestionsByModule(module string) ([]models.QuizQuestion, error) {
	query := `
		SELECT id, module, sign_title, question_type, image_url
		FROM quiz_questions
		WHERE module = ?
	`

	rows, err := r.db.Query(query, module)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.QuizQuestion
	for rows.Next() {
		var q models.QuizQuestion
		if err := rows.Scan(&q.ID, &q.Module, &q.SignTitle, &q.Type, &q.ImageURL); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// ReplaceModuleQuestions replaces a module's question set (sync job write path)
func (r *QuizRepository) ReplaceModuleQuestions(module string, questions []models.QuizQuestion) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM quiz_questions WHERE module = ?", module); err != nil {
		return fmt.Errorf("failed to clear module questions: %w", err)
	}

	query := "INSERT INTO quiz_questions (module, sign_title, question_type, image_url) VALUES (?, ?, ?, ?)"
	for _, q := range questions {
		if _, err := tx.Exec(query, module, q.SignTitle, q.Type, q.ImageURL); err != nil {
			return fmt.Errorf("failed to insert question %q: %w", q.SignTitle, err)
		}
	}

	return tx.Commit()
}

// SaveAttempt records a quiz attempt. Atomic upsert keyed on
// (user, module, signTitle): the latest attempt wins.
func (r *QuizRepository) SaveAttempt(userID int64, module, signTitle, answer string, score int) error {
	query := `
		INSERT INTO quiz_progress (user_id, module, sign_title, answer, score, answered_at)
		VALUES (?, ?, ?, ?, ?, ?)
	` + r.db.GetDialect().UpsertClause("user_id, module, sign_title", "answer", "score", "answered_at")

	_, err := r.db.Exec(query, userID, module, signTitle, answer, score, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save quiz attempt: %w", err)
	}
	return nil
}

// GetModuleScore sums the user's attempt scores for one module
func (r *QuizRepository) GetModuleScore(userID int64, module string) (int, error) {
	query := "SELECT COALESCE(SUM(score), 0) FROM quiz_progress WHERE user_id = ? AND module = ?"

	var total int
	err := r.db.QueryRow(query, userID, module).Scan(&total)
	return total, err
}

// GetModuleScores sums the user's attempt scores grouped by module
func (r *QuizRepository) GetModuleScores(userID int64) (map[string]int, error) {
	query := "SELECT module, COALESCE(SUM(score), 0) FROM quiz_progress WHERE user_id = ? GROUP BY module"

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string]int)
	for rows.Next() {
		var module string
		var total int
		if err := rows.Scan(&module, &total); err != nil {
			return nil, err
		}
		scores[module] = total
	}

	return scores, rows.Err()
}

// GetAttemptsByUserModule retrieves the user's attempt records for one module
func (r *QuizRepository) GetAttemptsByUserModule(userID int64, module string) ([]models.QuizProgress, error) {
	query := `
		SELECT id, user_id, module, sign_title, answer, score, answered_at
		FROM quiz_progress
		WHERE user_id = ? AND module = ?
		ORDER BY answered_at ASC
	`

	rows, err := r.db.Query(query, userID, module)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []models.QuizProgress
	for rows.Next() {
		var a models.QuizProgress
		err := rows.Scan(&a.ID, &a.UserID, &a.Module, &a.SignTitle, &a.Answer, &a.Score, &a.AnsweredAt)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}
