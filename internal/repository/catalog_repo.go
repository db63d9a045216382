package repository

import (
	"database/sql"
	"fmt"

	"singlang/internal/database"
	"singlang/internal/models"
)

// CatalogRepository handles curriculum catalog database operations.
// Lessons and signs are read-mostly; only the sync job writes them.
type CatalogRepository struct {
	db *database.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *database.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const lessonColumns = "id, subject, module, lesson_number, level"

// GetAllLessons retrieves every lesson with its signs
func (r *CatalogRepository) GetAllLessons() ([]models.Lesson, error) {
	query := fmt.Sprintf("SELECT %s FROM lessons ORDER BY subject, module, lesson_number", lessonColumns)
	return r.queryLessons(query)
}

// GetLessonsBySubject retrieves all lessons for a subject with their signs
func (r *CatalogRepository) GetLessonsBySubject(subject string) ([]models.Lesson, error) {
	query := fmt.Sprintf("SELECT %s FROM lessons WHERE subject = ? ORDER BY module, lesson_number", lessonColumns)
	return r.queryLessons(query, subject)
}

// GetLessonsByModule retrieves all lessons of one module with their signs
func (r *CatalogRepository) GetLessonsByModule(module string) ([]models.Lesson, error) {
	query := fmt.Sprintf("SELECT %s FROM lessons WHERE module = ? ORDER BY lesson_number", lessonColumns)
	return r.queryLessons(query, module)
}

// GetLesson retrieves a single lesson by its progression coordinates.
// Returns nil if no such lesson exists.
func (r *CatalogRepository) GetLesson(subject, module string, lessonNumber int) (*models.Lesson, error) {
	query := fmt.Sprintf("SELECT %s FROM lessons WHERE subject = ? AND module = ? AND lesson_number = ?", lessonColumns)

	lesson := &models.Lesson{}
	err := r.db.QueryRow(query, subject, module, lessonNumber).Scan(
		&lesson.ID,
		&lesson.Subject,
		&lesson.Module,
		&lesson.LessonNumber,
		&lesson.Level,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	signs, err := r.getSignsForLesson(lesson.ID)
	if err != nil {
		return nil, err
	}
	lesson.Signs = signs

	return lesson, nil
}

// GetModuleNames retrieves the distinct module names for a subject at a level
func (r *CatalogRepository) GetModuleNames(subject, level string) ([]string, error) {
	query := "SELECT DISTINCT module FROM lessons WHERE subject = ? AND level = ?"

	rows, err := r.db.Query(query, subject, level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// CountSignsBySubjectLevel counts all catalog signs for a subject at a level
func (r *CatalogRepository) CountSignsBySubjectLevel(subject, level string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM signs s
		JOIN lessons l ON l.id = s.lesson_id
		WHERE l.subject = ? AND l.level = ?
	`

	var count int
	err := r.db.QueryRow(query, subject, level).Scan(&count)
	return count, err
}

// ReplaceModuleLessons replaces a module's entire lesson set in one
// transaction (delete-then-reinsert, the sync job's write path)
func (r *CatalogRepository) ReplaceModuleLessons(subject, module string, lessons []models.Lesson) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Signs cascade with their lessons
	if _, err := tx.Exec("DELETE FROM lessons WHERE subject = ? AND module = ?", subject, module); err != nil {
		return fmt.Errorf("failed to delete module lessons: %w", err)
	}

	for _, lesson := range lessons {
		lessonID, err := tx.ExecReturningID(
			"INSERT INTO lessons (subject, module, lesson_number, level) VALUES (?, ?, ?, ?)",
			subject, module, lesson.LessonNumber, lesson.Level,
		)
		if err != nil {
			return fmt.Errorf("failed to insert lesson %d: %w", lesson.LessonNumber, err)
		}

		for i, sign := range lesson.Signs {
			_, err := tx.Exec(
				"INSERT INTO signs (lesson_id, title, media_url, position) VALUES (?, ?, ?, ?)",
				lessonID, sign.Title, sign.MediaURL, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert sign %q: %w", sign.Title, err)
			}
		}
	}

	return tx.Commit()
}

// queryLessons runs a lesson query and attaches each lesson's signs
func (r *CatalogRepository) queryLessons(query string, args ...interface{}) ([]models.Lesson, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		err := rows.Scan(
			&lesson.ID,
			&lesson.Subject,
			&lesson.Module,
			&lesson.LessonNumber,
			&lesson.Level,
		)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lessons {
		signs, err := r.getSignsForLesson(lessons[i].ID)
		if err != nil {
			return nil, err
		}
		lessons[i].Signs = signs
	}

	return lessons, nil
}

// getSignsForLesson retrieves a lesson's signs in their stored order
func (r *CatalogRepository) getSignsForLesson(lessonID int64) ([]models.Sign, error) {
	query := `
		SELECT id, lesson_id, title, media_url, position
		FROM signs
		WHERE lesson_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signs []models.Sign
	for rows.Next() {
		var sign models.Sign
		err := rows.Scan(
			&sign.ID,
			&sign.LessonID,
			&sign.Title,
			&sign.MediaURL,
			&sign.Position,
		)
		if err != nil {
			return nil, err
		}
		signs = append(signs, sign)
	}

	return signs, rows.Err()
}
