package service

import (
	"path/filepath"
	"testing"
	"time"

	"singlang/internal/database"
	"singlang/internal/models"
	"singlang/internal/repository"
)

func setupServiceDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "service_test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *database.DB) *models.User {
	t.Helper()
	user, err := repository.NewUserRepository(db).CreateUser("testuser", "test@example.com", "hash", "Pat", "Sam")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// TestGenerateWeeklyScheduleIdempotent verifies that generating twice within
// the same week returns the stored schedule unchanged and leaves exactly one
// schedule row for the week.
func TestGenerateWeeklyScheduleIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupServiceDB(t)
	user := seedUser(t, db)

	catalogRepo := repository.NewCatalogRepository(db)
	err := catalogRepo.ReplaceModuleLessons("alphabets", "Module 1", []models.Lesson{
		{LessonNumber: 1, Level: "beginner", Signs: []models.Sign{{Title: "A"}, {Title: "B"}}},
		{LessonNumber: 2, Level: "beginner", Signs: []models.Sign{{Title: "C"}, {Title: "D"}}},
	})
	if err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}

	studyPlanRepo := repository.NewStudyPlanRepository(db)
	_, err = studyPlanRepo.Create(user.ID, []models.SubjectPlan{{
		Subject:        "alphabets",
		StartingLevel:  "beginner",
		StartingModule: "Module 1",
		WeeklyLessons:  1,
		StudyDays:      []string{"Mon", "Wed"},
	}})
	if err != nil {
		t.Fatalf("Failed to create study plan: %v", err)
	}

	svc := NewScheduleService(
		repository.NewScheduleRepository(db),
		studyPlanRepo,
		catalogRepo,
		repository.NewProgressRepository(db),
	)
	svc.now = func() time.Time { return date(2026, time.March, 4) } // Wednesday

	first, created, err := svc.GenerateWeeklySchedule(user.ID)
	if err != nil {
		t.Fatalf("First generation failed: %v", err)
	}
	if !created {
		t.Fatal("expected the first call to create a schedule")
	}
	if first.WeekStart != "2026-03-02" {
		t.Errorf("week start = %s, want 2026-03-02", first.WeekStart)
	}
	if len(first.Entries) != 2 {
		t.Fatalf("expected 2 entries (1 per study day), got %d", len(first.Entries))
	}

	second, created, err := svc.GenerateWeeklySchedule(user.ID)
	if err != nil {
		t.Fatalf("Second generation failed: %v", err)
	}
	if created {
		t.Error("expected the second call to return the stored schedule")
	}
	if second.WeekStart != first.WeekStart || len(second.Entries) != len(first.Entries) {
		t.Errorf("second schedule differs: week %s with %d entries", second.WeekStart, len(second.Entries))
	}

	var scheduleRows, entryRows int
	if err := db.QueryRow("SELECT COUNT(*) FROM weekly_schedules WHERE user_id = ?", user.ID).Scan(&scheduleRows); err != nil {
		t.Fatalf("Failed to count schedules: %v", err)
	}
	if scheduleRows != 1 {
		t.Errorf("expected 1 schedule row, got %d", scheduleRows)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM schedule_entries").Scan(&entryRows); err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}
	if entryRows != len(first.Entries) {
		t.Errorf("expected %d entry rows, got %d", len(first.Entries), entryRows)
	}
}

// TestSaveQuizProgressLatestAttemptWins verifies that answering the same
// sign correct then incorrect leaves exactly one record scoring zero.
func TestSaveQuizProgressLatestAttemptWins(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupServiceDB(t)
	user := seedUser(t, db)

	quizRepo := repository.NewQuizRepository(db)
	svc := NewQuizService(quizRepo, repository.NewCatalogRepository(db))

	if err := svc.SaveQuizProgress(user.ID, "Module 1", "A", true); err != nil {
		t.Fatalf("First attempt failed: %v", err)
	}
	if err := svc.SaveQuizProgress(user.ID, "Module 1", "A", false); err != nil {
		t.Fatalf("Second attempt failed: %v", err)
	}

	attempts, err := svc.GetModuleAttempts(user.ID, "Module 1")
	if err != nil {
		t.Fatalf("Failed to load attempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected exactly 1 attempt record, got %d", len(attempts))
	}
	if attempts[0].Score != 0 || attempts[0].Answer != "incorrect" {
		t.Errorf("attempt = %q/%d, want incorrect/0", attempts[0].Answer, attempts[0].Score)
	}

	score, err := svc.GetModuleScore(user.ID, "Module 1")
	if err != nil {
		t.Fatalf("Failed to load score: %v", err)
	}
	if score != 0 {
		t.Errorf("module score = %d, want 0", score)
	}
}
