package service

import (
	"testing"
	"time"

	"singlang/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStartFor(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2026, time.March, 2), date(2026, time.March, 2)},
		{"tuesday maps back one day", date(2026, time.March, 3), date(2026, time.March, 2)},
		{"sunday maps back six days", date(2026, time.March, 8), date(2026, time.March, 2)},
		{"time of day is dropped", time.Date(2026, time.March, 4, 23, 59, 0, 0, time.UTC), date(2026, time.March, 2)},
		{"crosses month boundary", date(2026, time.April, 2), date(2026, time.March, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStartFor(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("WeekStartFor(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModuleOrdinal(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Module 1", 1},
		{"Module 12", 12},
		{"Module 3- Colors", 3},
		{"Greetings", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := moduleOrdinal(tt.name); got != tt.want {
			t.Errorf("moduleOrdinal(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func makeLesson(id int64, subject, module, level string, lessonNumber int, signIDs ...int64) models.Lesson {
	lesson := models.Lesson{
		ID:           id,
		Subject:      subject,
		Module:       module,
		Level:        level,
		LessonNumber: lessonNumber,
	}
	for _, signID := range signIDs {
		lesson.Signs = append(lesson.Signs, models.Sign{ID: signID, LessonID: id})
	}
	return lesson
}

func TestGroupCatalog(t *testing.T) {
	lessons := []models.Lesson{
		makeLesson(3, "alphabets", "Module 2", "beginner", 1, 31),
		makeLesson(2, "alphabets", "Module 1", "beginner", 2, 21),
		makeLesson(1, "alphabets", "Module 1", "beginner", 1, 11),
		makeLesson(4, "numbers", "Module 1", "beginner", 1, 41),
	}

	catalog := groupCatalog(lessons)

	groups := catalog["alphabets"]
	if len(groups) != 2 {
		t.Fatalf("expected 2 alphabet modules, got %d", len(groups))
	}
	if groups[0].Name != "Module 1" || groups[1].Name != "Module 2" {
		t.Errorf("modules out of order: %q, %q", groups[0].Name, groups[1].Name)
	}
	if groups[0].Lessons[0].LessonNumber != 1 || groups[0].Lessons[1].LessonNumber != 2 {
		t.Errorf("lessons out of order: %d, %d", groups[0].Lessons[0].LessonNumber, groups[0].Lessons[1].LessonNumber)
	}
	if len(catalog["numbers"]) != 1 {
		t.Errorf("expected 1 numbers module, got %d", len(catalog["numbers"]))
	}
}

func TestLessonEligible(t *testing.T) {
	lesson := makeLesson(1, "alphabets", "Module 1", "beginner", 1, 10, 11, 12)

	if !lessonEligible(lesson, map[int64]bool{10: true}) {
		t.Error("lesson with unwatched signs should be eligible")
	}
	if lessonEligible(lesson, map[int64]bool{10: true, 11: true, 12: true}) {
		t.Error("fully watched lesson should not be eligible")
	}
	if lessonEligible(models.Lesson{}, nil) {
		t.Error("lesson with no signs should not be eligible")
	}
}

func TestBuildWeeklyEntries(t *testing.T) {
	weekStart := date(2026, time.March, 2) // Monday

	catalog := groupCatalog([]models.Lesson{
		makeLesson(1, "alphabets", "Module 1", "beginner", 1, 11),
		makeLesson(2, "alphabets", "Module 1", "beginner", 2, 21),
		makeLesson(3, "alphabets", "Module 2", "beginner", 1, 31),
		makeLesson(4, "alphabets", "Module 3", "intermediate", 1, 41),
	})

	plan := &models.StudyPlan{
		Subjects: []models.SubjectPlan{{
			Subject:        "alphabets",
			StartingLevel:  "beginner",
			StartingModule: "Module 1",
			WeeklyLessons:  2,
			StudyDays:      []string{"Mon", "Wed"},
		}},
	}

	t.Run("fills quota on each study day only", func(t *testing.T) {
		entries := buildWeeklyEntries(weekStart, plan, catalog, nil)

		if len(entries) != 4 {
			t.Fatalf("expected 4 entries (2 per study day), got %d", len(entries))
		}
		for _, e := range entries {
			if e.Weekday != "Monday" && e.Weekday != "Wednesday" {
				t.Errorf("entry scheduled on non-study day %s", e.Weekday)
			}
		}
		if entries[0].Date != "2026-03-02" {
			t.Errorf("first entry date = %s, want 2026-03-02", entries[0].Date)
		}
		if entries[0].LessonLabel != "Lesson 1" || entries[1].LessonLabel != "Lesson 2" {
			t.Errorf("lessons out of progression order: %s, %s", entries[0].LessonLabel, entries[1].LessonLabel)
		}
	})

	t.Run("skips fully watched lessons and crosses modules", func(t *testing.T) {
		watched := map[int64]bool{11: true} // lesson 1 fully watched
		entries := buildWeeklyEntries(weekStart, plan, catalog, watched)

		if len(entries) != 4 {
			t.Fatalf("expected 4 entries, got %d", len(entries))
		}
		if entries[0].LessonID != 2 || entries[1].LessonID != 3 {
			t.Errorf("expected lessons 2 and 3, got %d and %d", entries[0].LessonID, entries[1].LessonID)
		}
		if entries[1].Module != "Module 2" {
			t.Errorf("expected quota to cross into Module 2, got %s", entries[1].Module)
		}
	})

	t.Run("never schedules other levels", func(t *testing.T) {
		watched := map[int64]bool{11: true, 21: true, 31: true} // beginner exhausted
		entries := buildWeeklyEntries(weekStart, plan, catalog, watched)

		if len(entries) != 0 {
			t.Errorf("expected no entries once the level is exhausted, got %d", len(entries))
		}
	})

	t.Run("skips subject when starting module is missing", func(t *testing.T) {
		badPlan := &models.StudyPlan{
			Subjects: []models.SubjectPlan{{
				Subject:        "alphabets",
				StartingLevel:  "beginner",
				StartingModule: "Module 99",
				WeeklyLessons:  2,
				StudyDays:      []string{"Mon"},
			}},
		}
		entries := buildWeeklyEntries(weekStart, badPlan, catalog, nil)
		if len(entries) != 0 {
			t.Errorf("expected no entries for unknown starting module, got %d", len(entries))
		}
	})

	t.Run("skips subject with no catalog data", func(t *testing.T) {
		missing := &models.StudyPlan{
			Subjects: []models.SubjectPlan{{
				Subject:        "greetings",
				StartingLevel:  "beginner",
				StartingModule: "Module 1",
				WeeklyLessons:  1,
				StudyDays:      []string{"Mon"},
			}},
		}
		entries := buildWeeklyEntries(weekStart, missing, catalog, nil)
		if len(entries) != 0 {
			t.Errorf("expected no entries for missing subject, got %d", len(entries))
		}
	})
}
