package sync

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMediaTree(t *testing.T, root string, files map[string][]string) {
	t.Helper()
	for dir, names := range files {
		path := filepath.Join(root, filepath.FromSlash(dir))
		if err := os.MkdirAll(path, 0o755); err != nil {
			t.Fatal(err)
		}
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(path, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestDiscoverModules(t *testing.T) {
	root := t.TempDir()
	writeMediaTree(t, root, map[string][]string{
		"alphabets/beginner/Module 1": {"A.mp4"},
		"alphabets/beginner/Module 2": {"D.mp4"},
		"numbers/beginner/Module 1":   {"One.mp4"},
	})

	s := &Service{mediaRoot: root}
	dirs, err := s.discoverModules()
	if err != nil {
		t.Fatalf("discoverModules() error: %v", err)
	}

	if len(dirs) != 3 {
		t.Fatalf("expected 3 module dirs, got %d", len(dirs))
	}
	first := dirs[0]
	if first.subject != "alphabets" || first.level != "beginner" || first.module != "Module 1" {
		t.Errorf("unexpected first module: %+v", first)
	}
}

func TestBuildLessons(t *testing.T) {
	root := t.TempDir()
	writeMediaTree(t, root, map[string][]string{
		"alphabets/beginner/Module 1": {"A.mp4", "B.mp4", "C.mp4", "D.mp4", "E.mp4"},
	})

	s := &Service{
		mediaRoot:    root,
		mediaBaseURL: "/media/",
		lessonConfig: &LessonConfig{SignsPerLesson: map[string]int{}},
	}
	dir := moduleDir{
		subject: "alphabets",
		level:   "beginner",
		module:  "Module 1",
		path:    filepath.Join(root, "alphabets", "beginner", "Module 1"),
	}

	lessons, err := s.buildLessons(dir)
	if err != nil {
		t.Fatalf("buildLessons() error: %v", err)
	}

	// 5 files at the default of 3 per lesson: one full lesson plus a remainder
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(lessons))
	}
	if len(lessons[0].Signs) != 3 || len(lessons[1].Signs) != 2 {
		t.Errorf("unexpected lesson sizes: %d and %d", len(lessons[0].Signs), len(lessons[1].Signs))
	}
	if lessons[0].LessonNumber != 1 || lessons[1].LessonNumber != 2 {
		t.Errorf("lesson numbers = %d, %d", lessons[0].LessonNumber, lessons[1].LessonNumber)
	}

	sign := lessons[0].Signs[0]
	if sign.Title != "A" {
		t.Errorf("sign title = %q, want A", sign.Title)
	}
	if sign.MediaURL != "/media/alphabets/beginner/Module 1/A.mp4" {
		t.Errorf("media url = %q", sign.MediaURL)
	}
	if sign.Position != 1 {
		t.Errorf("position = %d, want 1", sign.Position)
	}
}

func TestBuildLessonsConfiguredSize(t *testing.T) {
	root := t.TempDir()
	writeMediaTree(t, root, map[string][]string{
		"numbers/beginner/Module 1": {"Eight.mp4", "Five.mp4", "Four.mp4", "Nine.mp4", "One.mp4"},
	})

	s := &Service{
		mediaRoot:    root,
		mediaBaseURL: "/media",
		lessonConfig: &LessonConfig{SignsPerLesson: map[string]int{"numbers/Module 1": 5}},
	}
	dir := moduleDir{
		subject: "numbers",
		level:   "beginner",
		module:  "Module 1",
		path:    filepath.Join(root, "numbers", "beginner", "Module 1"),
	}

	lessons, err := s.buildLessons(dir)
	if err != nil {
		t.Fatalf("buildLessons() error: %v", err)
	}
	if len(lessons) != 1 || len(lessons[0].Signs) != 5 {
		t.Fatalf("expected one lesson of 5 signs, got %d lessons", len(lessons))
	}
}

func TestBuildLessonsEmptyModule(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "alphabets", "beginner", "Module 9")
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}

	s := &Service{lessonConfig: &LessonConfig{SignsPerLesson: map[string]int{}}}
	_, err := s.buildLessons(moduleDir{subject: "alphabets", level: "beginner", module: "Module 9", path: path})
	if err == nil {
		t.Fatal("expected an error for a module with no media files")
	}
}

func TestLoadLessonConfigMissingFile(t *testing.T) {
	cfg, err := loadLessonConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if len(cfg.SignsPerLesson) != 0 {
		t.Errorf("expected empty config, got %v", cfg.SignsPerLesson)
	}
}

func TestLoadLessonConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lesson_grouping.yaml")
	content := "signsPerLesson:\n  \"numbers/Module 1\": 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadLessonConfig(path)
	if err != nil {
		t.Fatalf("loadLessonConfig() error: %v", err)
	}
	if cfg.SignsPerLesson["numbers/Module 1"] != 5 {
		t.Errorf("config = %v", cfg.SignsPerLesson)
	}
}
