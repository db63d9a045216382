package service

import (
	"testing"

	"singlang/internal/models"
)

func TestResolveUnlocks(t *testing.T) {
	modules := []string{"Module 3", "Module 1", "Module 2"}

	tests := []struct {
		name         string
		scores       map[string]int
		wantUnlocked []string
	}{
		{
			name:         "first module is always unlocked",
			scores:       nil,
			wantUnlocked: []string{"Module 1"},
		},
		{
			name:         "threshold unlocks the next module",
			scores:       map[string]int{"Module 1": 70},
			wantUnlocked: []string{"Module 1", "Module 2"},
		},
		{
			name:         "below threshold stays locked",
			scores:       map[string]int{"Module 1": 69},
			wantUnlocked: []string{"Module 1"},
		},
		{
			name:         "unlocks chain module by module",
			scores:       map[string]int{"Module 1": 80, "Module 2": 100},
			wantUnlocked: []string{"Module 1", "Module 2", "Module 3"},
		},
		{
			name:         "a module's score unlocks its successor even when earlier modules lag",
			scores:       map[string]int{"Module 2": 100},
			wantUnlocked: []string{"Module 1", "Module 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ordered, unlocked := resolveUnlocks(modules, tt.scores)

			wantOrder := []string{"Module 1", "Module 2", "Module 3"}
			for i, name := range wantOrder {
				if ordered[i] != name {
					t.Fatalf("ordered[%d] = %q, want %q", i, ordered[i], name)
				}
			}

			if len(unlocked) != len(tt.wantUnlocked) {
				t.Fatalf("unlocked = %v, want %v", unlocked, tt.wantUnlocked)
			}
			for i, name := range tt.wantUnlocked {
				if unlocked[i] != name {
					t.Errorf("unlocked[%d] = %q, want %q", i, unlocked[i], name)
				}
			}
		})
	}
}

func TestResolveUnlocksEmpty(t *testing.T) {
	ordered, unlocked := resolveUnlocks(nil, nil)
	if len(ordered) != 0 || len(unlocked) != 0 {
		t.Errorf("expected empty results, got ordered=%v unlocked=%v", ordered, unlocked)
	}
}

func TestBuildStaticQuestion(t *testing.T) {
	q := models.QuizQuestion{
		Module:    "Module 1",
		SignTitle: "A",
		Type:      models.QuestionTypeStatic,
		ImageURL:  "/media/a.mp4",
	}
	pool := []string{"A", "B", "C", "D", "E"}

	for i := 0; i < 20; i++ {
		got := buildStaticQuestion(q, pool)

		if len(got.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(got.Options))
		}

		correct := 0
		seen := map[string]bool{}
		for _, opt := range got.Options {
			if seen[opt.Label] {
				t.Fatalf("duplicate option %q", opt.Label)
			}
			seen[opt.Label] = true
			if opt.IsCorrect {
				correct++
				if opt.Label != "A" {
					t.Fatalf("correct option has label %q", opt.Label)
				}
			}
		}
		if correct != 1 {
			t.Fatalf("expected exactly one correct option, got %d", correct)
		}
		if got.ImageURL != q.ImageURL {
			t.Errorf("ImageURL = %q, want %q", got.ImageURL, q.ImageURL)
		}
	}
}

func TestBuildStaticQuestionSmallPool(t *testing.T) {
	q := models.QuizQuestion{SignTitle: "A", Type: models.QuestionTypeStatic}
	got := buildStaticQuestion(q, []string{"A", "B"})

	if len(got.Options) != 2 {
		t.Fatalf("expected 2 options with a pool of one wrong answer, got %d", len(got.Options))
	}
}
