package handlers

import (
	"strings"
	"testing"

	"singlang/internal/models"
)

func validSubjectPlan() models.SubjectPlan {
	return models.SubjectPlan{
		Subject:        "alphabets",
		StartingLevel:  "beginner",
		StartingModule: "Module 1",
		WeeklyLessons:  3,
		StudyDays:      []string{"Mon", "Wed"},
	}
}

func TestStudyPlanRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.SubjectPlan)
		wantMsg string
	}{
		{
			name:    "valid plan passes",
			mutate:  func(sp *models.SubjectPlan) {},
			wantMsg: "",
		},
		{
			name:    "missing subject",
			mutate:  func(sp *models.SubjectPlan) { sp.Subject = "" },
			wantMsg: "subject name is required",
		},
		{
			name:    "unknown level",
			mutate:  func(sp *models.SubjectPlan) { sp.StartingLevel = "expert" },
			wantMsg: "invalid level",
		},
		{
			name:    "weeklyLessons below range",
			mutate:  func(sp *models.SubjectPlan) { sp.WeeklyLessons = 0 },
			wantMsg: "weeklyLessons must be between 1 and 5",
		},
		{
			name:    "weeklyLessons above range",
			mutate:  func(sp *models.SubjectPlan) { sp.WeeklyLessons = 6 },
			wantMsg: "weeklyLessons must be between 1 and 5",
		},
		{
			name:    "weeklyLessons at upper bound passes",
			mutate:  func(sp *models.SubjectPlan) { sp.WeeklyLessons = 5 },
			wantMsg: "",
		},
		{
			name:    "no study days",
			mutate:  func(sp *models.SubjectPlan) { sp.StudyDays = nil },
			wantMsg: "at least one study day",
		},
		{
			name:    "bad study day",
			mutate:  func(sp *models.SubjectPlan) { sp.StudyDays = []string{"Monday"} },
			wantMsg: "invalid study day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := validSubjectPlan()
			tt.mutate(&sp)
			req := studyPlanRequest{Subjects: []models.SubjectPlan{sp}}

			msg := req.validate()
			if tt.wantMsg == "" {
				if msg != "" {
					t.Fatalf("expected valid request, got %q", msg)
				}
				return
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Fatalf("validate() = %q, want it to contain %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestStudyPlanRequestValidateRejectsDuplicates(t *testing.T) {
	req := studyPlanRequest{Subjects: []models.SubjectPlan{validSubjectPlan(), validSubjectPlan()}}
	if msg := req.validate(); !strings.Contains(msg, "duplicate subject") {
		t.Fatalf("validate() = %q, want a duplicate subject error", msg)
	}
}

func TestStudyPlanRequestValidateRequiresSubjects(t *testing.T) {
	req := studyPlanRequest{}
	if msg := req.validate(); !strings.Contains(msg, "at least one subject") {
		t.Fatalf("validate() = %q, want an empty-plan error", msg)
	}
}
