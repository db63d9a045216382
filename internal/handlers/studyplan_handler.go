package handlers

import (
	"fmt"
	"net/http"

	"singlang/internal/models"
	"singlang/internal/service"
)

var validDays = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true, "Thu": true,
	"Fri": true, "Sat": true, "Sun": true,
}

var validLevels = map[string]bool{
	"beginner": true, "intermediate": true, "advanced": true,
}

// StudyPlanHandler handles study plan CRUD and level advancement
type StudyPlanHandler struct {
	studyPlanService *service.StudyPlanService
}

// NewStudyPlanHandler creates a new study plan handler
func NewStudyPlanHandler(studyPlanService *service.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{studyPlanService: studyPlanService}
}

type studyPlanRequest struct {
	Subjects []models.SubjectPlan `json:"subjects"`
}

func (req *studyPlanRequest) validate() string {
	if len(req.Subjects) == 0 {
		return "at least one subject is required"
	}
	seen := map[string]bool{}
	for _, sp := range req.Subjects {
		if sp.Subject == "" {
			return "subject name is required"
		}
		if seen[sp.Subject] {
			return fmt.Sprintf("duplicate subject %q", sp.Subject)
		}
		seen[sp.Subject] = true
		if !validLevels[sp.StartingLevel] {
			return fmt.Sprintf("invalid level %q for %s", sp.StartingLevel, sp.Subject)
		}
		if sp.WeeklyLessons < 1 || sp.WeeklyLessons > 5 {
			return fmt.Sprintf("weeklyLessons must be between 1 and 5 for %s", sp.Subject)
		}
		if len(sp.StudyDays) == 0 {
			return fmt.Sprintf("at least one study day is required for %s", sp.Subject)
		}
		for _, day := range sp.StudyDays {
			if !validDays[day] {
				return fmt.Sprintf("invalid study day %q for %s", day, sp.Subject)
			}
		}
	}
	return ""
}

// Create creates the user's study plan
func (h *StudyPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req studyPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondValidationError(w, msg)
		return
	}

	plan, err := h.studyPlanService.CreateStudyPlan(user.ID, req.Subjects)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, plan)
}

// Get returns the user's study plan
func (h *StudyPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	plan, err := h.studyPlanService.GetStudyPlan(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// Edit replaces the plan's subjects and regenerates the current week
func (h *StudyPlanHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req studyPlanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondValidationError(w, msg)
		return
	}

	plan, err := h.studyPlanService.EditStudyPlan(user.ID, req.Subjects)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// UpdateLevel advances the subject's level if its signs are all watched
func (h *StudyPlanHandler) UpdateLevel(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	subject := r.PathValue("subject")
	if subject == "" {
		respondValidationError(w, "subject is required")
		return
	}

	result, err := h.studyPlanService.UpdateStudyPlanLevel(user.ID, subject)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
