package handlers

import (
	"net/http"
	"strconv"

	"singlang/internal/models"
	"singlang/internal/service"
)

// ProgressHandler handles watched-sign records, progress summaries and the
// login streak
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type signProgressRequest struct {
	LessonID  int64  `json:"lessonId"`
	SignID    int64  `json:"signId"`
	Level     string `json:"level"`
	Module    string `json:"module"`
	Subject   string `json:"subject"`
	SignTitle string `json:"signTitle"`
}

func (req *signProgressRequest) validate() string {
	switch {
	case req.LessonID <= 0:
		return "lessonId is required"
	case req.SignID <= 0:
		return "signId is required"
	case req.Subject == "":
		return "subject is required"
	case req.Module == "":
		return "module is required"
	case !validLevels[req.Level]:
		return "invalid level"
	}
	return ""
}

// SaveSign records that the user watched a sign. Watching the same sign
// twice returns 200 instead of 201.
func (h *ProgressHandler) SaveSign(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req signProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondValidationError(w, msg)
		return
	}

	created, err := h.progressService.SaveSignProgress(&models.SignProgress{
		UserID:    user.ID,
		LessonID:  req.LessonID,
		SignID:    req.SignID,
		Level:     req.Level,
		Module:    req.Module,
		Subject:   req.Subject,
		SignTitle: req.SignTitle,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondMessage(w, status, "progress saved")
}

// Subject returns the completion summary for one subject
func (h *ProgressHandler) Subject(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	subject := r.PathValue("subject")
	if subject == "" {
		respondValidationError(w, "subject is required")
		return
	}

	progress, err := h.progressService.GetSubjectProgress(user.ID, subject)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// Lesson returns the user's watched records for one lesson
func (h *ProgressHandler) Lesson(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	lessonID, err := strconv.ParseInt(r.PathValue("lessonID"), 10, 64)
	if err != nil || lessonID <= 0 {
		respondValidationError(w, "invalid lesson id")
		return
	}

	records, err := h.progressService.GetLessonProgress(user.ID, lessonID)
	if err != nil {
		respondError(w, err)
		return
	}
	if records == nil {
		records = []models.SignProgress{}
	}
	respondJSON(w, http.StatusOK, records)
}

// WeeklySigns returns how many distinct signs were learned this week
func (h *ProgressHandler) WeeklySigns(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	count, err := h.progressService.GetWeeklySignsLearned(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"signsLearned": count})
}

// Streak returns the current and best login streaks
func (h *ProgressHandler) Streak(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	streak, err := h.progressService.GetLoginStreak(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, streak)
}
