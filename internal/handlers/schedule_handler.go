package handlers

import (
	"net/http"

	"singlang/internal/service"
)

// ScheduleHandler handles weekly schedule generation and the daily view
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// Generate returns the current week's schedule, generating it if absent.
// Repeated calls within one week return the stored schedule unchanged.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	schedule, created, err := h.scheduleService.GenerateWeeklySchedule(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, schedule)
}

// Today returns today's lessons with their signs, or the rest-day response
func (h *ScheduleHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	result, err := h.scheduleService.TodaySchedule(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
