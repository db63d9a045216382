package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"singlang/internal/inference"
	"singlang/internal/service"
)

// respondJSON writes the payload as JSON with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}
}

// respondMessage writes a JSON {"message": ...} body
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps a service error onto an HTTP status. Known sentinel
// errors keep their own message; everything else is logged and reported as
// an internal error.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrStudyPlanNotFound),
		errors.Is(err, service.ErrSubjectNotInPlan),
		errors.Is(err, service.ErrNotEnoughQuestions):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrStudyPlanExists),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		respondMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		respondMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, inference.ErrClassifierUnavailable),
		errors.Is(err, inference.ErrClassifierTimeout),
		errors.Is(err, inference.ErrBadClassifierOutput):
		respondMessage(w, http.StatusBadGateway, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		respondMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondValidationError reports a bad request body or parameter
func respondValidationError(w http.ResponseWriter, message string) {
	respondMessage(w, http.StatusBadRequest, message)
}

// decodeJSON parses the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
