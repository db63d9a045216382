package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"singlang/internal/inference"
	"singlang/internal/service"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing study plan", service.ErrStudyPlanNotFound, http.StatusNotFound},
		{"missing questions", service.ErrNotEnoughQuestions, http.StatusNotFound},
		{"duplicate study plan", service.ErrStudyPlanExists, http.StatusConflict},
		{"taken email", service.ErrEmailTaken, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"classifier down", inference.ErrClassifierUnavailable, http.StatusBadGateway},
		{"classifier timeout", inference.ErrClassifierTimeout, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("loading plan: %w", service.ErrStudyPlanNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			respondError(recorder, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, recorder.Code)
			}

			var body map[string]string
			if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body["message"] == "" {
				t.Fatal("expected a message in the response body")
			}
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondError(recorder, errors.New("pq: relation does not exist"))

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["message"] != "internal server error" {
		t.Fatalf("internal error leaked its detail: %q", body["message"])
	}
}
