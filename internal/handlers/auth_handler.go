package handlers

import (
	"net/http"
	"strings"

	"singlang/internal/service"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ParentName string `json:"parentName"`
	ChildName  string `json:"childName"`
}

func (req *registerRequest) validate() string {
	switch {
	case strings.TrimSpace(req.Username) == "":
		return "username is required"
	case strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@"):
		return "a valid email is required"
	case len(req.Password) < 8:
		return "password must be at least 8 characters"
	case strings.TrimSpace(req.ChildName) == "":
		return "childName is required"
	}
	return ""
}

// Register creates a new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondValidationError(w, msg)
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password, req.ParentName, req.ChildName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondValidationError(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondValidationError(w, "username and password are required")
		return
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
