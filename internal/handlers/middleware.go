package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"singlang/internal/models"
	"singlang/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// Middleware wraps handlers with authentication and request logging
type Middleware struct {
	authService *service.AuthService
}

// NewMiddleware creates the middleware set
func NewMiddleware(authService *service.AuthService) *Middleware {
	return &Middleware{authService: authService}
}

// RequireAuth verifies the bearer token and puts the user on the request
// context. Requests without a valid token get a 401.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		user, err := m.authService.VerifyToken(token)
		if err != nil {
			respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// Logging logs each request with its duration
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext returns the authenticated user, or nil
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(userContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
