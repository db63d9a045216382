package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"singlang/internal/models"
	"singlang/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles registration, login and token verification
type AuthService struct {
	userRepo      *repository.UserRepository
	loginRepo     *repository.LoginRepository
	emailService  *EmailService
	jwtSecret     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, loginRepo *repository.LoginRepository, emailService *EmailService, jwtSecret string, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		loginRepo:     loginRepo,
		emailService:  emailService,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// Register creates a new account. Username and email must both be unused.
// The welcome email is sent best-effort and never fails the registration.
func (s *AuthService) Register(username, email, password, parentName, childName string) (*models.User, error) {
	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	existing, err = s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(username, email, string(hash), parentName, childName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.emailService.IsEnabled() {
		if err := s.emailService.SendWelcomeEmail(context.Background(), email, parentName, childName); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}

	return user, nil
}

// LoginResult is a successful login: the account plus a signed token
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login verifies credentials, records the login for streak tracking and
// issues a signed token. Unknown username and wrong password produce the
// same error.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	today := s.now().Format(ISODate)
	if err := s.loginRepo.RecordLogin(user.ID, today); err != nil {
		log.Printf("Failed to record login for user %d: %v", user.ID, err)
	}

	return &LoginResult{User: user, Token: token}, nil
}

// VerifyToken validates a signed token and returns the user it belongs to
func (s *AuthService) VerifyToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByPublicID(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": user.PublicID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
