package repository

import (
	"database/sql"
	"fmt"
	"time"

	"singlang/internal/database"
	"singlang/internal/models"

	"github.com/google/uuid"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, public_id, username, email, password_hash, parent_name, child_name, created_at"

// CreateUser inserts a new user account
func (r *UserRepository) CreateUser(username, email, passwordHash, parentName, childName string) (*models.User, error) {
	publicID := uuid.New().String()

	query := `
		INSERT INTO users (public_id, username, email, password_hash, parent_name, child_name)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, publicID, username, email, passwordHash, parentName, childName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		PublicID:     publicID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		ParentName:   parentName,
		ChildName:    childName,
		CreatedAt:    time.Now(),
	}, nil
}

// GetUserByUsername retrieves a user by username.
// Returns nil if no user exists.
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE username = ?", userColumns)
	return r.scanUser(r.db.QueryRow(query, username))
}

// GetUserByEmail retrieves a user by email address.
// Returns nil if no user exists.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = ?", userColumns)
	return r.scanUser(r.db.QueryRow(query, email))
}

// GetUserByPublicID retrieves a user by public UUID.
// Returns nil if no user exists.
func (r *UserRepository) GetUserByPublicID(publicID string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE public_id = ?", userColumns)
	return r.scanUser(r.db.QueryRow(query, publicID))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.PublicID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.ParentName,
		&user.ChildName,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
