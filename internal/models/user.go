package models

import "time"

// User represents a registered account. Accounts are created by a parent or
// guardian on behalf of a child learner.
type User struct {
	ID           int64     `json:"-"`
	PublicID     string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ParentName   string    `json:"parentName,omitempty"`
	ChildName    string    `json:"childName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
