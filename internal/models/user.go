package models

import (
	"time"
)

// User is an account row in the `users` collection. Authentication is
// password-based; OAuth integrations are stubs.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
