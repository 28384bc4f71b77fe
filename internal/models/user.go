package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type User struct {
	ID           string     `json:"id" bson:"_id"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"` // never expose in JSON
	Role         UserRole   `json:"role" bson:"role"`
	IsActive     bool       `json:"isActive" bson:"is_active"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

func NewUser(username, email, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         UserRoleUser,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

// PublicProfile is the client-facing view of a user. The password hash
// is already excluded from JSON, this additionally drops internal flags.
type PublicProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
