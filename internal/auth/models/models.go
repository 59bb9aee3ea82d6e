// Package models defines portal user accounts and roles.
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	id "vedo/pkg/domain"
	dErrors "vedo/pkg/domain-errors"
)

// Role controls access to the admin review surface.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleCreator   Role = "creator"
)

// CanReview reports whether the role may act on applications.
func (r Role) CanReview() bool {
	return r == RoleAdmin || r == RoleModerator
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleModerator, RoleCreator:
		return Role(s), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
}

// User is a portal account. Only the bcrypt hash of the password is stored.
type User struct {
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates an account with a freshly hashed password.
func NewUser(userID id.UserID, email, name, password string, role Role, now time.Time) (*User, error) {
	if password == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	return &User{
		ID:           userID,
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}, nil
}

// CheckPassword compares a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
