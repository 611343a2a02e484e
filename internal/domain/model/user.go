// Package model defines the domain entities of the translator service.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role determines what a user may do.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleReviewer   Role = "reviewer"
	RoleTranslator Role = "translator"
	RoleViewer     Role = "viewer"
)

// ErrInvalidRole is returned when a string names no known role.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts a string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleReviewer, RoleTranslator, RoleViewer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// CanTranslate reports whether the role may write translations.
func (r Role) CanTranslate() bool {
	return r == RoleAdmin || r == RoleReviewer || r == RoleTranslator
}

// CanReview reports whether the role may accept translation requests and
// manage the catalog.
func (r Role) CanReview() bool {
	return r == RoleAdmin || r == RoleReviewer
}

// IsAdmin reports whether the role grants user administration.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents an account that performs translations.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Role         Role       `db:"role" json:"role"`
	Email        string     `db:"email" json:"email"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"password_hash"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// Sanitized returns a copy safe to hand to clients.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// TokenKind distinguishes token usages. Only auth tokens exist today.
type TokenKind string

const TokenKindAuth TokenKind = "auth"

// Token is an opaque server-side bearer token. Revocation is a row delete.
type Token struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Kind       TokenKind  `db:"kind" json:"kind"`
	Token      string     `db:"token" json:"token"`
	ValidUntil *time.Time `db:"valid_until" json:"valid_until,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	DeletedAt  *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	UserID     uuid.UUID  `db:"user_id" json:"user_id"`
}

// Valid reports whether the token may still be presented at the given time.
func (t Token) Valid(now time.Time) bool {
	if t.DeletedAt != nil {
		return false
	}
	return t.ValidUntil == nil || t.ValidUntil.After(now)
}
