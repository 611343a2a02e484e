package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Sentinel errors surfaced by every repository. Callers branch with
// errors.Is; the HTTP layer maps them to response codes.
var (
	// ErrNotFound is returned when an entity lookup fails.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on unique-constraint violations.
	ErrConflict = errors.New("conflict")
	// ErrIntegrity is returned on foreign-key violations.
	ErrIntegrity = errors.New("integrity violation")
	// ErrUnavailable is returned when the store backend fails.
	ErrUnavailable = errors.New("backend unavailable")
)

// mapError translates driver errors into repository sentinels, keeping the
// driver error in the chain for logging.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", ErrIntegrity, err)
		}
		if serr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// IsUniqueViolation reports whether err stems from a unique constraint.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, ErrConflict)
}
