// Package service implements the business components of the translator:
// identity, catalog, translation engine and exporter.
package service

import "errors"

var (
	// ErrUserNotFound is returned when a login name matches no user. The
	// API surfaces it as generic invalid credentials.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword is returned on a failed password check. The API
	// surfaces it as generic invalid credentials.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidToken is returned for missing, revoked or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden is returned when the acting user's role is insufficient.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidKey rejects syntactically malformed key strings.
	ErrInvalidKey = errors.New("invalid key")
	// ErrDuplicateKey rejects a key that already exists.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrShadowsLeaf rejects a key nested under an existing key.
	ErrShadowsLeaf = errors.New("shadows leaf")
	// ErrShadowsNamespace rejects a key occupying an existing namespace.
	ErrShadowsNamespace = errors.New("shadows namespace")
)

// IsKeyConflict reports whether err is one of the structural key
// rejections, all of which map to a conflict at the API boundary.
func IsKeyConflict(err error) bool {
	return errors.Is(err, ErrDuplicateKey) ||
		errors.Is(err, ErrShadowsLeaf) ||
		errors.Is(err, ErrShadowsNamespace)
}
