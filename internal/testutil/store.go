// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/intl-tools/translator-service/internal/repository"
)

// OpenTestStore opens a fresh embedded store in a per-test temporary
// directory. The store is closed when the test finishes.
func OpenTestStore(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := repository.Open(t.TempDir(), 5, 5*time.Second)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close test store: %v", err)
		}
	})
	return db
}
