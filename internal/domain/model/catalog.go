package model

import (
	"time"

	"github.com/google/uuid"
)

// Language is a translation target. Code is the human-facing identifier
// ("en", "de-AT"); ParentID models a fallback chain that consumers walk
// themselves.
type Language struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Code        string     `db:"code" json:"code"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	ParentID    *uuid.UUID `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Key names a translatable string by a dotted path (e.g. "menu.file.open").
type Key struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Key         string     `db:"key" json:"key"`
	Description *string    `db:"description" json:"description,omitempty"`
	CreatorID   uuid.UUID  `db:"creator_id" json:"creator_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}
