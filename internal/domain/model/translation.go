package model

import (
	"time"

	"github.com/google/uuid"
)

// Translation is one immutable version of a translated value for a
// (key, language) pair. Revisions are new rows with a higher version; the
// current translation is the undeleted row with the greatest version.
type Translation struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Version     int        `db:"version" json:"version"`
	Translation string     `db:"translation" json:"translation"`
	Comment     *string    `db:"comment" json:"comment,omitempty"`
	LanguageID  uuid.UUID  `db:"language_id" json:"language_id"`
	KeyID       uuid.UUID  `db:"key_id" json:"key_id"`
	CreatorID   uuid.UUID  `db:"creator_id" json:"creator_id"`
	ApproverID  uuid.UUID  `db:"approver_id" json:"approver_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// TranslationRequest is a proposed translation awaiting promotion to a
// Translation by a reviewer. It stays mutable until accepted or discarded.
type TranslationRequest struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Translation string    `db:"translation" json:"translation"`
	Comment     *string   `db:"comment" json:"comment,omitempty"`
	LanguageID  uuid.UUID `db:"language_id" json:"language_id"`
	KeyID       uuid.UUID `db:"key_id" json:"key_id"`
	CreatorID   uuid.UUID `db:"creator_id" json:"creator_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TranslationWithKey joins a current translation with its key row for
// exports.
type TranslationWithKey struct {
	Translation Translation `json:"translation"`
	Key         Key         `json:"key"`
}
