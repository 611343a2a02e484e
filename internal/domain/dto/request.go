package dto

import "github.com/google/uuid"

// CreateUserRequest is the JSON body for creating a user.
type CreateUserRequest struct {
	Role     string `json:"role" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateUserRequest is a partial user update; nil fields keep their values.
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"`
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
}

// UpdatePasswordRequest replaces a user's password.
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// CreateLanguageRequest is the JSON body for creating a language.
type CreateLanguageRequest struct {
	Code        string     `json:"code" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

// UpdateLanguageRequest is a partial language update.
type UpdateLanguageRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
}

// CreateKeyRequest is the JSON body for creating a key.
type CreateKeyRequest struct {
	Key         string  `json:"key" binding:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateKeyRequest renames a key or updates its description.
type UpdateKeyRequest struct {
	Key         *string `json:"key,omitempty"`
	Description *string `json:"description,omitempty"`
}

// TranslateRequest is the JSON body for writing a translation.
type TranslateRequest struct {
	LanguageID  uuid.UUID `json:"language_id" binding:"required"`
	KeyID       uuid.UUID `json:"key_id" binding:"required"`
	Translation string    `json:"translation" binding:"required"`
	Comment     *string   `json:"comment,omitempty"`
}

// UpdateTranslationRequest revises a translation identified by its row id.
type UpdateTranslationRequest struct {
	Translation string  `json:"translation" binding:"required"`
	Comment     *string `json:"comment,omitempty"`
}

// CreateTranslationRequestRequest proposes a translation for review.
type CreateTranslationRequestRequest struct {
	LanguageID  uuid.UUID `json:"language_id" binding:"required"`
	KeyID       uuid.UUID `json:"key_id" binding:"required"`
	Translation string    `json:"translation" binding:"required"`
	Comment     *string   `json:"comment,omitempty"`
}

// UpdateTranslationRequestRequest mutates a pending proposal in place.
type UpdateTranslationRequestRequest struct {
	Translation *string `json:"translation,omitempty"`
	Comment     *string `json:"comment,omitempty"`
}
