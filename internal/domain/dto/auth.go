// Package dto defines the request and response bodies of the HTTP API.
package dto

import "github.com/intl-tools/translator-service/internal/domain/model"

// LoginRequest is the JSON body of the login endpoint. User holds either a
// username or an email address.
type LoginRequest struct {
	User     string `json:"user" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued auth token and the sanitized user.
type LoginResponse struct {
	User  model.User  `json:"user"`
	Token model.Token `json:"token"`
}
