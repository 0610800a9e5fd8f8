package types

import "errors"

var (
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("action forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrUpstream        = errors.New("upstream dependency failed")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrWrongTokenType     = errors.New("invalid token type")
	ErrRevokedToken       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
)

// Response is the envelope for message-only replies.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Operation successful"`
	Error   string `json:"error,omitempty" example:"Resource not found"`
}

// MessageResponse mirrors the storefront's {"message": "..."} replies.
type MessageResponse struct {
	Message string `json:"message" example:"Category deleted"`
}
