package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind separates session credentials from refresh and reset credentials.
type TokenKind string

const (
	TokenAccess        TokenKind = "access"
	TokenRefresh       TokenKind = "refresh"
	TokenPasswordReset TokenKind = "password_reset"
)

// Claims is the signed payload of every token. Subject carries the user id,
// or the email for password reset tokens.
type Claims struct {
	Type TokenKind `json:"type"`
	Role UserRole  `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// PasswordResetRecord holds the latest reset token issued for an email.
type PasswordResetRecord struct {
	Email     string
	Token     string
	CreatedAt time.Time
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"s3cret!"`
	FullName string `json:"full_name" validate:"required" example:"Alice Doe"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"s3cret!"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6" example:"n3w-s3cret!"`
}

// TokenResponse is returned by register, login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJI..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJI..."`
	TokenType    string `json:"token_type" example:"bearer"`
	User         *User  `json:"user"`
}

type ForgotPasswordResponse struct {
	Message string `json:"message" example:"Password reset token sent to email"`
	Token   string `json:"token"`
}
