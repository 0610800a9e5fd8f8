package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdateUserProfile(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	authService AuthService
	logger      *slog.Logger
}

func NewAuthHandlerImpl(authService AuthService, logger *slog.Logger) *HandlerImpl {
	if logger == nil {
		panic("auth handler requires a logger")
	}
	return &HandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary      Register a customer account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.RegisterRequest true "Registration details"
// @Success      200 {object} types.TokenResponse
// @Failure      400 {object} types.Response "Invalid input or email already registered"
// @Router       /auth/register [post]
func (h *HandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "Register"))

	var req types.RegisterRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		api.HandleError(w, r, l, err, "Invalid registration request")
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to register user")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.LoginRequest true "Credentials"
// @Success      200 {object} types.TokenResponse
// @Failure      401 {object} types.Response "Invalid email or password"
// @Router       /auth/login [post]
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "Login"))

	var req types.LoginRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		api.HandleError(w, r, l, err, "Invalid login request")
		return
	}

	resp, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, types.ErrInvalidCredentials) {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		api.HandleError(w, r, l, err, "Failed to log in")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} types.TokenResponse
// @Failure      401 {object} types.Response "Invalid, expired or revoked token"
// @Failure      404 {object} types.Response "User not found"
// @Router       /auth/refresh [post]
func (h *HandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "Refresh"))

	var req types.RefreshTokenRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		api.HandleError(w, r, l, err, "Invalid refresh request")
		return
	}

	resp, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to refresh session")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// Logout godoc
// @Summary      Revoke the current access token and an optional refresh token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.LogoutRequest false "Refresh token to revoke"
// @Success      200 {object} types.MessageResponse
// @Failure      401 {object} types.Response "Not authenticated"
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *HandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "Logout"))

	var req types.LogoutRequest
	if r.ContentLength != 0 {
		if err := api.DecodeAndValidate(w, r, &req); err != nil {
			api.HandleError(w, r, l, err, "Invalid logout request")
			return
		}
	}

	claims, _ := GetClaimsFromContext(r.Context())
	if err := h.authService.Logout(r.Context(), claims, req.RefreshToken); err != nil {
		api.HandleError(w, r, l, err, "Failed to log out")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, types.MessageResponse{Message: "Logged out"})
}

// Me godoc
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Success      200 {object} types.User
// @Failure      401 {object} types.Response "Not authenticated"
// @Failure      404 {object} types.Response "User not found"
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *HandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary      Update the current user's profile
// @Description  role is ignored unless the caller is an admin.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.UpdateProfileParams true "Fields to change"
// @Success      200 {object} types.User
// @Failure      400 {object} types.Response "Invalid input"
// @Failure      401 {object} types.Response "Not authenticated"
// @Security     BearerAuth
// @Router       /auth/profile [put]
func (h *HandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "UpdateProfile"))

	actor, ok := GetUserFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var params types.UpdateProfileParams
	if err := api.DecodeAndValidate(w, r, &params); err != nil {
		api.HandleError(w, r, l, err, "Invalid profile update")
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), actor, actor.ID, params)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to update profile")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, user)
}

// UpdateUserProfile godoc
// @Summary      Update any user's profile
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user_id path string true "User ID"
// @Param        body body types.UpdateProfileParams true "Fields to change"
// @Success      200 {object} types.User
// @Failure      403 {object} types.Response "Admin access required"
// @Failure      404 {object} types.Response "User not found"
// @Security     BearerAuth
// @Router       /auth/profile/{user_id} [put]
func (h *HandlerImpl) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "UpdateUserProfile"))

	actor, ok := GetUserFromContext(r.Context())
	if !ok {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}
	targetID, err := api.ParseUUIDParam(r, "user_id")
	if err != nil {
		api.HandleError(w, r, l, err, "Invalid user id")
		return
	}

	var params types.UpdateProfileParams
	if err := api.DecodeAndValidate(w, r, &params); err != nil {
		api.HandleError(w, r, l, err, "Invalid profile update")
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), actor, targetID, params)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to update profile")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, user)
}

// ForgotPassword godoc
// @Summary      Issue a password reset token
// @Description  The token is returned in the body; no email is sent.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.ForgotPasswordRequest true "Account email"
// @Success      200 {object} types.ForgotPasswordResponse
// @Failure      404 {object} types.Response "User not found"
// @Router       /auth/forgot-password [post]
func (h *HandlerImpl) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "ForgotPassword"))

	var req types.ForgotPasswordRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		api.HandleError(w, r, l, err, "Invalid request")
		return
	}

	token, err := h.authService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		api.HandleError(w, r, l, err, "Failed to issue reset token")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, types.ForgotPasswordResponse{
		Message: "Password reset token sent to email",
		Token:   token,
	})
}

// ResetPassword godoc
// @Summary      Set a new password with a reset token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.ResetPasswordRequest true "Reset token and new password"
// @Success      200 {object} types.MessageResponse
// @Failure      400 {object} types.Response "Invalid, expired or used token"
// @Failure      404 {object} types.Response "User not found"
// @Router       /auth/reset-password [post]
func (h *HandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("HandlerImpl", "ResetPassword"))

	var req types.ResetPasswordRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		api.HandleError(w, r, l, err, "Invalid request")
		return
	}

	err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword)
	switch {
	case err == nil:
		api.WriteJSONResponse(w, r, http.StatusOK, types.MessageResponse{Message: "Password reset successful"})
	case errors.Is(err, types.ErrWrongTokenType):
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid token type")
	case errors.Is(err, types.ErrExpiredToken):
		api.ErrorResponse(w, r, http.StatusBadRequest, "Reset token has expired")
	case errors.Is(err, types.ErrInvalidToken):
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid reset token")
	default:
		api.HandleError(w, r, l, err, "Failed to reset password")
	}
}
