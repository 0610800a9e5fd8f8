package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/storefront-api/app/observability/metrics"
	"github.com/FACorreiaa/storefront-api/config"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

type AuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*types.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*types.TokenResponse, error)
	Logout(ctx context.Context, access *types.Claims, refreshToken string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	// UpdateProfile changes target on behalf of actor. Role changes require an admin actor.
	UpdateProfile(ctx context.Context, actor *types.User, targetID uuid.UUID, params types.UpdateProfileParams) (*types.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	EnsureAdmin(ctx context.Context, admin config.AdminConfig) error
}

type AuthServiceImpl struct {
	logger  *slog.Logger
	repo    AuthRepo
	tokens  *TokenService
	hasher  *PasswordHasher
	revoked Denylist
	metrics *metrics.AppMetrics
}

func NewAuthService(repo AuthRepo, tokens *TokenService, hasher *PasswordHasher, revoked Denylist, m *metrics.AppMetrics, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger:  logger,
		repo:    repo,
		tokens:  tokens,
		hasher:  hasher,
		revoked: revoked,
		metrics: m,
	}
}

func (s *AuthServiceImpl) issuePair(user *types.User) (*types.TokenResponse, error) {
	access, err := s.tokens.IssueAccess(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         user,
	}, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, req types.RegisterRequest) (*types.TokenResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Register")
	defer span.End()

	l := s.logger.With(slog.String("method", "Register"))

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Hashing failed")
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, req.Email, req.FullName, hashed, types.RoleCustomer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Create user failed")
		return nil, fmt.Errorf("error registering user: %w", err)
	}

	resp, err := s.issuePair(user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Token issuance failed")
		return nil, err
	}

	s.metrics.RegisterRequestsTotal.Add(ctx, 1)
	l.InfoContext(ctx, "User registered", slog.String("userID", user.ID.String()))
	span.SetAttributes(attribute.String("user.id", user.ID.String()))
	span.SetStatus(codes.Ok, "User registered")
	return resp, nil
}

// Login returns types.ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()

	l := s.logger.With(slog.String("method", "Login"))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "User lookup failed")
			return nil, fmt.Errorf("error fetching user for login: %w", err)
		}
		s.hasher.Equalize(password)
		s.metrics.LoginAttempt(ctx, "failure")
		span.SetStatus(codes.Error, "Invalid credentials")
		return nil, types.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.metrics.LoginAttempt(ctx, "failure")
		l.WarnContext(ctx, "Password mismatch", slog.String("userID", user.ID.String()))
		span.SetStatus(codes.Error, "Invalid credentials")
		return nil, types.ErrInvalidCredentials
	}

	resp, err := s.issuePair(user)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Token issuance failed")
		return nil, err
	}
	s.metrics.LoginAttempt(ctx, "success")
	span.SetStatus(codes.Ok, "Logged in")
	return resp, nil
}

// Refresh exchanges a refresh token for a new pair and revokes the presented one.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Refresh")
	defer span.End()

	claims, err := s.tokens.DecodeKind(refreshToken, types.TokenRefresh)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid refresh token")
		return nil, err
	}
	claimed, err := s.revoked.RevokeIfNew(ctx, claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !claimed {
		span.SetStatus(codes.Error, "Refresh token revoked")
		return nil, types.ErrRevokedToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", types.ErrInvalidToken)
	}
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "Session refreshed")
	return s.issuePair(user)
}

// Logout revokes the access token that authenticated the request and, if given, a refresh token.
func (s *AuthServiceImpl) Logout(ctx context.Context, access *types.Claims, refreshToken string) error {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Logout")
	defer span.End()

	if access != nil && access.ExpiresAt != nil {
		if err := s.revoked.Revoke(ctx, access.ID, access.ExpiresAt.Time); err != nil {
			span.RecordError(err)
			return err
		}
	}
	if refreshToken == "" {
		return nil
	}

	claims, err := s.tokens.DecodeKind(refreshToken, types.TokenRefresh)
	if err != nil {
		return err
	}
	if access != nil && claims.Subject != access.Subject {
		return fmt.Errorf("%w: refresh token belongs to another user", types.ErrForbidden)
	}
	return s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// loadUser maps a missing account to types.ErrUserNotFound.
func (s *AuthServiceImpl) loadUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

func (s *AuthServiceImpl) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "GetUserByID", trace.WithAttributes(
		attribute.String("user.id", id.String()),
	))
	defer span.End()
	return s.loadUser(ctx, id)
}

func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, actor *types.User, targetID uuid.UUID, params types.UpdateProfileParams) (*types.User, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "UpdateProfile", trace.WithAttributes(
		attribute.String("user.id", targetID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "UpdateProfile"), slog.String("targetID", targetID.String()))

	if actor == nil {
		return nil, types.ErrUnauthenticated
	}
	if actor.ID != targetID && !actor.IsAdmin() {
		span.SetStatus(codes.Error, "Forbidden")
		return nil, fmt.Errorf("%w: admin access required", types.ErrForbidden)
	}

	var update types.UserUpdate
	update.FullName = params.FullName
	if params.Password != nil && *params.Password != "" {
		hashed, err := s.hasher.Hash(*params.Password)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		update.PasswordHash = &hashed
	}
	if params.Role != nil {
		if actor.IsAdmin() {
			update.Role = params.Role
		} else {
			l.InfoContext(ctx, "Ignoring role change from non-admin")
		}
	}

	user, err := s.repo.UpdateUser(ctx, targetID, update)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, types.ErrUserNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Update failed")
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	span.SetStatus(codes.Ok, "Profile updated")
	return user, nil
}

// ForgotPassword issues a reset token and stores it as the only active one for the email.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) (string, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "ForgotPassword")
	defer span.End()

	if _, err := s.repo.GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", types.ErrUserNotFound
		}
		span.RecordError(err)
		return "", fmt.Errorf("error fetching user: %w", err)
	}

	token, err := s.tokens.IssueReset(email)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	if err := s.repo.UpsertPasswordReset(ctx, email, token); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Storing reset token failed")
		return "", fmt.Errorf("error storing reset token: %w", err)
	}
	span.SetStatus(codes.Ok, "Reset token issued")
	return token, nil
}

// ResetPassword accepts only the latest stored reset token for the email and consumes it.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "ResetPassword")
	defer span.End()

	l := s.logger.With(slog.String("method", "ResetPassword"))

	claims, err := s.tokens.DecodeKind(token, types.TokenPasswordReset)
	if err != nil {
		span.SetStatus(codes.Error, "Invalid reset token")
		return err
	}
	email := claims.Subject

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.ErrUserNotFound
		}
		span.RecordError(err)
		return fmt.Errorf("error fetching user: %w", err)
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	// The token is spent before the password changes.
	if err := s.repo.ConsumePasswordReset(ctx, email, token); err != nil {
		if !errors.Is(err, types.ErrInvalidToken) {
			span.RecordError(err)
		}
		span.SetStatus(codes.Error, "Reset token rejected")
		return err
	}
	if _, err := s.repo.UpdateUser(ctx, user.ID, types.UserUpdate{PasswordHash: &hashed}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Password update failed")
		return fmt.Errorf("error updating password: %w", err)
	}

	l.InfoContext(ctx, "Password reset", slog.String("userID", user.ID.String()))
	span.SetStatus(codes.Ok, "Password reset")
	return nil
}

// EnsureAdmin creates the bootstrap administrator when no account uses its email.
func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, admin config.AdminConfig) error {
	l := s.logger.With(slog.String("method", "EnsureAdmin"))
	if admin.Email == "" || admin.Password == "" {
		l.InfoContext(ctx, "No bootstrap admin configured")
		return nil
	}

	_, err := s.repo.GetUserByEmail(ctx, admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("error checking bootstrap admin: %w", err)
	}

	hashed, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return err
	}
	fullName := admin.FullName
	if fullName == "" {
		fullName = "Admin User"
	}
	user, err := s.repo.CreateUser(ctx, admin.Email, fullName, hashed, types.RoleAdmin)
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			return nil
		}
		return fmt.Errorf("error creating bootstrap admin: %w", err)
	}
	l.InfoContext(ctx, "Bootstrap admin created", slog.String("userID", user.ID.String()))
	return nil
}
