package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/storefront-api/internal/api"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
	userKey     contextKey = "user"
	claimsKey   contextKey = "claims"
)

// UserLoader is the read side of the credential store the middleware needs.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
}

// Middleware authenticates bearer access tokens and guards admin routes.
type Middleware struct {
	logger  *slog.Logger
	tokens  *TokenService
	revoked Denylist
	users   UserLoader
}

func NewMiddleware(tokens *TokenService, revoked Denylist, users UserLoader, logger *slog.Logger) *Middleware {
	return &Middleware{
		logger:  logger,
		tokens:  tokens,
		revoked: revoked,
		users:   users,
	}
}

// Authenticate requires a valid, unrevoked access token whose subject still exists.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		l := m.logger.With(slog.String("middleware", "Authenticate"))

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			l.DebugContext(ctx, "Missing Authorization header")
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}

		headerParts := strings.Fields(authHeader)
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			l.WarnContext(ctx, "Invalid Authorization header format")
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims, err := m.tokens.Decode(headerParts[1])
		if err != nil {
			l.WarnContext(ctx, "Token validation failed", slog.Any("error", err))
			errMsg := "Invalid token"
			if errors.Is(err, types.ErrExpiredToken) {
				errMsg = "Token has expired"
			}
			api.ErrorResponse(w, r, http.StatusUnauthorized, errMsg)
			return
		}
		if claims.Type != types.TokenAccess {
			l.WarnContext(ctx, "Non-access token presented", slog.String("type", string(claims.Type)))
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token type")
			return
		}

		revoked, err := m.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			l.ErrorContext(ctx, "Revocation check failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to validate token")
			return
		}
		if revoked {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}
		user, err := m.users.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrUserNotFound) {
				l.WarnContext(ctx, "Token subject no longer exists", slog.String("userID", claims.Subject))
				api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
				return
			}
			l.ErrorContext(ctx, "Failed to load user", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load user")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(ctx, user, claims)))
	})
}

// RequireAdmin must run after Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if !user.IsAdmin() {
			m.logger.WarnContext(r.Context(), "Admin route denied", slog.String("userID", user.ID.String()))
			api.ErrorResponse(w, r, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser stores the authenticated user and its token claims on ctx.
func WithUser(ctx context.Context, user *types.User, claims *types.Claims) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	ctx = context.WithValue(ctx, claimsKey, claims)
	ctx = context.WithValue(ctx, UserIDKey, user.ID.String())
	return context.WithValue(ctx, UserRoleKey, string(user.Role))
}

func GetUserFromContext(ctx context.Context) (*types.User, bool) {
	user, ok := ctx.Value(userKey).(*types.User)
	return user, ok && user != nil
}

func GetClaimsFromContext(ctx context.Context) (*types.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*types.Claims)
	return claims, ok && claims != nil
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(UserRoleKey).(string)
	return role, ok
}
