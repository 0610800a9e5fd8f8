package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/FACorreiaa/storefront-api/config"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

// TokenService issues and decodes HS256 tokens signed with one shared secret.
type TokenService struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
	now        func() time.Time
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	return &TokenService{
		secret:     []byte(cfg.SecretKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		resetTTL:   cfg.ResetTokenTTL,
		now:        time.Now,
	}, nil
}

func (s *TokenService) IssueAccess(userID uuid.UUID, role types.UserRole) (string, error) {
	return s.issue(userID.String(), types.TokenAccess, role, s.accessTTL)
}

func (s *TokenService) IssueRefresh(userID uuid.UUID) (string, error) {
	return s.issue(userID.String(), types.TokenRefresh, "", s.refreshTTL)
}

func (s *TokenService) IssueReset(email string) (string, error) {
	return s.issue(email, types.TokenPasswordReset, "", s.resetTTL)
}

func (s *TokenService) issue(subject string, kind types.TokenKind, role types.UserRole, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &types.Claims{
		Type: kind,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing %s token: %w", kind, err)
	}
	return signed, nil
}

// Decode verifies signature, expiry, issuer and audience.
// It fails with types.ErrExpiredToken past expiry and types.ErrInvalidToken otherwise.
func (s *TokenService) Decode(tokenString string) (*types.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	claims := &types.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, types.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidToken, err.Error())
	}
	return claims, nil
}

// DecodeKind decodes the token and requires its type claim to equal kind.
func (s *TokenService) DecodeKind(tokenString string, kind types.TokenKind) (*types.Claims, error) {
	claims, err := s.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != kind {
		return nil, types.ErrWrongTokenType
	}
	return claims, nil
}
