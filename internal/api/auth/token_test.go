package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/storefront-api/config"
	"github.com/FACorreiaa/storefront-api/internal/types"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:       "test-secret",
		Issuer:          "storefront-api",
		Audience:        "storefront",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		ResetTokenTTL:   time.Hour,
	}
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService(testJWTConfig())
	require.NoError(t, err)
	return s
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.SecretKey = ""
	_, err := NewTokenService(cfg)
	assert.Error(t, err)
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	s := newTestTokenService(t)
	userID := uuid.New()

	token, err := s.IssueAccess(userID, types.RoleCustomer)
	require.NoError(t, err)

	claims, err := s.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, types.TokenAccess, claims.Type)
	assert.Equal(t, types.RoleCustomer, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "storefront-api", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_KindsAndLifetimes(t *testing.T) {
	s := newTestTokenService(t)
	userID := uuid.New()

	refresh, err := s.IssueRefresh(userID)
	require.NoError(t, err)
	claims, err := s.DecodeKind(refresh, types.TokenRefresh)
	require.NoError(t, err)
	assert.Empty(t, claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	reset, err := s.IssueReset("alice@example.com")
	require.NoError(t, err)
	claims, err = s.DecodeKind(reset, types.TokenPasswordReset)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_DecodeKindRejectsOtherKinds(t *testing.T) {
	s := newTestTokenService(t)

	refresh, err := s.IssueRefresh(uuid.New())
	require.NoError(t, err)
	_, err = s.DecodeKind(refresh, types.TokenAccess)
	assert.ErrorIs(t, err, types.ErrWrongTokenType)

	reset, err := s.IssueReset("bob@example.com")
	require.NoError(t, err)
	_, err = s.DecodeKind(reset, types.TokenAccess)
	assert.ErrorIs(t, err, types.ErrWrongTokenType)
}

func TestTokenService_Expired(t *testing.T) {
	s := newTestTokenService(t)
	issued := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return issued }

	token, err := s.IssueAccess(uuid.New(), types.RoleAdmin)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Decode(token)
	assert.ErrorIs(t, err, types.ErrExpiredToken)
}

func TestTokenService_InvalidTokens(t *testing.T) {
	s := newTestTokenService(t)

	other, err := NewTokenService(config.JWTConfig{
		SecretKey:      "another-secret",
		Issuer:         "storefront-api",
		Audience:       "storefront",
		AccessTokenTTL: time.Minute,
	})
	require.NoError(t, err)
	foreign, err := other.IssueAccess(uuid.New(), types.RoleCustomer)
	require.NoError(t, err)

	wrongIssuer := testJWTConfig()
	wrongIssuer.Issuer = "someone-else"
	impostor, err := NewTokenService(wrongIssuer)
	require.NoError(t, err)
	misissued, err := impostor.IssueAccess(uuid.New(), types.RoleCustomer)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.Claims{
		Type: types.TokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  uuid.NewString(),
			Issuer:   "storefront-api",
			Audience: jwt.ClaimStrings{"storefront"},
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &types.Claims{
		Type: types.TokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"empty", ""},
		{"wrong secret", foreign},
		{"wrong issuer", misissued},
		{"missing expiry", noExpiry},
		{"none algorithm", noneAlg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Decode(tt.token)
			assert.ErrorIs(t, err, types.ErrInvalidToken)
		})
	}
}

func TestTokenService_UniqueIDs(t *testing.T) {
	s := newTestTokenService(t)
	userID := uuid.New()

	a, err := s.IssueAccess(userID, types.RoleCustomer)
	require.NoError(t, err)
	b, err := s.IssueAccess(userID, types.RoleCustomer)
	require.NoError(t, err)

	ca, err := s.Decode(a)
	require.NoError(t, err)
	cb, err := s.Decode(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}
