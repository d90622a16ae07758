package service

import (
	"testing"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

var issuedAt = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestTokens(t *testing.T, now time.Time) *TokenService {
	t.Helper()
	tokens, err := NewTokenService(testSecret, DefaultTokenExpiry)
	require.NoError(t, err)
	return tokens.WithClock(fixedClock(now))
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	assert.Error(t, err)
}

func TestNewTokenService_DefaultsExpiry(t *testing.T) {
	tokens, err := NewTokenService(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, tokens.Expiry())
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := newTestTokens(t, issuedAt)
	user := &models.User{ID: 7, Username: "alice", Role: models.RolePhysician}

	token, expiresAt, err := tokens.Issue(user)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(8*time.Hour), expiresAt)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RolePhysician, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenService_Verify(t *testing.T) {
	user := &models.User{ID: 3, Username: "bob", Role: models.RoleNurse}

	forger, err := NewTokenService("another-secret-that-is-32-bytes-long!!", DefaultTokenExpiry)
	require.NoError(t, err)
	forger.WithClock(fixedClock(issuedAt))

	valid, _, err := newTestTokens(t, issuedAt).Issue(user)
	require.NoError(t, err)
	forged, _, err := forger.Issue(user)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{
		UserID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{
			name:  "valid just before expiry",
			token: valid,
			now:   issuedAt.Add(8*time.Hour - time.Second),
		},
		{
			name:    "expired at the boundary",
			token:   valid,
			now:     issuedAt.Add(8 * time.Hour),
			wantErr: apperror.ErrExpiredToken,
		},
		{
			name:    "expired and forged reports expiry",
			token:   forged,
			now:     issuedAt.Add(9 * time.Hour),
			wantErr: apperror.ErrExpiredToken,
		},
		{
			name:    "forged signature",
			token:   forged,
			now:     issuedAt.Add(time.Minute),
			wantErr: apperror.ErrMalformedOrForgedToken,
		},
		{
			name:    "garbage",
			token:   "not.a.token",
			now:     issuedAt,
			wantErr: apperror.ErrMalformedOrForgedToken,
		},
		{
			name:    "alg none",
			token:   unsigned,
			now:     issuedAt,
			wantErr: apperror.ErrMalformedOrForgedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := newTestTokens(t, tt.now).Verify(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(3), claims.UserID)
		})
	}
}
