package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum HS256 key size in bytes
const MinSecretLength = 32

// DefaultTokenExpiry is the fixed session window
const DefaultTokenExpiry = 8 * time.Hour

// TokenClaims represents the session token claims
type TokenClaims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless session tokens
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret
func NewTokenService(secret string, expiry time.Duration) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d bytes", MinSecretLength)
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &TokenService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Expiry returns the validity window of issued tokens
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue signs a token for user valid for the configured window
func (s *TokenService) Issue(user *models.User) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.expiry)

	claims := TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Verify parses tokenString and returns its claims.
// Expiry is checked before the signature, so an expired token is reported
// as expired whether or not its signature is valid.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	unverified := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, unverified); err != nil {
		return nil, apperror.Wrap(apperror.KindAuthentication, apperror.CodeMalformedOrForgedToken,
			apperror.ErrMalformedOrForgedToken.Message, err)
	}
	if unverified.ExpiresAt == nil {
		return nil, apperror.ErrMalformedOrForgedToken
	}
	if !s.now().Before(unverified.ExpiresAt.Time) {
		return nil, apperror.ErrExpiredToken
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.ErrExpiredToken
		}
		return nil, apperror.Wrap(apperror.KindAuthentication, apperror.CodeMalformedOrForgedToken,
			apperror.ErrMalformedOrForgedToken.Message, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, apperror.ErrMalformedOrForgedToken
	}

	return claims, nil
}
