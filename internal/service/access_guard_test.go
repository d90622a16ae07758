package service

import (
	"context"
	"testing"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/service/servicetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessGuard_Authenticate(t *testing.T) {
	users := servicetest.NewUsers()
	tokens := newTestTokens(t, issuedAt)
	guard := NewAccessGuard(tokens, users)

	nurse := users.Add(models.User{Username: "nina", Role: models.RoleNurse, Active: true})
	inactive := users.Add(models.User{Username: "ivan", Role: models.RoleNurse, Active: false})
	ghost := &models.User{ID: 99, Username: "ghost", Role: models.RoleAdmin}

	nurseToken, _, err := tokens.Issue(nurse)
	require.NoError(t, err)
	inactiveToken, _, err := tokens.Issue(inactive)
	require.NoError(t, err)
	ghostToken, _, err := tokens.Issue(ghost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantUser uint
		wantErr  error
	}{
		{name: "bearer prefix", header: "Bearer " + nurseToken, wantUser: nurse.ID},
		{name: "raw token", header: nurseToken, wantUser: nurse.ID},
		{name: "empty header", header: "", wantErr: apperror.ErrMissingToken},
		{name: "bearer without token", header: "Bearer ", wantErr: apperror.ErrMissingToken},
		{name: "bare scheme", header: "Bearer", wantErr: apperror.ErrMissingToken},
		{name: "scheme with padding", header: "Bearer    ", wantErr: apperror.ErrMissingToken},
		{name: "lowercase scheme", header: "bearer " + nurseToken, wantUser: nurse.ID},
		{name: "extra spaces after scheme", header: "  BEARER   " + nurseToken + " ", wantUser: nurse.ID},
		{name: "garbage token", header: "Bearer abc", wantErr: apperror.ErrInvalidToken},
		{name: "inactive user", header: "Bearer " + inactiveToken, wantErr: apperror.ErrInactiveUser},
		{name: "deleted user", header: "Bearer " + ghostToken, wantErr: apperror.ErrInactiveUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := guard.Authenticate(context.Background(), tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user.ID)
		})
	}
}

func TestAccessGuard_AuthenticateWrapsVerifyFailure(t *testing.T) {
	users := servicetest.NewUsers()
	user := users.Add(models.User{Username: "nina", Role: models.RoleNurse, Active: true})

	token, _, err := newTestTokens(t, issuedAt).Issue(user)
	require.NoError(t, err)

	later := newTestTokens(t, issuedAt.Add(9*time.Hour))
	_, err = NewAccessGuard(later, users).Authenticate(context.Background(), "Bearer "+token)

	assert.Equal(t, apperror.CodeInvalidToken, apperror.CodeOf(err))
	assert.Equal(t, apperror.KindAuthentication, apperror.KindOf(err))
	assert.ErrorIs(t, err, apperror.ErrExpiredToken)
}

func TestAccessGuard_DeactivationTakesEffectImmediately(t *testing.T) {
	users := servicetest.NewUsers()
	tokens := newTestTokens(t, issuedAt)
	guard := NewAccessGuard(tokens, users)
	user := users.Add(models.User{Username: "nina", Role: models.RoleNurse, Active: true})

	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	_, err = guard.Authenticate(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, users.SetActive(context.Background(), user.ID, false))

	_, err = guard.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperror.ErrInactiveUser)
}

func TestAccessGuard_Authorize(t *testing.T) {
	guard := NewAccessGuard(nil, nil)
	nurse := &models.User{ID: 1, Role: models.RoleNurse}
	receptionist := &models.User{ID: 2, Role: models.RoleReceptionist}

	tests := []struct {
		name    string
		user    *models.User
		policy  Policy
		wantErr error
	}{
		{name: "nurse on admin-only", user: nurse, policy: PolicyAdmin, wantErr: apperror.ErrForbidden},
		{name: "nurse on clinical staff", user: nurse, policy: PolicyClinicalStaff},
		{name: "nurse on prescriber", user: nurse, policy: PolicyPrescriber, wantErr: apperror.ErrForbidden},
		{name: "receptionist on front desk", user: receptionist, policy: PolicyFrontDesk},
		{name: "receptionist on clinical staff", user: receptionist, policy: PolicyClinicalStaff, wantErr: apperror.ErrForbidden},
		{name: "empty policy admits anyone", user: receptionist, policy: PolicyAuthenticated},
		{name: "no user", user: nil, policy: PolicyAuthenticated, wantErr: apperror.ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Authorize(tt.user, tt.policy)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer", ""},
		{"Bearer ", ""},
		{"bearer\tabc.def.ghi", "abc.def.ghi"},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"abc.def.ghi", "abc.def.ghi"},
		{"Bearerabc", "Bearerabc"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, bearerToken(tt.header))
		})
	}
}
