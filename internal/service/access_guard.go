package service

import (
	"context"
	"errors"
	"strings"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
)

// Policy is the set of roles allowed to run an operation.
// An empty policy admits any authenticated user.
type Policy []models.Role

var (
	PolicyAuthenticated = Policy{}
	PolicyAdmin         = Policy{models.RoleAdmin}
	PolicyPrescriber    = Policy{models.RoleAdmin, models.RolePhysician}
	PolicyClinicalStaff = Policy{models.RoleAdmin, models.RolePhysician, models.RoleNurse}
	PolicyFrontDesk     = Policy{models.RoleAdmin, models.RolePhysician, models.RoleNurse, models.RoleReceptionist}
)

// Allows reports whether role satisfies the policy
func (p Policy) Allows(role models.Role) bool {
	if len(p) == 0 {
		return true
	}
	for _, allowed := range p {
		if role == allowed {
			return true
		}
	}
	return false
}

// UserLookup is the read side of the credential store used on every request
type UserLookup interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AccessGuard authenticates bearer tokens and authorizes roles
type AccessGuard struct {
	tokens *TokenService
	users  UserLookup
}

func NewAccessGuard(tokens *TokenService, users UserLookup) *AccessGuard {
	return &AccessGuard{
		tokens: tokens,
		users:  users,
	}
}

// Authenticate resolves the Authorization header value to the live user.
// The header may carry the bare token or one prefixed with the Bearer
// scheme, matched case-insensitively. The user
// record is re-read so a deactivation takes effect before the token expires.
func (g *AccessGuard) Authenticate(ctx context.Context, authorization string) (*models.User, error) {
	token := bearerToken(authorization)
	if token == "" {
		return nil, apperror.ErrMissingToken
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindAuthentication, apperror.CodeInvalidToken,
			"invalid token: "+messageOf(err), err)
	}

	user, err := g.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrInactiveUser
		}
		return nil, apperror.Unexpected("failed to load user", err)
	}
	if !user.Active {
		return nil, apperror.ErrInactiveUser
	}

	return user, nil
}

// Authorize fails with Forbidden when user's role is outside policy
func (g *AccessGuard) Authorize(user *models.User, policy Policy) error {
	if user == nil {
		return apperror.ErrMissingToken
	}
	if !policy.Allows(user.Role) {
		return apperror.ErrForbidden
	}
	return nil
}

func messageOf(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

const bearerScheme = "bearer"

// bearerToken strips an optional Bearer scheme from an Authorization header.
// A scheme with nothing after it yields "".
func bearerToken(header string) string {
	token := strings.TrimSpace(header)
	if len(token) < len(bearerScheme) || !strings.EqualFold(token[:len(bearerScheme)], bearerScheme) {
		return token
	}
	rest := token[len(bearerScheme):]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return token
	}
	return strings.TrimSpace(rest)
}
