package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hospital-management-backend/internal/apperror"
	"hospital-management-backend/internal/models"
	"hospital-management-backend/internal/repository"
	"hospital-management-backend/pkg/utils"

	"go.uber.org/zap"
)

// CredentialStore persists user identities and password hashes
type CredentialStore interface {
	UserLookup
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	AdminExists(ctx context.Context) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	SetActive(ctx context.Context, id uint, active bool) error
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}

// AuditRecorder writes audit trail entries
type AuditRecorder interface {
	CreateAuditLog(ctx context.Context, userID *uint, action string, details string) error
}

type AuthService struct {
	users  CredentialStore
	audit  AuditRecorder
	tokens *TokenService
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(users CredentialStore, audit AuditRecorder, tokens *TokenService, log *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		audit:  audit,
		tokens: tokens,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RegisterInput carries a registration request
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
}

// UserResponse is the public summary of a user
type UserResponse struct {
	ID          uint        `json:"id"`
	Username    string      `json:"username"`
	FullName    string      `json:"full_name"`
	Role        models.Role `json:"role"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Role:        user.Role,
		LastLoginAt: user.LastLoginAt,
	}
}

// Register creates a new user account. Anyone may register a non-admin
// account; an admin account can only be registered by an active admin.
func (s *AuthService) Register(ctx context.Context, actor *models.User, in RegisterInput) (*UserResponse, error) {
	if models.Role(strings.TrimSpace(in.Role)) == models.RoleAdmin && (actor == nil || actor.Role != models.RoleAdmin) {
		return nil, apperror.ErrAdminRegistration
	}
	return s.createUser(ctx, in)
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput) (*UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Role = strings.TrimSpace(in.Role)

	if in.Username == "" || in.Email == "" || in.Password == "" || in.FullName == "" || in.Role == "" {
		return nil, apperror.Validation("username, email, password, full_name and role are required")
	}
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, apperror.Validation("invalid role: must be one of admin, physician, nurse, receptionist")
	}
	if err := utils.ValidatePassword("password", in.Password); err != nil {
		return nil, err
	}

	exists, err := s.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, apperror.Unexpected("failed to check username", err)
	}
	if exists {
		return nil, apperror.Conflict(apperror.CodeDuplicateUsername, "username already exists")
	}

	exists, err = s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, apperror.Unexpected("failed to check email", err)
	}
	if exists {
		return nil, apperror.Conflict(apperror.CodeDuplicateEmail, "email already registered")
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Unexpected("failed to hash password", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
		FullName:     in.FullName,
		Role:         role,
		Active:       true,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.CodeDuplicateKey, "username or email already exists")
		}
		return nil, apperror.Unexpected("failed to create user", err)
	}

	s.record(ctx, &user.ID, models.AuditUserRegistration, fmt.Sprintf("User %s registered with role %s", user.Username, user.Role))

	response := newUserResponse(user)
	return &response, nil
}

// Login authenticates a user and returns a session token.
// Unknown usernames and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if username == "" || password == "" {
		return nil, apperror.Validation("username and password are required")
	}

	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Spend the same bcrypt time as a real comparison.
			utils.ComparePassword(dummyHash(), password)
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, apperror.Unexpected("failed to load user", err)
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, apperror.ErrInactiveUser
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, apperror.Unexpected("failed to update last login", err)
	}
	user.LastLoginAt = &now

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperror.Unexpected("failed to issue token", err)
	}

	s.record(ctx, &user.ID, models.AuditUserLogin, fmt.Sprintf("User %s logged in", user.Username))

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      newUserResponse(user),
	}, nil
}

// ListUsers returns every account
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, apperror.Unexpected("failed to list users", err)
	}
	return users, nil
}

// ToggleActive flips the active flag of another user
func (s *AuthService) ToggleActive(ctx context.Context, actor *models.User, targetID uint) (*models.User, error) {
	if actor.ID == targetID {
		return nil, apperror.Validation("cannot change the active state of your own account")
	}

	target, err := s.users.FindUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Unexpected("failed to load user", err)
	}

	target.Active = !target.Active
	if err := s.users.SetActive(ctx, target.ID, target.Active); err != nil {
		return nil, apperror.Unexpected("failed to update user", err)
	}

	status := "deactivated"
	if target.Active {
		status = "activated"
	}
	s.record(ctx, &actor.ID, models.AuditUserToggle, fmt.Sprintf("User %s %s by %s", target.Username, status, actor.Username))

	return target, nil
}

// ChangePassword replaces the password of user after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, current, next string) error {
	if current == "" || next == "" {
		return apperror.Validation("current_password and new_password are required")
	}
	if !utils.ComparePassword(user.PasswordHash, current) {
		return apperror.Validation("current password is incorrect")
	}
	if err := utils.ValidatePassword("new_password", next); err != nil {
		return err
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return apperror.Unexpected("failed to hash password", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return apperror.Unexpected("failed to update password", err)
	}

	s.record(ctx, &user.ID, models.AuditPasswordChange, fmt.Sprintf("User %s changed password", user.Username))
	return nil
}

// EnsureAdmin creates the given admin account unless an admin already exists.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, in RegisterInput) (bool, error) {
	exists, err := s.users.AdminExists(ctx)
	if err != nil {
		return false, apperror.Unexpected("failed to check for admin", err)
	}
	if exists {
		return false, nil
	}

	in.Role = string(models.RoleAdmin)
	if _, err := s.createUser(ctx, in); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) record(ctx context.Context, userID *uint, action, details string) {
	if err := s.audit.CreateAuditLog(ctx, userID, action, details); err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}

var (
	dummyOnce sync.Once
	dummy     string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = utils.HashPassword("timing-equalizer")
	})
	return dummy
}
