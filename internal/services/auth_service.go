package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/task-project-api/internal/auth"
	"github.com/yukikurage/task-project-api/internal/constants"
	"github.com/yukikurage/task-project-api/internal/models"
	"github.com/yukikurage/task-project-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username or email already exists")
	ErrInvalidUsername      = errors.New("username must be 3 to 50 characters")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrPasswordTooLong      = errors.New("password too long")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrInvalidRole          = errors.New("invalid role")
	ErrUserNotFound         = auth.ErrUserNotFound
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles registration, login and user lookup.
// It is also the auth.UserDetailsService consulted by the bearer-token gate.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   auth.TokenService
}

var _ auth.UserDetailsService = (*AuthService)(nil)

func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// RegisterInput describes a new account. An empty Role means USER;
// the public register endpoint never sets it.
type RegisterInput struct {
	Username string
	Email    *string
	Password string
	Role     models.UserRole
}

// Register creates a new user
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if n := utf8.RuneCountInString(username); n < constants.MinUsernameLength || n > constants.MaxUsernameLength {
		return nil, ErrInvalidUsername
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > constants.MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	var email *string
	if input.Email != nil {
		if trimmed := strings.TrimSpace(*input.Email); trimmed != "" {
			email = &trimmed
		}
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		Enabled:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	return user, nil
}

type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the issued access token
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrAccountDisabled
	}

	token, expiresAt, err := s.tokens.GenerateToken(toUserRecord(user))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// LoadUserByUsername returns an error wrapping auth.ErrUserNotFound when the user does not exist.
func (s *AuthService) LoadUserByUsername(ctx context.Context, username string) (*auth.UserRecord, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", auth.ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	record := toUserRecord(user)
	return &record, nil
}

func toUserRecord(user *models.User) auth.UserRecord {
	return auth.UserRecord{
		ID:          user.ID,
		Username:    user.Username,
		Authorities: user.Authorities(),
		Enabled:     user.Enabled,
	}
}
