package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"inventory/internal/core/apperror"
	appctx "inventory/internal/core/context"
	"inventory/internal/core/id"
	"inventory/internal/domain"
	"inventory/pkg/logger"
)

// MsgInvalidCredentials is returned for every failed login.
const MsgInvalidCredentials = "Invalid email or password"

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
	BcryptCost        int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 6,
		BcryptCost:        bcrypt.DefaultCost,
	}
}

// Service provides authentication and user management.
type Service struct {
	userRepo   UserRepository
	jwtService *JWTService
	notifier   WelcomeNotifier
	config     ServiceConfig
}

// NewService creates a new auth service. notifier may be nil.
func NewService(
	userRepo UserRepository,
	jwtService *JWTService,
	notifier WelcomeNotifier,
	config ServiceConfig,
) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		notifier:   notifier,
		config:     config,
	}
}

// Register registers a new user and sends a welcome e-mail.
// E-mail delivery failures are logged and never fail registration.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	user := NewUser(req.Email, "", req.FirstName, req.LastName, req.Role)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewConflict("Email already exists").WithDetail("email", user.Email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(passwordHash)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)

	if s.notifier != nil {
		if err := s.notifier.SendWelcome(ctx, user.Email, user.FullName()); err != nil {
			logger.Warn(ctx, "welcome email failed", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

// Login authenticates user and returns an access token.
// Unknown email, wrong password and inactive account all yield the same error.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(creds.Email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized(MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized(MsgInvalidCredentials)
	}
	if !user.IsActive {
		return nil, apperror.NewUnauthorized(MsgInvalidCredentials)
	}

	token, _, err := s.jwtService.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	logger.Info(ctx, "user logged in",
		"user_id", user.ID,
		"email", user.Email)

	return &LoginResult{User: user, Token: token}, nil
}

// Authenticate validates the token and confirms the user still exists and is active.
func (s *Service) Authenticate(ctx context.Context, token string) (*appctx.UserContext, error) {
	uc, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := id.Parse(uc.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid token")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("User not found")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !user.IsActive {
		return nil, apperror.NewUnauthorized("User account is inactive")
	}
	return uc, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, userID id.ID) (*User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ListUsers lists users with filtering.
func (s *Service) ListUsers(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*User], error) {
	return s.userRepo.List(ctx, filter)
}

// UpdateUser applies an administrative patch.
func (s *Service) UpdateUser(ctx context.Context, userID id.ID, patch Patch) (*User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	columns := patch.Apply(user)
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user, columns); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user.
func (s *Service) DeleteUser(ctx context.Context, userID id.ID) error {
	deleted, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return apperror.NewNotFound("user", userID.String())
	}
	logger.Info(ctx, "user deleted", "user_id", userID)
	return nil
}
