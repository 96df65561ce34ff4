package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// UserService exposes the board member directory.
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser registers a new board member. Only admins may create accounts.
func (s *UserService) CreateUser(ctx context.Context, username, password, displayName string, role entities.UserRole, actor *entities.User) (*entities.User, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, entities.ErrUnauthorized
	}

	if !role.IsValid() {
		ve := entities.NewValidationError()
		ve.Add("role", "role must be one of: admin, member")
		return nil, ve
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		ve := entities.NewValidationError()
		ve.Add("username", fmt.Sprintf("username %s is already taken", username))
		return nil, ve
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = username
	}

	user := &entities.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("User created", "user_id", user.ID, "username", user.Username, "role", user.Role)

	user.PasswordHash = ""

	return user, nil
}

// GetUser retrieves a user by ID with the password hash stripped.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return user, nil
}

// ListUsers returns every board member with password hashes stripped.
func (s *UserService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		user.PasswordHash = ""
	}

	return users, nil
}
