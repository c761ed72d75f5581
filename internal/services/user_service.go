package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"cafeteria/internal/utils"
	"context"
	"fmt"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User, password string) error
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register creates a customer account.
func (s *userService) Register(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{
		Username: username,
		Role:     string(models.RoleCustomer),
	}
	if err := s.CreateUser(ctx, user, password); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, user *models.User, password string) error {
	existing, err := s.userRepo.GetByUsername(ctx, user.Username)
	if err == nil && existing != nil {
		return ErrUsernameTaken
	}
	if err != nil && !isRecordNotFound(err) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashedPassword
	if user.Role == "" {
		user.Role = string(models.RoleCustomer)
	}

	// The unique index settles races between concurrent registrations.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Authenticate does not reveal whether the username or the password was wrong.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
