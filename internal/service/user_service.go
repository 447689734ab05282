package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"butcher_shop/internal/model"
	"butcher_shop/internal/repository"
	"butcher_shop/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrInvalidRole   = errors.New("role must be 'user' or 'admin'")
	ErrProtectedUser = errors.New("cannot delete admin user")
)

// UserService defines admin user-management operations
type UserService interface {
	ListUsers(ctx context.Context) ([]model.PublicUser, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []model.PublicUser{}
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user in repo: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account. The seeded admin is never deletable.
func (s *userService) DeleteUser(ctx context.Context, id int) error {
	if id == model.SeedAdminID {
		return ErrProtectedUser
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user in repo: %w", err)
	}
	return nil
}
