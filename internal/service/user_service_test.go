package service

import (
	"context"
	"testing"

	"butcher_shop/internal/model"
	"butcher_shop/internal/repository"
	"butcher_shop/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_DefaultsToUserRole(t *testing.T) {
	var created *model.User
	repo := &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *model.User) error {
			user.ID = 5
			created = user
			return nil
		},
	}
	svc := NewUserService(repo)

	user, err := svc.CreateUser(context.Background(), model.CreateUserRequest{
		Username: "butcher",
		Password: "chops123",
	})

	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	require.NotNil(t, created)
	assert.NotEqual(t, "chops123", created.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("chops123", created.PasswordHash))
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&mockUserRepo{})

	_, err := svc.CreateUser(context.Background(), model.CreateUserRequest{
		Username: "butcher",
		Password: "chops123",
		Role:     "superadmin",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	repo := &mockUserRepo{
		CreateFunc: func(ctx context.Context, user *model.User) error {
			return repository.ErrDuplicateUsername
		},
	}
	svc := NewUserService(repo)

	_, err := svc.CreateUser(context.Background(), model.CreateUserRequest{
		Username: "admin",
		Password: "admin123",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestDeleteUser_ProtectedSeedAdmin(t *testing.T) {
	deleteCalls := 0
	repo := &mockUserRepo{
		DeleteFunc: func(ctx context.Context, id int) error {
			deleteCalls++
			return nil
		},
	}
	svc := NewUserService(repo)

	err := svc.DeleteUser(context.Background(), model.SeedAdminID)

	assert.ErrorIs(t, err, ErrProtectedUser)
	assert.Zero(t, deleteCalls, "protected admin must never reach the repository")
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo := &mockUserRepo{
		DeleteFunc: func(ctx context.Context, id int) error {
			return pgx.ErrNoRows
		},
	}
	svc := NewUserService(repo)

	err := svc.DeleteUser(context.Background(), 99)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_Success(t *testing.T) {
	var deletedID int
	repo := &mockUserRepo{
		DeleteFunc: func(ctx context.Context, id int) error {
			deletedID = id
			return nil
		},
	}
	svc := NewUserService(repo)

	err := svc.DeleteUser(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 7, deletedID)
}
