package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository"
	"github.com/rpggio/sena/internal/repository/mocks"
	"github.com/rpggio/sena/internal/validate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidate_User(t *testing.T) {
	f, err := user.Validate(validate.Input{"username": "ana", "area": "sennova"})
	require.NoError(t, err)
	require.Equal(t, user.RoleCollaborator, f.Role)

	_, err = user.Validate(validate.Input{"username": "", "area": "moon", "phone": "12-34"})
	verrs, ok := validate.AsErrors(err)
	require.True(t, ok)
	require.True(t, verrs.Has("username"))
	require.True(t, verrs.Has("area"))
	require.True(t, verrs.Has("phone"))
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	u, err := user.NewService(repo, clock.NewManual(now), nil).Create(ctx, validate.Input{
		"username": "ana",
		"role":     "coordinator",
		"area":     "training_center",
	})
	require.NoError(t, err)
	require.True(t, u.Active)
	require.Equal(t, now, u.RegisteredAt)
	require.True(t, u.Actor().IsManager())
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrUniqueViolation)

	_, err := user.NewService(repo, nil, nil).Create(ctx, validate.Input{"username": "ana", "area": "sennova"})
	verrs, ok := validate.AsErrors(err)
	require.True(t, ok)
	require.True(t, verrs.Has("username"))
}

func TestUserService_ResolveActor(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Get", ctx, "u1").Return(&user.User{ID: "u1", Role: user.RoleAdmin, Active: true}, nil)
	repo.On("Get", ctx, "u2").Return(&user.User{ID: "u2", Role: user.RoleAdmin, Active: false}, nil)
	repo.On("Get", ctx, "u3").Return(nil, repository.ErrNotFound)

	svc := user.NewService(repo, nil, nil)

	actor, err := svc.ResolveActor(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, user.Actor{UserID: "u1", Role: user.RoleAdmin}, actor)

	_, err = svc.ResolveActor(ctx, "u2")
	require.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = svc.ResolveActor(ctx, "u3")
	require.ErrorIs(t, err, domainerr.ErrNotFound)
}

func TestUserService_Deactivate_AdminOnly(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Deactivate", ctx, "u2").Return(nil)

	svc := user.NewService(repo, nil, nil)
	require.ErrorIs(t, svc.Deactivate(ctx, user.Actor{UserID: "u1", Role: user.RoleCoordinator}, "u2"), user.ErrNotAdmin)
	require.NoError(t, svc.Deactivate(ctx, user.Actor{UserID: "u1", Role: user.RoleAdmin}, "u2"))
	repo.AssertNumberOfCalls(t, "Deactivate", 1)
}

func TestUserService_SearchDefaultLimit(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Search", ctx, "an", user.DefaultSearchLimit).Return([]user.User{{Username: "ana"}}, nil)

	users, err := user.NewService(repo, nil, nil).Search(ctx, "an", 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
}
