package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{
		ID:           "u1",
		Username:     "mgarcia",
		FullName:     "María García",
		Role:         user.RoleCoordinator,
		Area:         user.AreaRegionalOffice,
		Phone:        "3001234567",
		Active:       true,
		RegisteredAt: testNow,
	}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, u, got)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "u1", user.RoleCollaborator)

	dup := &user.User{ID: "u2", Username: "u1", Role: user.RoleCollaborator, Area: user.AreaSennova, Active: true, RegisteredAt: testNow}
	err := repo.Create(context.Background(), dup)
	require.ErrorIs(t, err, repository.ErrUniqueViolation)
}

func TestUserRepository_SearchAndDeactivate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seedUser(t, db, "ana", user.RoleCollaborator)
	seedUser(t, db, "anabel", user.RoleCollaborator)
	seedUser(t, db, "bruno", user.RoleCollaborator)

	found, err := repo.Search(ctx, "ANA", 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, "ana", found[0].Username)
	require.Equal(t, "anabel", found[1].Username)

	limited, err := repo.Search(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	require.NoError(t, repo.Deactivate(ctx, "anabel"))
	found, err = repo.Search(ctx, "ana", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)

	got, err := repo.Get(ctx, "anabel")
	require.NoError(t, err)
	require.False(t, got.Active)

	require.ErrorIs(t, repo.Deactivate(ctx, "missing"), repository.ErrNotFound)
}

func TestUserRepository_AreActive(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seedUser(t, db, "u1", user.RoleCollaborator)
	seedUser(t, db, "u2", user.RoleCollaborator)
	require.NoError(t, repo.Deactivate(ctx, "u2"))

	missing, err := repo.AreActive(ctx, []string{"u1", "u2", "ghost"})
	require.NoError(t, err)
	require.Equal(t, []string{"u2", "ghost"}, missing)

	missing, err = repo.AreActive(ctx, []string{"u1"})
	require.NoError(t, err)
	require.Empty(t, missing)

	missing, err = repo.AreActive(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, missing)
}
