package domainerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestPersistenceError_Constraint(t *testing.T) {
	unique := domainerr.Persistence("create learner", fmt.Errorf("insert: %w", repository.ErrUniqueViolation))
	require.True(t, unique.Constraint())
	require.False(t, domainerr.IsInfrastructure(unique))
	require.ErrorIs(t, unique, repository.ErrUniqueViolation)

	disk := domainerr.Persistence("create learner", errors.New("disk I/O error"))
	require.False(t, disk.Constraint())
	require.True(t, domainerr.IsInfrastructure(fmt.Errorf("wrapped: %w", disk)))
	require.Equal(t, "create learner: disk I/O error", disk.Error())
}

func TestIsInfrastructure_OtherErrors(t *testing.T) {
	require.False(t, domainerr.IsInfrastructure(domainerr.ErrNotFound))
	require.False(t, domainerr.IsInfrastructure(nil))
}
