package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/sena/internal/domain/program"
	"github.com/rpggio/sena/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestProgram(id, code, name string, level program.Level) *program.Program {
	return &program.Program{
		ID:                    id,
		Code:                  code,
		Name:                  name,
		Level:                 level,
		Modality:              program.ModalityInPerson,
		DurationMonths:        24,
		DurationHours:         3120,
		Description:           "Description",
		Competencies:          "Competencies",
		GraduateProfile:       "Profile",
		AdmissionRequirements: "Requirements",
		TrainingCenter:        "CEET",
		Regional:              "Distrito Capital",
		Status:                program.StatusActive,
		CreatedOn:             time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestProgramRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProgramRepository(db)
	ctx := context.Background()

	p := newTestProgram("g1", "228106", "Software Analysis", program.LevelTechnologist)
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, p, got)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Create(ctx, newTestProgram("g2", "228106", "Other", program.LevelTechnician))
	require.ErrorIs(t, err, repository.ErrUniqueViolation)
}

func TestProgramRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProgramRepository(db)
	ctx := context.Background()

	inactive := newTestProgram("g3", "300", "Baking", program.LevelTechnician)
	inactive.Status = program.StatusInactive
	for _, p := range []*program.Program{
		newTestProgram("g1", "100", "Welding", program.LevelOperator),
		newTestProgram("g2", "200", "Accounting", program.LevelTechnician),
		inactive,
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	all, err := repo.List(ctx, program.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"Accounting", "Baking", "Welding"}, []string{all[0].Name, all[1].Name, all[2].Name})

	technicians, err := repo.List(ctx, program.ListOptions{Level: program.LevelTechnician, Status: program.StatusActive})
	require.NoError(t, err)
	require.Len(t, technicians, 1)
	require.Equal(t, "g2", technicians[0].ID)

	byCode, err := repo.List(ctx, program.ListOptions{Search: "10"})
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	require.Equal(t, "g1", byCode[0].ID)
}
