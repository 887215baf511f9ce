package learner_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/domain/learner"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository"
	"github.com/rpggio/sena/internal/repository/mocks"
	"github.com/rpggio/sena/internal/validate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)

func learnerInput(document string) validate.Input {
	return validate.Input{
		"document_number": document,
		"first_name":      "Ana",
		"last_name":       "Gómez",
		"program":         "Software development",
		"phone":           "3001234567",
		"email":           "ana@example.com",
		"birth_date":      "2003-05-20",
		"city":            "Medellín",
	}
}

func TestLearnerService_Create_DuplicateDocument(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LearnerRepository{}
	repo.On("ExistsActiveDocument", ctx, "12345").Return(true, nil)
	repo.On("ExistsActiveDocument", ctx, "67890").Return(false, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := learner.NewService(repo, clock.NewManual(today), nil)

	_, err := svc.Create(ctx, learnerInput("12345"))
	verrs, ok := validate.AsErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{learner.MsgDuplicateDocument}, verrs.Fields[learner.FieldDocument])

	l, err := svc.Create(ctx, learnerInput("67890"))
	require.NoError(t, err)
	require.Equal(t, "67890", l.DocumentNumber)
	require.True(t, l.Active)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestLearnerService_Create_RaceOnUniqueIndex(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LearnerRepository{}
	repo.On("ExistsActiveDocument", ctx, "67890").Return(false, nil)
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrUniqueViolation)

	_, err := learner.NewService(repo, clock.NewManual(today), nil).Create(ctx, learnerInput("67890"))
	verrs, ok := validate.AsErrors(err)
	require.True(t, ok)
	require.Equal(t, []string{learner.MsgDuplicateDocument}, verrs.Fields[learner.FieldDocument])
}

func TestLearnerValidator_Rules(t *testing.T) {
	v := learner.NewValidator(nil, clock.NewManual(today))

	tests := []struct {
		name  string
		field string
		value any
	}{
		{"document with letters", learner.FieldDocument, "12A45"},
		{"document too long", learner.FieldDocument, "123456789012345678901"},
		{"phone with dashes", learner.FieldPhone, "300-123"},
		{"bad email", learner.FieldEmail, "ana@"},
		{"future birth date", learner.FieldBirthDate, "2024-08-16"},
		{"missing birth date", learner.FieldBirthDate, ""},
		{"missing program", learner.FieldProgram, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := learnerInput("12345")
			in[tt.field] = tt.value
			_, err := v.Validate(context.Background(), in)
			verrs, ok := validate.AsErrors(err)
			require.True(t, ok)
			require.True(t, verrs.Has(tt.field))
			require.Len(t, verrs.Fields, 1)
		})
	}
}

func TestLearnerValidator_BirthDateToday(t *testing.T) {
	in := learnerInput("12345")
	in[learner.FieldBirthDate] = "2024-08-15"
	f, err := learner.NewValidator(nil, clock.NewManual(today)).Validate(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "2024-08-15", f.BirthDate.Format(validate.DateLayout))
}

func TestLearnerService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LearnerRepository{}
	repo.On("SoftDelete", ctx, "l1").Return(nil)
	repo.On("SoftDelete", ctx, "l2").Return(repository.ErrNotFound)

	svc := learner.NewService(repo, nil, nil)
	admin := user.Actor{UserID: "a1", Role: user.RoleAdmin}

	require.NoError(t, svc.Delete(ctx, admin, "l1"))
	require.ErrorIs(t, svc.Delete(ctx, admin, "l2"), learner.ErrLearnerNotFound)
	require.ErrorIs(t, svc.Delete(ctx, user.Actor{UserID: "u1", Role: user.RoleConsultant}, "l1"), domainerr.ErrPermissionDenied)
}

func TestLearnerService_ListAndStats(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LearnerRepository{}
	repo.On("List", ctx, "gom").Return([]learner.Learner{{ID: "l1", LastName: "Gómez"}}, nil)
	repo.On("Stats", ctx).Return(learner.Stats{Total: 4, WithProgram: 3, Programs: 2}, nil)

	svc := learner.NewService(repo, nil, nil)
	list, err := svc.List(ctx, "gom")
	require.NoError(t, err)
	require.Len(t, list, 1)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, st.Programs)
}
