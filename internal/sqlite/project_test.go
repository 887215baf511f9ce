package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func createdEntry(projectID, actorID string) history.Entry {
	return history.Entry{
		ProjectID:   projectID,
		ActorID:     actorID,
		Action:      history.ActionCreated,
		Description: "Created",
		NewState:    string(project.StateProposed),
		CreatedAt:   testNow,
	}
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedUser(t, db, "owner", user.RoleCollaborator)
	seedUser(t, db, "c1", user.RoleCollaborator)
	seedUser(t, db, "c2", user.RoleConsultant)

	p := newTestProject("p1", "owner", testNow)
	p.CollaboratorIDs = []string{"c2", "c1"}
	p.EstimatedStart = date(2024, 7, 1)
	p.EstimatedEnd = date(2024, 12, 31)
	p.EstimatedBudget = decimal.RequireFromString("1500000.50")

	entries := []history.Entry{createdEntry("p1", "owner")}
	require.NoError(t, repo.Create(ctx, p, entries))
	require.NotZero(t, entries[0].ID)

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Project p1", got.Title)
	require.Equal(t, []string{"c1", "c2"}, got.CollaboratorIDs)
	require.True(t, got.EstimatedBudget.Equal(p.EstimatedBudget))
	require.Equal(t, *p.EstimatedStart, *got.EstimatedStart)
	require.Equal(t, *p.EstimatedEnd, *got.EstimatedEnd)
	require.Nil(t, got.ActualEnd)
	require.Equal(t, testNow, got.CreatedAt)
	require.Equal(t, 1, got.Version)
	require.True(t, got.Active)

	hist, err := NewHistoryRepository(db).List(ctx, "p1", history.ListOptions{})
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Equal(t, history.ActionCreated, hist[0].Action)
	require.Equal(t, "proposed", hist[0].NewState)
}

func TestProjectRepository_CreateRollsBackOnFailure(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedUser(t, db, "owner", user.RoleCollaborator)

	p := newTestProject("p1", "owner", testNow)
	p.CollaboratorIDs = []string{"ghost"}

	err := repo.Create(ctx, p, []history.Entry{createdEntry("p1", "owner")})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	_, err = repo.Get(ctx, "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM project_history`).Scan(&n))
	require.Zero(t, n)
}

func TestProjectRepository_Update(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedUser(t, db, "owner", user.RoleCollaborator)
	seedUser(t, db, "c1", user.RoleCollaborator)
	require.NoError(t, repo.Create(ctx, newTestProject("p1", "owner", testNow), nil))

	p, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	p.State = project.StateInReview
	p.CollaboratorIDs = []string{"c1"}
	p.CompletionPercentage = 10
	p.Version = 2

	entries := []history.Entry{{
		ProjectID:     "p1",
		ActorID:       "owner",
		Action:        history.ActionStateChanged,
		Description:   "State changed",
		PreviousState: "proposed",
		NewState:      "in_review",
		CreatedAt:     testNow.Add(time.Minute),
	}}
	require.NoError(t, repo.Update(ctx, p, 1, entries))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, project.StateInReview, got.State)
	require.Equal(t, []string{"c1"}, got.CollaboratorIDs)
	require.Equal(t, 10, got.CompletionPercentage)
	require.Equal(t, 2, got.Version)

	hist, err := NewHistoryRepository(db).List(ctx, "p1", history.ListOptions{})
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Equal(t, "in_review", hist[0].NewState)
}

func TestProjectRepository_UpdateConflict(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedUser(t, db, "owner", user.RoleCollaborator)
	require.NoError(t, repo.Create(ctx, newTestProject("p1", "owner", testNow), nil))

	first, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	second, err := repo.Get(ctx, "p1")
	require.NoError(t, err)

	first.Title = "First"
	first.Version = 2
	require.NoError(t, repo.Update(ctx, first, 1, nil))

	second.Title = "Second"
	second.Version = 2
	err = repo.Update(ctx, second, 1, []history.Entry{createdEntry("p1", "owner")})
	require.ErrorIs(t, err, repository.ErrConflict)

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "First", got.Title)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM project_history`).Scan(&n))
	require.Zero(t, n, "history of a rejected write must not be kept")
}

func TestProjectRepository_UpdateNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	seedUser(t, db, "owner", user.RoleCollaborator)

	p := newTestProject("missing", "owner", testNow)
	err := repo.Update(context.Background(), p, 1, nil)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_SoftDelete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedUser(t, db, "admin", user.RoleAdmin)
	require.NoError(t, repo.Create(ctx, newTestProject("p1", "admin", testNow), nil))

	entry := history.Entry{ProjectID: "p1", ActorID: "admin", Action: history.ActionDeleted, Description: "Deleted", CreatedAt: testNow}
	require.NoError(t, repo.SoftDelete(ctx, "p1", 1, []history.Entry{entry}))

	_, err := repo.Get(ctx, "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	active, err := repo.IsActive(ctx, "p1")
	require.NoError(t, err)
	require.False(t, active)

	// The history survives the delete
	hist, err := NewHistoryRepository(db).List(ctx, "p1", history.ListOptions{})
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Equal(t, history.ActionDeleted, hist[0].Action)

	err = repo.SoftDelete(ctx, "p1", 1, nil)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedUser(t, db, "u1", user.RoleCollaborator)
	seedUser(t, db, "u2", user.RoleCollaborator)

	p1 := newTestProject("p1", "u1", testNow.Add(-72*time.Hour))
	p1.Title = "Solar dryer"
	p1.State = project.StateInExecution
	p1.EstimatedEnd = date(2024, 6, 1)

	p2 := newTestProject("p2", "u2", testNow.Add(-48*time.Hour))
	p2.Title = "Water quality"
	p2.CollaboratorIDs = []string{"u1"}
	p2.ProposingArea = user.AreaTrainingCenter

	p3 := newTestProject("p3", "u2", testNow.Add(-24*time.Hour))
	p3.Title = "Drone survey"
	p3.GeneralObjectives = "Map SOLAR farms"
	p3.State = project.StateApproved
	p3.EstimatedEnd = date(2024, 6, 15)

	for _, p := range []*project.Project{p1, p2, p3} {
		require.NoError(t, repo.Create(ctx, p, nil))
	}

	ids := func(projects []project.Project) []string {
		out := make([]string, len(projects))
		for i, p := range projects {
			out[i] = p.ID
		}
		return out
	}
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		opts project.ListOptions
		want []string
	}{
		{"all newest first", project.ListOptions{}, []string{"p3", "p2", "p1"}},
		{"search is case insensitive", project.ListOptions{Search: "solar"}, []string{"p3", "p1"}},
		{"state", project.ListOptions{State: project.StateInExecution}, []string{"p1"}},
		{"area", project.ListOptions{Area: user.AreaTrainingCenter}, []string{"p2"}},
		{"responsible", project.ListOptions{ResponsibleID: "u2"}, []string{"p3", "p2"}},
		{"collaborator", project.ListOptions{CollaboratorID: "u1"}, []string{"p2"}},
		{"member", project.ListOptions{MemberID: "u1"}, []string{"p2", "p1"}},
		{"overdue excludes end today", project.ListOptions{OverdueAsOf: &today}, []string{"p1"}},
		{"created range", project.ListOptions{CreatedFrom: date(2024, 6, 13), CreatedTo: date(2024, 6, 13)}, []string{"p2"}},
		{"limit and offset", project.ListOptions{Limit: 1, Offset: 1}, []string{"p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.opts)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(got))

			n, err := repo.Count(ctx, tt.opts)
			require.NoError(t, err)
			if tt.opts.Limit == 0 {
				require.Equal(t, len(tt.want), n)
			}
		})
	}

	listed, err := repo.List(ctx, project.ListOptions{MemberID: "u1"})
	require.NoError(t, err)
	require.Equal(t, []string{"u1"}, listed[0].CollaboratorIDs)
}

func TestProjectRepository_Counts(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedUser(t, db, "u1", user.RoleCollaborator)
	seedUser(t, db, "u2", user.RoleCollaborator)

	p := newTestProject("p1", "u1", testNow)
	p.CollaboratorIDs = []string{"u2"}
	require.NoError(t, repo.Create(ctx, p, nil))

	_, err := db.ExecContext(ctx,
		`INSERT INTO comments (id, project_id, author_id, text, type, created_at, modified_at, active)
		 VALUES ('c1', 'p1', 'u1', 'hi', 'comment', ?, ?, 1), ('c2', 'p1', 'u1', 'gone', 'comment', ?, ?, 0)`,
		formatTimestamp(testNow), formatTimestamp(testNow), formatTimestamp(testNow), formatTimestamp(testNow))
	require.NoError(t, err)

	counts, err := repo.Counts(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, project.Counts{Comments: 1, Documents: 0, Collaborators: 1}, counts)
}
