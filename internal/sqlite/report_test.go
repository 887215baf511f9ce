package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_Aggregates(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	repo := NewReportRepository(db)
	ctx := context.Background()
	seedUser(t, db, "u1", user.RoleCollaborator)
	seedUser(t, db, "u2", user.RoleCollaborator)

	p1 := newTestProject("p1", "u1", testNow.Add(-40*24*time.Hour))
	p1.EstimatedBudget = decimal.RequireFromString("0.10")
	p2 := newTestProject("p2", "u1", testNow.Add(-10*24*time.Hour))
	p2.EstimatedBudget = decimal.RequireFromString("0.20")
	p2.State = project.StateApproved
	p3 := newTestProject("p3", "u2", testNow)
	p3.ProposingArea = user.AreaGeneralOffice
	p4 := newTestProject("p4", "u2", testNow)
	for _, p := range []*project.Project{p1, p2, p3, p4} {
		require.NoError(t, projects.Create(ctx, p, nil))
	}
	require.NoError(t, projects.SoftDelete(ctx, "p4", 1, nil))

	_, err := db.ExecContext(ctx,
		`INSERT INTO comments (id, project_id, author_id, text, type, created_at, modified_at)
		 VALUES ('c1', 'p3', 'u2', 'a', 'comment', ?, ?), ('c2', 'p3', 'u2', 'b', 'comment', ?, ?)`,
		formatTimestamp(testNow), formatTimestamp(testNow), formatTimestamp(testNow), formatTimestamp(testNow))
	require.NoError(t, err)

	byState, err := repo.CountByState(ctx)
	require.NoError(t, err)
	require.Equal(t, map[project.State]int{project.StateProposed: 2, project.StateApproved: 1}, byState)

	byArea, err := repo.TotalsByArea(ctx)
	require.NoError(t, err)
	require.Len(t, byArea, 2)
	require.Equal(t, 2, byArea[user.AreaSennova].Count)
	require.Equal(t, "0.30", byArea[user.AreaSennova].Budget.StringFixed(2))
	require.Equal(t, 1, byArea[user.AreaGeneralOffice].Count)

	top, err := repo.TopUsers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, "u1", top[0].UserID)
	require.Equal(t, 2, top[0].OwnedProjects)
	require.Equal(t, 1, top[1].OwnedProjects)
	require.Equal(t, 2, top[1].Comments)

	discussed, err := repo.MostDiscussed(ctx, 2)
	require.NoError(t, err)
	require.Len(t, discussed, 2)
	require.Equal(t, "p3", discussed[0].ProjectID)
	require.Equal(t, 2, discussed[0].Comments)
	require.Equal(t, "p2", discussed[1].ProjectID)

	times, err := repo.CreationTimes(ctx, testNow.Add(-30*24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, []time.Time{p2.CreatedAt, p3.CreatedAt}, times)
}
