package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/report"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func aggregates() *mocks.ReportRepository {
	repo := &mocks.ReportRepository{}
	repo.On("CountByState", mock.Anything).Return(map[project.State]int{
		project.StateProposed:    2,
		project.StateApproved:    1,
		project.StateInExecution: 3,
	}, nil)
	repo.On("TotalsByArea", mock.Anything).Return(map[user.Area]report.AreaTotal{
		user.AreaSennova:        {Count: 4, Budget: decimal.RequireFromString("4000.50")},
		user.AreaTrainingCenter: {Count: 2, Budget: decimal.RequireFromString("999.50")},
	}, nil)
	return repo
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()
	actor := user.Actor{UserID: "u1", Role: user.RoleCollaborator}
	today := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	projects := &mocks.ProjectRepository{}
	projects.On("Count", ctx, project.ListOptions{ResponsibleID: "u1"}).Return(2, nil)
	projects.On("Count", ctx, project.ListOptions{CollaboratorID: "u1"}).Return(1, nil)
	projects.On("List", ctx, project.ListOptions{Limit: 5}).Return([]project.Project{{ID: "p6"}, {ID: "p5"}}, nil)
	projects.On("List", ctx, project.ListOptions{OverdueAsOf: &today, Limit: 5}).Return([]project.Project{{ID: "p1"}}, nil)

	d, err := report.NewService(aggregates(), projects, nil).Dashboard(ctx, actor, now)
	require.NoError(t, err)
	require.Equal(t, 6, d.Total)
	require.Equal(t, 4, d.Running)
	require.Len(t, d.ByState, len(project.States))
	require.Len(t, d.ByArea, len(user.Areas))
	require.Equal(t, 2, d.Owned)
	require.Equal(t, 1, d.Collaborating)
	require.Len(t, d.Recent, 2)
	require.Len(t, d.Overdue, 1)
	projects.AssertExpectations(t)
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()
	repo := aggregates()
	start := now.AddDate(0, 0, -180)
	repo.On("TopUsers", ctx, 10).Return([]report.UserActivity{{UserID: "u1", OwnedProjects: 3}}, nil)
	repo.On("MostDiscussed", ctx, 10).Return([]report.ProjectActivity{{ProjectID: "p1", Comments: 7}}, nil)
	repo.On("CreationTimes", ctx, start).Return([]time.Time{
		start,
		start.AddDate(0, 0, 29),
		start.AddDate(0, 0, 30),
		now.Add(-time.Hour),
	}, nil)

	sum, err := report.NewService(repo, &mocks.ProjectRepository{}, nil).Summary(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 6, sum.Total)
	require.Equal(t, "5000.00", sum.TotalBudget.StringFixed(2))

	require.Len(t, sum.ByState, 3)
	require.Equal(t, project.StateProposed, sum.ByState[0].State)
	require.Equal(t, 33.3, sum.ByState[0].Percent)
	require.Equal(t, 50.0, sum.ByState[2].Percent)

	require.Len(t, sum.ByArea, 2)
	require.Equal(t, 66.7, sum.ByArea[0].Percent)

	require.Len(t, sum.Monthly, 6)
	require.Equal(t, 2, sum.Monthly[0].Count)
	require.Equal(t, 1, sum.Monthly[1].Count)
	require.Equal(t, 1, sum.Monthly[5].Count)
	require.Equal(t, start.Format("January 2006"), sum.Monthly[0].Label)
}

func TestReportService_Summary_Empty(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ReportRepository{}
	repo.On("CountByState", ctx).Return(map[project.State]int{}, nil)
	repo.On("TotalsByArea", ctx).Return(map[user.Area]report.AreaTotal{}, nil)
	repo.On("TopUsers", ctx, 10).Return([]report.UserActivity{}, nil)
	repo.On("MostDiscussed", ctx, 10).Return([]report.ProjectActivity{}, nil)
	repo.On("CreationTimes", ctx, mock.Anything).Return([]time.Time{}, nil)

	sum, err := report.NewService(repo, &mocks.ProjectRepository{}, nil).Summary(ctx, now)
	require.NoError(t, err)
	require.Zero(t, sum.Total)
	require.True(t, sum.TotalBudget.IsZero())
	require.Empty(t, sum.ByState)
}
