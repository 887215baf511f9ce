package mocks

import (
	"context"
	"time"

	"github.com/rpggio/sena/internal/domain/comment"
	"github.com/rpggio/sena/internal/domain/document"
	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/domain/learner"
	"github.com/rpggio/sena/internal/domain/program"
	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/domain/report"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Search(ctx context.Context, query string, limit int) ([]user.User, error) {
	args := m.Called(ctx, query, limit)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActiveChecker is a mock for project.ActiveChecker.
type ActiveChecker struct {
	mock.Mock
}

func (m *ActiveChecker) AreActive(ctx context.Context, ids []string) ([]string, error) {
	args := m.Called(ctx, ids)
	if missing, ok := args.Get(0).([]string); ok {
		return missing, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, p *project.Project, entries []history.Entry) error {
	args := m.Called(ctx, p, entries)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*project.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, p *project.Project, expectedVersion int, entries []history.Entry) error {
	args := m.Called(ctx, p, expectedVersion, entries)
	return args.Error(0)
}

func (m *ProjectRepository) SoftDelete(ctx context.Context, id string, expectedVersion int, entries []history.Entry) error {
	args := m.Called(ctx, id, expectedVersion, entries)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Count(ctx context.Context, opts project.ListOptions) (int, error) {
	args := m.Called(ctx, opts)
	return args.Int(0), args.Error(1)
}

func (m *ProjectRepository) Counts(ctx context.Context, id string) (project.Counts, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(project.Counts), args.Error(1)
}

// ProjectChecker is a mock for comment.ProjectChecker and
// document.ProjectChecker.
type ProjectChecker struct {
	mock.Mock
}

func (m *ProjectChecker) IsActive(ctx context.Context, projectID string) (bool, error) {
	args := m.Called(ctx, projectID)
	return args.Bool(0), args.Error(1)
}

// HistoryRepository is a mock for history.Repository.
type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) List(ctx context.Context, projectID string, opts history.ListOptions) ([]history.Entry, error) {
	args := m.Called(ctx, projectID, opts)
	if list, ok := args.Get(0).([]history.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// CommentRepository is a mock for comment.Repository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, c *comment.Comment, entries []history.Entry) error {
	args := m.Called(ctx, c, entries)
	return args.Error(0)
}

func (m *CommentRepository) Get(ctx context.Context, id string) (*comment.Comment, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*comment.Comment); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) Update(ctx context.Context, c *comment.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CommentRepository) ListTopLevel(ctx context.Context, projectID string) ([]comment.Comment, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]comment.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CommentRepository) Replies(ctx context.Context, parentID string) ([]comment.Comment, error) {
	args := m.Called(ctx, parentID)
	if list, ok := args.Get(0).([]comment.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DocumentRepository is a mock for document.Repository.
type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, d *document.Document, entries []history.Entry) error {
	args := m.Called(ctx, d, entries)
	return args.Error(0)
}

func (m *DocumentRepository) List(ctx context.Context, projectID string) ([]document.Document, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]document.Document); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// LearnerRepository is a mock for learner.Repository.
type LearnerRepository struct {
	mock.Mock
}

func (m *LearnerRepository) ExistsActiveDocument(ctx context.Context, documentNumber string) (bool, error) {
	args := m.Called(ctx, documentNumber)
	return args.Bool(0), args.Error(1)
}

func (m *LearnerRepository) Create(ctx context.Context, l *learner.Learner) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *LearnerRepository) Get(ctx context.Context, id string) (*learner.Learner, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*learner.Learner); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LearnerRepository) List(ctx context.Context, search string) ([]learner.Learner, error) {
	args := m.Called(ctx, search)
	if list, ok := args.Get(0).([]learner.Learner); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LearnerRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *LearnerRepository) Stats(ctx context.Context) (learner.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(learner.Stats), args.Error(1)
}

// ProgramRepository is a mock for program.Repository.
type ProgramRepository struct {
	mock.Mock
}

func (m *ProgramRepository) Create(ctx context.Context, p *program.Program) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProgramRepository) Get(ctx context.Context, id string) (*program.Program, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*program.Program); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProgramRepository) List(ctx context.Context, opts program.ListOptions) ([]program.Program, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]program.Program); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ReportRepository is a mock for report.Repository.
type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) CountByState(ctx context.Context) (map[project.State]int, error) {
	args := m.Called(ctx)
	if counts, ok := args.Get(0).(map[project.State]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) TotalsByArea(ctx context.Context) (map[user.Area]report.AreaTotal, error) {
	args := m.Called(ctx)
	if totals, ok := args.Get(0).(map[user.Area]report.AreaTotal); ok {
		return totals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) TopUsers(ctx context.Context, limit int) ([]report.UserActivity, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]report.UserActivity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) MostDiscussed(ctx context.Context, limit int) ([]report.ProjectActivity, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]report.ProjectActivity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) CreationTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	args := m.Called(ctx, since)
	if list, ok := args.Get(0).([]time.Time); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
