package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository"
	"github.com/rpggio/sena/internal/validate"
	"go.uber.org/zap"
)

// Service handles comment threading.
type Service struct {
	repo     Repository
	projects ProjectChecker
	clock    clock.Clock
	logger   *zap.Logger
}

// NewService creates a new comment service.
func NewService(repo Repository, projects ProjectChecker, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, projects: projects, clock: clock.OrSystem(clk), logger: logger}
}

// Add posts a top-level comment on an active project and records a
// "comment_added" history entry with it.
func (s *Service) Add(ctx context.Context, actor user.Actor, projectID string, in validate.Input) (*Comment, error) {
	f, err := Validate(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProject(ctx, projectID); err != nil {
		return nil, err
	}

	c := s.newComment(actor, projectID, f)
	entry := history.Entry{
		ProjectID:   projectID,
		ActorID:     actor.UserID,
		Action:      history.ActionCommentAdded,
		Description: fmt.Sprintf("Added a %s", c.Type),
		CreatedAt:   c.CreatedAt,
	}
	if err := s.repo.Create(ctx, c, []history.Entry{entry}); err != nil {
		return nil, s.writeError("create comment", err)
	}

	s.logger.Info("comment added",
		zap.String("comment_id", c.ID),
		zap.String("project_id", projectID),
		zap.String("actor", actor.UserID),
	)
	return c, nil
}

// Reply answers an active comment. The reply joins the parent's project;
// a reply to a reply attaches to the top-level comment of the thread.
func (s *Service) Reply(ctx context.Context, actor user.Actor, parentID string, in validate.Input) (*Comment, error) {
	f, err := Validate(in)
	if err != nil {
		return nil, err
	}

	parent, err := s.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.IsReply() {
		parent, err = s.Get(ctx, *parent.ParentID)
		if err != nil {
			return nil, err
		}
	}
	if err := s.ensureProject(ctx, parent.ProjectID); err != nil {
		return nil, err
	}

	c := s.newComment(actor, parent.ProjectID, f)
	c.ParentID = &parent.ID
	if err := s.repo.Create(ctx, c, nil); err != nil {
		return nil, s.writeError("create reply", err)
	}

	s.logger.Info("reply added",
		zap.String("comment_id", c.ID),
		zap.String("parent_id", parent.ID),
		zap.String("actor", actor.UserID),
	)
	return c, nil
}

// Edit changes a comment. Only the author may edit, and only within
// EditWindow of creation.
func (s *Service) Edit(ctx context.Context, actor user.Actor, id string, in validate.Input) (*Comment, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if !current.CanEdit(actor.UserID, now) {
		return nil, ErrEditNotAllowed
	}

	merged := (&Fields{Text: current.Text, Type: current.Type, Rating: current.Rating}).Input()
	for k, v := range in {
		merged[k] = v
	}
	f, err := Validate(merged)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.Text = f.Text
	updated.Type = f.Type
	updated.Rating = f.Rating
	updated.ModifiedAt = now
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, s.writeError("update comment", err)
	}
	return &updated, nil
}

// Get fetches an active comment.
func (s *Service) Get(ctx context.Context, id string) (*Comment, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, domainerr.Persistence("get comment", err)
	}
	return c, nil
}

// ListTopLevel returns the active top-level comments of a project, newest
// first.
func (s *Service) ListTopLevel(ctx context.Context, projectID string) ([]Comment, error) {
	comments, err := s.repo.ListTopLevel(ctx, projectID)
	if err != nil {
		return nil, domainerr.Persistence("list comments", err)
	}
	return comments, nil
}

// Replies returns the active replies of a comment, oldest first.
func (s *Service) Replies(ctx context.Context, commentID string) ([]Comment, error) {
	replies, err := s.repo.Replies(ctx, commentID)
	if err != nil {
		return nil, domainerr.Persistence("list replies", err)
	}
	return replies, nil
}

func (s *Service) newComment(actor user.Actor, projectID string, f *Fields) *Comment {
	now := s.clock.Now()
	return &Comment{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		AuthorID:   actor.UserID,
		Text:       f.Text,
		Type:       f.Type,
		Rating:     f.Rating,
		CreatedAt:  now,
		ModifiedAt: now,
		Active:     true,
	}
}

func (s *Service) ensureProject(ctx context.Context, projectID string) error {
	ok, err := s.projects.IsActive(ctx, projectID)
	if err != nil {
		return domainerr.Persistence("check project", err)
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}

func (s *Service) writeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrCommentNotFound
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return ErrProjectNotFound
	}
	s.logger.Error(op+" failed", zap.Error(err))
	return domainerr.Persistence(op, err)
}
