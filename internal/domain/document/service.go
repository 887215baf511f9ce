package document

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

// Service handles document attachment.
type Service struct {
	repo     Repository
	projects ProjectChecker
	clock    clock.Clock
	logger   *zap.Logger
}

// NewService creates a new document service.
func NewService(repo Repository, projects ProjectChecker, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, projects: projects, clock: clock.OrSystem(clk), logger: logger}
}

// Upload records a document on an active project together with a
// "document_uploaded" history entry.
func (s *Service) Upload(ctx context.Context, actor user.Actor, projectID string, in validate.Input) (*Document, error) {
	f, err := Validate(in)
	if err != nil {
		return nil, err
	}

	ok, err := s.projects.IsActive(ctx, projectID)
	if err != nil {
		return nil, domainerr.Persistence("check project", err)
	}
	if !ok {
		return nil, ErrProjectNotFound
	}

	now := s.clock.Now()
	d := &Document{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		AuthorID:    actor.UserID,
		FileName:    f.FileName,
		Type:        f.Type,
		Description: f.Description,
		Version:     f.Version,
		SizeBytes:   f.SizeBytes,
		UploadedAt:  now,
		Active:      true,
	}
	entry := history.Entry{
		ProjectID:   projectID,
		ActorID:     actor.UserID,
		Action:      history.ActionDocumentUploaded,
		Description: fmt.Sprintf("Uploaded %s (version %s)", d.FileName, d.Version),
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, d, []history.Entry{entry}); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error("upload document failed", zap.String("project_id", projectID), zap.Error(err))
		return nil, domainerr.Persistence("create document", err)
	}

	s.logger.Info("document uploaded",
		zap.String("document_id", d.ID),
		zap.String("project_id", projectID),
		zap.Int64("size_bytes", d.SizeBytes),
	)
	return d, nil
}

// List returns the active documents of a project, newest first.
func (s *Service) List(ctx context.Context, projectID string) ([]Document, error) {
	docs, err := s.repo.List(ctx, projectID)
	if err != nil {
		return nil, domainerr.Persistence("list documents", err)
	}
	return docs, nil
}
