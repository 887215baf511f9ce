package learner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository"
	"github.com/rpggio/sena/internal/validate"
	"go.uber.org/zap"
)

// Service handles learner operations.
type Service struct {
	repo      Repository
	validator *Validator
	clock     clock.Clock
	logger    *zap.Logger
}

// NewService creates a new learner service.
func NewService(repo Repository, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	clk = clock.OrSystem(clk)
	return &Service{repo: repo, validator: NewValidator(repo, clk), clock: clk, logger: logger}
}

// Create registers a learner. A duplicate document that slips past
// validation is reported as the same field error.
func (s *Service) Create(ctx context.Context, in validate.Input) (*Learner, error) {
	f, err := s.validator.Validate(ctx, in)
	if err != nil {
		return nil, err
	}

	l := &Learner{
		ID:             uuid.NewString(),
		DocumentNumber: f.DocumentNumber,
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		Program:        f.Program,
		Phone:          f.Phone,
		Email:          f.Email,
		BirthDate:      f.BirthDate,
		City:           f.City,
		RegisteredAt:   s.clock.Now(),
		Active:         true,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, validate.FieldError(FieldDocument, MsgDuplicateDocument)
		}
		s.logger.Error("create learner failed", zap.Error(err))
		return nil, domainerr.Persistence("create learner", err)
	}

	s.logger.Info("learner registered", zap.String("learner_id", l.ID))
	return l, nil
}

// Get fetches an active learner.
func (s *Service) Get(ctx context.Context, id string) (*Learner, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLearnerNotFound
		}
		return nil, domainerr.Persistence("get learner", err)
	}
	return l, nil
}

// List returns active learners whose names, document or program contain
// search, ordered by last name then first name.
func (s *Service) List(ctx context.Context, search string) ([]Learner, error) {
	learners, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, domainerr.Persistence("list learners", err)
	}
	return learners, nil
}

// Delete soft-deletes a learner, freeing the document number.
func (s *Service) Delete(ctx context.Context, actor user.Actor, id string) error {
	if !actor.IsManager() {
		return user.ErrNotManager
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLearnerNotFound
		}
		s.logger.Error("delete learner failed", zap.String("learner_id", id), zap.Error(err))
		return domainerr.Persistence("delete learner", err)
	}
	s.logger.Info("learner deleted", zap.String("learner_id", id), zap.String("actor", actor.UserID))
	return nil
}

// Stats counts active learners and the programs they are in.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return Stats{}, domainerr.Persistence("learner stats", err)
	}
	return st, nil
}
