package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/domain/history"
	"github.com/rpggio/sena/internal/domain/user"
	"github.com/rpggio/sena/internal/repository"
	"github.com/rpggio/sena/internal/validate"
	"go.uber.org/zap"
)

// MsgUserGone is reported when a referenced user disappears between
// validation and the write.
const MsgUserGone = "A referenced user no longer exists."

// Service handles project business logic.
type Service struct {
	repo      Repository
	history   history.Repository
	validator *Validator
	clock     clock.Clock
	strict    bool
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithStrictTransitions toggles enforcement of the transition table.
// Strict mode is on by default.
func WithStrictTransitions(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// NewService creates a new project service.
func NewService(
	repo Repository,
	hist history.Repository,
	users ActiveChecker,
	clk clock.Clock,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		repo:      repo,
		history:   hist,
		validator: NewValidator(users),
		clock:     clock.OrSystem(clk),
		strict:    true,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validator returns the validator used by the service.
func (s *Service) Validator() *Validator {
	return s.validator
}

// Create validates a creation form and stores a new project in the
// proposed state along with its "created" history entry.
func (s *Service) Create(ctx context.Context, actor user.Actor, in validate.Input) (*Project, error) {
	f, err := s.validator.ValidateCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p := &Project{
		ID:                    uuid.NewString(),
		Title:                 f.Title,
		Description:           f.Description,
		ProposingArea:         f.ProposingArea,
		ResponsibleID:         f.ResponsibleID,
		CollaboratorIDs:       f.CollaboratorIDs,
		GeneralObjectives:     f.GeneralObjectives,
		SpecificObjectives:    f.SpecificObjectives,
		Scope:                 f.Scope,
		Limitations:           f.Limitations,
		EstimatedBudget:       f.EstimatedBudget,
		TentativeSchedule:     f.TentativeSchedule,
		RequiredResources:     f.RequiredResources,
		ExpectedBeneficiaries: f.ExpectedBeneficiaries,
		SuccessIndicators:     f.SuccessIndicators,
		State:                 StateProposed,
		CompletionPercentage:  0,
		CreatedAt:             now,
		EstimatedStart:        f.EstimatedStart,
		EstimatedEnd:          f.EstimatedEnd,
		Active:                true,
		Version:               1,
	}

	entry := history.Entry{
		ProjectID:   p.ID,
		ActorID:     actor.UserID,
		Action:      history.ActionCreated,
		Description: fmt.Sprintf("Project %q created", p.Title),
		NewState:    string(p.State),
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, p, []history.Entry{entry}); err != nil {
		return nil, s.writeError("create project", p.ID, err)
	}

	s.logger.Info("project created",
		zap.String("project_id", p.ID),
		zap.String("actor", actor.UserID),
	)
	return p, nil
}

// Edit applies a partial form over the current values of a project. The
// version is bumped once when anything changed, and the history entries
// are committed with the row. Nothing is written when nothing changed.
func (s *Service) Edit(ctx context.Context, actor user.Actor, id string, in validate.Input) (*Project, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEdit(actor, current) {
		return nil, ErrEditNotAllowed
	}

	merged := current.EditFields().Input()
	for k, v := range in {
		merged[k] = v
	}
	f, err := s.validator.ValidateEdit(ctx, merged, current.CollaboratorIDs)
	if err != nil {
		return nil, err
	}

	updated := *current
	f.apply(&updated)
	changed := changedFields(current, &updated)
	if len(changed) == 0 {
		return current, nil
	}

	if updated.State != current.State {
		if err := ValidateTransition(current.State, updated.State, s.strict); err != nil {
			return nil, err
		}
	}
	updated.Version = current.Version + 1

	now := s.clock.Now()
	var entries []history.Entry
	if updated.State != current.State {
		entries = append(entries, history.Entry{
			ProjectID:     id,
			ActorID:       actor.UserID,
			Action:        history.ActionStateChanged,
			Description:   fmt.Sprintf("State changed from %s to %s", current.State.Label(), updated.State.Label()),
			PreviousState: string(current.State),
			NewState:      string(updated.State),
			CreatedAt:     now,
		})
	}
	entries = append(entries, history.Entry{
		ProjectID:   id,
		ActorID:     actor.UserID,
		Action:      history.ActionUpdated,
		Description: "Updated fields: " + strings.Join(changed, ", "),
		CreatedAt:   now,
	})

	if err := s.repo.Update(ctx, &updated, current.Version, entries); err != nil {
		return nil, s.writeError("update project", id, err)
	}

	s.logger.Info("project updated",
		zap.String("project_id", id),
		zap.String("actor", actor.UserID),
		zap.Strings("fields", changed),
		zap.Int("version", updated.Version),
	)
	return &updated, nil
}

// Delete soft-deletes a project. Only managers may delete.
func (s *Service) Delete(ctx context.Context, actor user.Actor, id string) error {
	if !actor.IsManager() {
		return ErrDeleteNotAllowed
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	entry := history.Entry{
		ProjectID:   id,
		ActorID:     actor.UserID,
		Action:      history.ActionDeleted,
		Description: fmt.Sprintf("Project %q deleted", current.Title),
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.SoftDelete(ctx, id, current.Version, []history.Entry{entry}); err != nil {
		return s.writeError("delete project", id, err)
	}

	s.logger.Info("project deleted", zap.String("project_id", id), zap.String("actor", actor.UserID))
	return nil
}

// Get fetches an active project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, domainerr.Persistence("get project", err)
	}
	return p, nil
}

// List returns active projects matching opts, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}
	projects, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, domainerr.Persistence("list projects", err)
	}
	return projects, nil
}

// Count returns the number of active projects matching opts, ignoring
// Limit and Offset.
func (s *Service) Count(ctx context.Context, opts ListOptions) (int, error) {
	n, err := s.repo.Count(ctx, opts)
	if err != nil {
		return 0, domainerr.Persistence("count projects", err)
	}
	return n, nil
}

// Overdue returns running projects whose estimated end has passed.
func (s *Service) Overdue(ctx context.Context, limit int) ([]Project, error) {
	today := clock.Today(s.clock.Now())
	return s.List(ctx, ListOptions{OverdueAsOf: &today, Limit: limit})
}

// Stats summarizes a project's related rows and schedule.
func (s *Service) Stats(ctx context.Context, id string) (*Stats, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.Counts(ctx, id)
	if err != nil {
		return nil, domainerr.Persistence("count project relations", err)
	}

	now := s.clock.Now()
	return &Stats{
		Counts:               counts,
		DaysRemaining:        p.DaysRemaining(now),
		Overdue:              p.IsOverdue(now),
		CompletionPercentage: p.CompletionPercentage,
	}, nil
}

// History returns the latest entries of a project, newest first.
func (s *Service) History(ctx context.Context, id string, limit int) ([]history.Entry, error) {
	if limit <= 0 {
		limit = history.DefaultLimit
	}
	entries, err := s.history.List(ctx, id, history.ListOptions{Limit: limit})
	if err != nil {
		return nil, domainerr.Persistence("list project history", err)
	}
	return entries, nil
}

// CanEdit reports whether actor may edit p.
func CanEdit(actor user.Actor, p *Project) bool {
	return actor.IsManager() || (actor.UserID != "" && actor.UserID == p.ResponsibleID)
}

func (s *Service) writeError(op, id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProjectNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrProjectConflict
	case errors.Is(err, repository.ErrForeignKeyViolation):
		verrs := &validate.Errors{}
		verrs.AddNonField(MsgUserGone)
		return verrs
	}
	s.logger.Error(op+" failed", zap.String("project_id", id), zap.Error(err))
	return domainerr.Persistence(op, err)
}
