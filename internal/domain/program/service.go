package program

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpggio/sena/internal/clock"
	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/repository"
	"github.com/rpggio/sena/internal/validate"
	"go.uber.org/zap"
)

// Service handles program operations.
type Service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

// NewService creates a new program service.
func NewService(repo Repository, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, clock: clock.OrSystem(clk), logger: logger}
}

// Create registers a program. A taken code is reported on the code field.
func (s *Service) Create(ctx context.Context, in validate.Input) (*Program, error) {
	f, err := Validate(in)
	if err != nil {
		return nil, err
	}

	createdOn := clock.Today(s.clock.Now())
	if f.CreatedOn != nil {
		createdOn = *f.CreatedOn
	}
	p := &Program{
		ID:                    uuid.NewString(),
		Code:                  f.Code,
		Name:                  f.Name,
		Level:                 f.Level,
		Modality:              f.Modality,
		DurationMonths:        f.DurationMonths,
		DurationHours:         f.DurationHours,
		Description:           f.Description,
		Competencies:          f.Competencies,
		GraduateProfile:       f.GraduateProfile,
		AdmissionRequirements: f.AdmissionRequirements,
		TrainingCenter:        f.TrainingCenter,
		Regional:              f.Regional,
		Status:                f.Status,
		CreatedOn:             createdOn,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, validate.FieldError(FieldCode, MsgDuplicateCode)
		}
		s.logger.Error("create program failed", zap.String("code", p.Code), zap.Error(err))
		return nil, domainerr.Persistence("create program", err)
	}

	s.logger.Info("program created", zap.String("program_id", p.ID), zap.String("code", p.Code))
	return p, nil
}

// Get fetches a program by ID.
func (s *Service) Get(ctx context.Context, id string) (*Program, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, domainerr.Persistence("get program", err)
	}
	return p, nil
}

// List returns programs matching opts, ordered by name.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Program, error) {
	programs, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, domainerr.Persistence("list programs", err)
	}
	return programs, nil
}
