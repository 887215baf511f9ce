package user

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

// DefaultSearchLimit bounds user search results.
const DefaultSearchLimit = 10

// Service handles user operations.
type Service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, clk clock.Clock, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, clock: clock.OrSystem(clk), logger: logger}
}

// Create registers a new active user.
func (s *Service) Create(ctx context.Context, in validate.Input) (*User, error) {
	f, err := Validate(in)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     f.Username,
		FullName:     f.FullName,
		Role:         f.Role,
		Area:         f.Area,
		Phone:        f.Phone,
		Active:       true,
		RegisteredAt: s.clock.Now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, validate.FieldError("username", "A user with this username already exists.")
		}
		s.logger.Error("create user failed", zap.String("username", u.Username), zap.Error(err))
		return nil, domainerr.Persistence("create user", err)
	}
	return u, nil
}

// Get fetches a user by ID, active or not.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, domainerr.Persistence("get user", err)
	}
	return u, nil
}

// Search returns active users whose username contains query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]User, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	users, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, domainerr.Persistence("search users", err)
	}
	return users, nil
}

// Deactivate marks a user inactive. Only administrators may do this.
func (s *Service) Deactivate(ctx context.Context, actor Actor, id string) error {
	if actor.Role != RoleAdmin {
		return ErrNotAdmin
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("deactivate user failed", zap.String("user_id", id), zap.Error(err))
		return domainerr.Persistence("deactivate user", err)
	}
	s.logger.Info("user deactivated", zap.String("user_id", id), zap.String("by", actor.UserID))
	return nil
}

// ResolveActor returns the acting identity of an active user.
func (s *Service) ResolveActor(ctx context.Context, id string) (Actor, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return Actor{}, err
	}
	if !u.Active {
		return Actor{}, ErrUserNotFound
	}
	return u.Actor(), nil
}
