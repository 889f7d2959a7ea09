package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/repository"
)

// SpaceService owns the space housekeeping state machine. Automatic
// transitions come from the task lifecycle (inside its transaction);
// manual overrides come from front-desk and inspection staff through this
// service.
type SpaceService struct {
	spaceRepo *repository.SpaceRepository
}

// NewSpaceService creates a new SpaceService.
func NewSpaceService(spaceRepo *repository.SpaceRepository) *SpaceService {
	return &SpaceService{spaceRepo: spaceRepo}
}

// Create provisions a new space.
func (s *SpaceService) Create(ctx context.Context, name string, spaceType domain.SpaceType, status domain.SpaceStatus, description string) (*domain.Space, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !spaceType.IsValid() {
		return nil, fmt.Errorf("%w: invalid space type %q", domain.ErrValidation, spaceType)
	}
	if status == "" {
		status = domain.SpaceStatusReady
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid space status %q", domain.ErrValidation, status)
	}

	return s.spaceRepo.Create(ctx, &domain.Space{
		Name:        name,
		Type:        spaceType,
		Status:      status,
		Description: description,
	})
}

// Get retrieves a space by ID.
func (s *SpaceService) Get(ctx context.Context, spaceID string) (*domain.Space, error) {
	return s.spaceRepo.GetByID(ctx, spaceID)
}

// List retrieves all spaces.
func (s *SpaceService) List(ctx context.Context) ([]*domain.Space, error) {
	return s.spaceRepo.List(ctx)
}

// ListByStatus retrieves spaces in the given status.
func (s *SpaceService) ListByStatus(ctx context.Context, status domain.SpaceStatus) ([]*domain.Space, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid space status %q", domain.ErrValidation, status)
	}
	return s.spaceRepo.ListByStatus(ctx, status)
}

// ManualOverride sets a space status directly, bypassing the task-driven
// mapping. A space must be INSPECTED before it can be marked READY; every
// other target is unguarded. Manual overrides write no audit entries: only
// task-level history is kept.
func (s *SpaceService) ManualOverride(ctx context.Context, spaceID string, target domain.SpaceStatus, actorID string) (*domain.Space, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: invalid space status %q", domain.ErrValidation, target)
	}

	space, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	if target == domain.SpaceStatusReady && space.Status != domain.SpaceStatusInspected {
		return nil, fmt.Errorf("%w: space must be INSPECTED before being marked READY (currently %s)",
			domain.ErrInvalidTransition, space.Status)
	}

	if err := s.spaceRepo.UpdateStatus(ctx, spaceID, target); err != nil {
		return nil, err
	}
	space.Status = target

	slog.Info("space status overridden",
		"space_id", spaceID,
		"status", target,
		"actor_id", actorID,
	)

	return space, nil
}
