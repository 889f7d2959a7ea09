package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/staykeep/staykeep/internal/domain"
)

// CreateTaskInput holds the fields for creating a task.
type CreateTaskInput struct {
	Title               string
	Description         string
	Type                domain.TaskType
	Priority            domain.TaskPriority
	SpaceID             *string
	CustomLocation      *string
	AssigneeID          *string
	ReporterID          *string
	EquipmentID         *string
	DueAt               *time.Time
	IsGuestImpact       bool
	ResponseTimeMinutes *int
	BlockLocationUntil  *time.Time
	Images              []string
}

// Validate checks required fields, enum values, and the location
// invariant: exactly one of SpaceID and CustomLocation must be set.
func (in *CreateTaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !in.Type.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidType, in.Type)
	}
	if !in.Priority.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, in.Priority)
	}

	hasSpace := in.SpaceID != nil && *in.SpaceID != ""
	hasCustom := in.CustomLocation != nil && *in.CustomLocation != ""
	if hasSpace == hasCustom {
		return domain.ErrInvalidLocation
	}

	return nil
}

// TaskPatch holds the fields a Transition call may change. Nil fields are
// left untouched.
type TaskPatch struct {
	Title         *string
	Description   *string
	Priority      *domain.TaskPriority
	Status        *domain.TaskStatus
	AssigneeID    *string
	DueAt         *time.Time
	IsGuestImpact *bool
	Images        []string
}

// Validate checks the enum values carried by the patch.
func (p *TaskPatch) Validate() error {
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *p.Status)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidPriority, *p.Priority)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}
	return nil
}
