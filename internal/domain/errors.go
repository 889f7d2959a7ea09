package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskConflict      = errors.New("task was modified concurrently")
	ErrInvalidTransition = errors.New("invalid status transition")

	// Space errors
	ErrSpaceNotFound = errors.New("space not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserPending  = errors.New("user account is pending approval")
	ErrInvalidToken = errors.New("invalid authentication token")
	ErrNoActor      = errors.New("no actor available for audit entry")

	// Equipment errors
	ErrEquipmentNotFound = errors.New("equipment not found")

	// Validation errors
	ErrValidation      = errors.New("validation failed")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidType     = errors.New("invalid task type")
	ErrInvalidLocation = errors.New("exactly one of space or custom location is required")
	ErrEmptyComment    = errors.New("comment text is required")
)
