package domain

import "time"

// SpaceStatus represents the housekeeping state of a space. There is no
// initial or terminal state: a space cycles continuously through cleaning
// rounds.
type SpaceStatus string

const (
	SpaceStatusDirty        SpaceStatus = "DIRTY"
	SpaceStatusCleaning     SpaceStatus = "CLEANING"
	SpaceStatusInspected    SpaceStatus = "INSPECTED"
	SpaceStatusReady        SpaceStatus = "READY"
	SpaceStatusOccupied     SpaceStatus = "OCCUPIED"
	SpaceStatusOutOfOrder   SpaceStatus = "OUT_OF_ORDER"
	SpaceStatusOutOfService SpaceStatus = "OUT_OF_SERVICE"
)

// IsValid checks if the status is one of the allowed values.
func (s SpaceStatus) IsValid() bool {
	switch s {
	case SpaceStatusDirty, SpaceStatusCleaning, SpaceStatusInspected,
		SpaceStatusReady, SpaceStatusOccupied, SpaceStatusOutOfOrder,
		SpaceStatusOutOfService:
		return true
	default:
		return false
	}
}

// SpaceType classifies a physical location. It is a display attribute
// only; the state machine ignores it.
type SpaceType string

const (
	SpaceTypeRoom        SpaceType = "ROOM"
	SpaceTypePublicArea  SpaceType = "PUBLIC_AREA"
	SpaceTypeOutdoor     SpaceType = "OUTDOOR"
	SpaceTypeBackOfHouse SpaceType = "BACK_OF_HOUSE"
	SpaceTypeWellness    SpaceType = "WELLNESS"
	SpaceTypeService     SpaceType = "SERVICE"
)

// IsValid checks if the type is one of the allowed values.
func (t SpaceType) IsValid() bool {
	switch t {
	case SpaceTypeRoom, SpaceTypePublicArea, SpaceTypeOutdoor,
		SpaceTypeBackOfHouse, SpaceTypeWellness, SpaceTypeService:
		return true
	default:
		return false
	}
}

// Space represents a physical location in the property.
type Space struct {
	ID          string
	Name        string
	Type        SpaceType
	Status      SpaceStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SpaceEffectForTaskStatus maps a housekeeping task status to the space
// status it induces. The mapping only applies to housekeeping tasks with a
// linked space; callers are responsible for that check.
func SpaceEffectForTaskStatus(status TaskStatus) (SpaceStatus, bool) {
	switch status {
	case TaskStatusAssigned, TaskStatusInProgress:
		return SpaceStatusCleaning, true
	case TaskStatusReadyForInspection:
		return SpaceStatusReady, true
	case TaskStatusDone:
		return SpaceStatusInspected, true
	case TaskStatusReopened:
		return SpaceStatusDirty, true
	default:
		return "", false
	}
}

// Equipment represents a physical asset installed in a space.
type Equipment struct {
	ID        string
	Name      string
	SpaceID   *string
	CreatedAt time.Time
}
