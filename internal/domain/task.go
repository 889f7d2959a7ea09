package domain

import "time"

// TaskStatus represents the position of a task in its lifecycle.
type TaskStatus string

const (
	TaskStatusNew                TaskStatus = "NEW"
	TaskStatusTriaged            TaskStatus = "TRIAGED"
	TaskStatusAssigned           TaskStatus = "ASSIGNED"
	TaskStatusInProgress         TaskStatus = "IN_PROGRESS"
	TaskStatusBlocked            TaskStatus = "BLOCKED"
	TaskStatusReadyForInspection TaskStatus = "READY_FOR_INSPECTION"
	TaskStatusDone               TaskStatus = "DONE"
	TaskStatusReopened           TaskStatus = "REOPENED"
	TaskStatusVerified           TaskStatus = "VERIFIED"
	TaskStatusClosed             TaskStatus = "CLOSED"
	TaskStatusCancelled          TaskStatus = "CANCELLED"
)

// IsTerminal returns true if the status permits no further transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusClosed || s == TaskStatusCancelled
}

// IsSLAClosed returns true if the task no longer accrues SLA time.
// DONE and VERIFIED are not terminal for the lifecycle (a DONE task can
// still be reopened) but they stop the SLA clock.
func (s TaskStatus) IsSLAClosed() bool {
	switch s {
	case TaskStatusDone, TaskStatusVerified, TaskStatusClosed, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNew, TaskStatusTriaged, TaskStatusAssigned,
		TaskStatusInProgress, TaskStatusBlocked, TaskStatusReadyForInspection,
		TaskStatusDone, TaskStatusReopened, TaskStatusVerified,
		TaskStatusClosed, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// taskTransitions is the forward edge set of the task state machine.
// CANCELLED is handled separately: it is reachable from any non-terminal
// state.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskStatusNew:                {TaskStatusTriaged, TaskStatusAssigned},
	TaskStatusTriaged:            {TaskStatusAssigned, TaskStatusInProgress},
	TaskStatusAssigned:           {TaskStatusTriaged, TaskStatusInProgress},
	TaskStatusInProgress:         {TaskStatusBlocked, TaskStatusReadyForInspection, TaskStatusDone},
	TaskStatusBlocked:            {TaskStatusInProgress},
	TaskStatusReadyForInspection: {TaskStatusDone, TaskStatusReopened},
	TaskStatusDone:               {TaskStatusReopened, TaskStatusVerified, TaskStatusClosed},
	TaskStatusReopened:           {TaskStatusAssigned, TaskStatusInProgress},
	TaskStatusVerified:           {TaskStatusClosed},
}

// CanTransitionTo reports whether the state machine allows moving from s
// to target.
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	if target == TaskStatusCancelled {
		return !s.IsTerminal()
	}
	for _, next := range taskTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TaskPriority represents the urgency class of a task.
type TaskPriority string

const (
	TaskPriorityP1 TaskPriority = "P1" // urgent
	TaskPriorityP2 TaskPriority = "P2" // high
	TaskPriorityP3 TaskPriority = "P3" // routine
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	return p == TaskPriorityP1 || p == TaskPriorityP2 || p == TaskPriorityP3
}

// TaskType is the department tag of a task. It doubles as the routing key
// for assignment and as the trigger condition for space side effects.
type TaskType string

const (
	TaskTypeHousekeeping TaskType = "HOUSEKEEPING"
	TaskTypeMaintenance  TaskType = "MAINTENANCE"
	TaskTypeFrontDesk    TaskType = "FRONT_DESK"
	TaskTypeWellness     TaskType = "WELLNESS"
	TaskTypeFNB          TaskType = "FNB"
	TaskTypeInspection   TaskType = "INSPECTION"
	TaskTypePreventive   TaskType = "PREVENTIVE"
	TaskTypeOther        TaskType = "OTHER"
)

// IsValid checks if the type is one of the allowed values.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeHousekeeping, TaskTypeMaintenance, TaskTypeFrontDesk,
		TaskTypeWellness, TaskTypeFNB, TaskTypeInspection,
		TaskTypePreventive, TaskTypeOther:
		return true
	default:
		return false
	}
}

// Task represents a unit of operational work tied to a location.
type Task struct {
	ID                  string
	FriendlyID          int64
	Title               string
	Description         string
	Type                TaskType
	Priority            TaskPriority
	Status              TaskStatus
	SpaceID             *string
	CustomLocation      *string
	AssigneeID          *string
	ReporterID          *string
	EquipmentID         *string
	DueAt               *time.Time
	StartedAt           *time.Time
	ReadyAt             *time.Time
	CompletedAt         *time.Time
	IsGuestImpact       bool
	ResponseTimeMinutes *int
	BlockLocationUntil  *time.Time
	ReopenCount         int
	Images              []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasSpace reports whether the task is linked to a managed space rather
// than a free-text location.
func (t *Task) HasSpace() bool {
	return t.SpaceID != nil
}

// IsAssignedTo checks if the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}
