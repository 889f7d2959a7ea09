package domain

import "time"

// ActivityAction represents the kind of mutation an activity entry records.
type ActivityAction string

const (
	ActivityActionCreated    ActivityAction = "CREATED"
	ActivityActionAssigned   ActivityAction = "ASSIGNED"
	ActivityActionReassigned ActivityAction = "RE_ASSIGNED"
	ActivityActionEdited     ActivityAction = "EDITED"
	ActivityActionComment    ActivityAction = "COMMENT"
)

// ActivityLogEntry is an immutable audit record of a task mutation. Entries
// are only ever inserted; the log is the sole historical record of task
// changes.
type ActivityLogEntry struct {
	ID        string
	TaskID    string
	UserID    string
	Action    ActivityAction
	Metadata  map[string]any
	CreatedAt time.Time
}
