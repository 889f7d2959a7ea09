package dto

import "time"

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Type                string     `json:"type"`
	Priority            string     `json:"priority"`
	SpaceID             *string    `json:"space_id,omitempty"`
	CustomLocation      *string    `json:"custom_location,omitempty"`
	AssigneeID          *string    `json:"assignee_id,omitempty"`
	ReporterID          *string    `json:"reporter_id,omitempty"`
	EquipmentID         *string    `json:"equipment_id,omitempty"`
	DueAt               *time.Time `json:"due_at,omitempty"`
	IsGuestImpact       bool       `json:"is_guest_impact,omitempty"`
	ResponseTimeMinutes *int       `json:"response_time_minutes,omitempty"`
	BlockLocationUntil  *time.Time `json:"block_location_until,omitempty"`
	Images              []string   `json:"images,omitempty"`
}

// UpdateTaskRequest represents the request body for PATCH /tasks/:id.
type UpdateTaskRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Priority      *string    `json:"priority,omitempty"`
	Status        *string    `json:"status,omitempty"`
	AssigneeID    *string    `json:"assignee_id,omitempty"`
	DueAt         *time.Time `json:"due_at,omitempty"`
	IsGuestImpact *bool      `json:"is_guest_impact,omitempty"`
	Images        []string   `json:"images,omitempty"`
}

// CommentTaskRequest represents the request body for POST /tasks/:id/comments.
type CommentTaskRequest struct {
	Text string `json:"text"`
}

// CreateSpaceRequest represents the request body for POST /spaces.
type CreateSpaceRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// OverrideSpaceStatusRequest represents the request body for PATCH /spaces/:id/status.
type OverrideSpaceStatusRequest struct {
	Status string `json:"status"`
}

// SetShiftRequest represents the request body for PATCH /users/:id/shift.
type SetShiftRequest struct {
	IsOnShift bool `json:"is_on_shift"`
}
