package dto

import (
	"time"

	"github.com/staykeep/staykeep/internal/domain"
	"github.com/staykeep/staykeep/internal/repository"
	"github.com/staykeep/staykeep/internal/service"
)

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID                  string     `json:"id"`
	FriendlyID          int64      `json:"friendly_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Type                string     `json:"type"`
	Priority            string     `json:"priority"`
	Status              string     `json:"status"`
	SpaceID             *string    `json:"space_id"`
	CustomLocation      *string    `json:"custom_location"`
	AssigneeID          *string    `json:"assignee_id"`
	ReporterID          *string    `json:"reporter_id"`
	EquipmentID         *string    `json:"equipment_id"`
	DueAt               *time.Time `json:"due_at"`
	StartedAt           *time.Time `json:"started_at"`
	ReadyAt             *time.Time `json:"ready_at"`
	CompletedAt         *time.Time `json:"completed_at"`
	IsGuestImpact       bool       `json:"is_guest_impact"`
	ResponseTimeMinutes *int       `json:"response_time_minutes"`
	BlockLocationUntil  *time.Time `json:"block_location_until"`
	ReopenCount         int        `json:"reopen_count"`
	Images              []string   `json:"images"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewTaskResponse converts a domain task to its API representation.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:                  task.ID,
		FriendlyID:          task.FriendlyID,
		Title:               task.Title,
		Description:         task.Description,
		Type:                string(task.Type),
		Priority:            string(task.Priority),
		Status:              string(task.Status),
		SpaceID:             task.SpaceID,
		CustomLocation:      task.CustomLocation,
		AssigneeID:          task.AssigneeID,
		ReporterID:          task.ReporterID,
		EquipmentID:         task.EquipmentID,
		DueAt:               task.DueAt,
		StartedAt:           task.StartedAt,
		ReadyAt:             task.ReadyAt,
		CompletedAt:         task.CompletedAt,
		IsGuestImpact:       task.IsGuestImpact,
		ResponseTimeMinutes: task.ResponseTimeMinutes,
		BlockLocationUntil:  task.BlockLocationUntil,
		ReopenCount:         task.ReopenCount,
		Images:              task.Images,
		CreatedAt:           task.CreatedAt,
		UpdatedAt:           task.UpdatedAt,
	}
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// ActivityEntryResponse represents an audit entry in API responses.
type ActivityEntryResponse struct {
	ID        string         `json:"id"`
	TaskID    string         `json:"task_id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewActivityEntryResponse converts an audit entry to its API representation.
func NewActivityEntryResponse(entry *domain.ActivityLogEntry) ActivityEntryResponse {
	return ActivityEntryResponse{
		ID:        entry.ID,
		TaskID:    entry.TaskID,
		UserID:    entry.UserID,
		Action:    string(entry.Action),
		Metadata:  entry.Metadata,
		CreatedAt: entry.CreatedAt,
	}
}

// SLAResponse represents the on-demand SLA evaluation of a task.
type SLAResponse struct {
	Status           string     `json:"status"`
	DueAt            *time.Time `json:"due_at,omitempty"`
	RemainingSeconds *int64     `json:"remaining_seconds,omitempty"`
}

// NewSLAResponse converts an SLA result to its API representation.
func NewSLAResponse(result service.SLAResult) SLAResponse {
	resp := SLAResponse{Status: string(result.Status)}
	if result.DueAt != nil {
		resp.DueAt = result.DueAt
		seconds := int64(result.Remaining.Seconds())
		resp.RemainingSeconds = &seconds
	}
	return resp
}

// SpaceResponse represents a space in API responses.
type SpaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSpaceResponse converts a domain space to its API representation.
func NewSpaceResponse(space *domain.Space) SpaceResponse {
	return SpaceResponse{
		ID:          space.ID,
		Name:        space.Name,
		Type:        string(space.Type),
		Status:      string(space.Status),
		Description: space.Description,
		CreatedAt:   space.CreatedAt,
		UpdatedAt:   space.UpdatedAt,
	}
}

// UserResponse represents a user in API responses. The token is never
// echoed back.
type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	Role       string  `json:"role"`
	Department *string `json:"department"`
	IsOnShift  bool    `json:"is_on_shift"`
}

// NewUserResponse converts a domain user to its API representation.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		IsOnShift: user.IsOnShift,
	}
	if user.Department != nil {
		department := string(*user.Department)
		resp.Department = &department
	}
	return resp
}

// AnalyticsResponse represents the dashboard analytics payload.
type AnalyticsResponse struct {
	TasksByStatus   map[string]int          `json:"tasks_by_status"`
	TasksByPriority map[string]int          `json:"tasks_by_priority"`
	TasksByType     map[string]int          `json:"tasks_by_type"`
	SpacesByStatus  map[string]int          `json:"spaces_by_status"`
	OpenGuestImpact int                     `json:"open_guest_impact"`
	Assignees       []AssigneeStatsResponse `json:"assignees"`
}

// AssigneeStatsResponse represents workload counts for one staff member.
type AssigneeStatsResponse struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	TasksDone     int    `json:"tasks_done"`
	TasksOpen     int    `json:"tasks_open"`
	TasksReopened int    `json:"tasks_reopened"`
}

// NewAnalyticsResponse assembles the analytics payload.
func NewAnalyticsResponse(snapshot *repository.PropertySnapshot, assignees []repository.AssigneeStats) AnalyticsResponse {
	resp := AnalyticsResponse{
		TasksByStatus:   snapshot.TasksByStatus,
		TasksByPriority: snapshot.TasksByPriority,
		TasksByType:     snapshot.TasksByType,
		SpacesByStatus:  snapshot.SpacesByStatus,
		OpenGuestImpact: snapshot.OpenGuestImpact,
		Assignees:       []AssigneeStatsResponse{},
	}
	for _, a := range assignees {
		resp.Assignees = append(resp.Assignees, AssigneeStatsResponse{
			UserID:        a.UserID,
			UserName:      a.UserName,
			TasksDone:     a.TasksDone,
			TasksOpen:     a.TasksOpen,
			TasksReopened: a.TasksReopened,
		})
	}
	return resp
}
