package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PropertySnapshot holds aggregate task and space counts for the dashboard.
type PropertySnapshot struct {
	TasksByStatus   map[string]int
	TasksByPriority map[string]int
	TasksByType     map[string]int
	SpacesByStatus  map[string]int
	OpenGuestImpact int
}

// AssigneeStats holds completion counts for a single assignee.
type AssigneeStats struct {
	UserID        string
	UserName      string
	TasksDone     int
	TasksOpen     int
	TasksReopened int
}

// AnalyticsRepository serves aggregate queries for the dashboard.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// Snapshot computes property-wide task and space counts.
func (r *AnalyticsRepository) Snapshot(ctx context.Context) (*PropertySnapshot, error) {
	snapshot := &PropertySnapshot{
		TasksByStatus:   map[string]int{},
		TasksByPriority: map[string]int{},
		TasksByType:     map[string]int{},
		SpacesByStatus:  map[string]int{},
	}

	if err := r.countInto(ctx, "SELECT status, COUNT(*) FROM tasks GROUP BY status", snapshot.TasksByStatus); err != nil {
		return nil, err
	}
	if err := r.countInto(ctx, "SELECT priority, COUNT(*) FROM tasks GROUP BY priority", snapshot.TasksByPriority); err != nil {
		return nil, err
	}
	if err := r.countInto(ctx, "SELECT type, COUNT(*) FROM tasks GROUP BY type", snapshot.TasksByType); err != nil {
		return nil, err
	}
	if err := r.countInto(ctx, "SELECT status, COUNT(*) FROM spaces GROUP BY status", snapshot.SpacesByStatus); err != nil {
		return nil, err
	}

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tasks
		WHERE is_guest_impact = true
		  AND status NOT IN ('DONE', 'VERIFIED', 'CLOSED', 'CANCELLED')
	`).Scan(&snapshot.OpenGuestImpact)
	if err != nil {
		return nil, fmt.Errorf("count guest-impact tasks: %w", err)
	}

	return snapshot, nil
}

// GetAssigneeStats computes per-assignee workload counts.
func (r *AnalyticsRepository) GetAssigneeStats(ctx context.Context) ([]AssigneeStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			u.id,
			u.name,
			COUNT(CASE WHEN t.status IN ('DONE', 'VERIFIED', 'CLOSED') THEN 1 END) AS tasks_done,
			COUNT(CASE WHEN t.status IN ('ASSIGNED', 'IN_PROGRESS', 'BLOCKED', 'READY_FOR_INSPECTION') THEN 1 END) AS tasks_open,
			COALESCE(SUM(t.reopen_count), 0) AS tasks_reopened
		FROM users u
		LEFT JOIN tasks t ON t.assignee_id = u.id
		WHERE u.role = 'STAFF'
		GROUP BY u.id, u.name
		ORDER BY u.name
	`)
	if err != nil {
		return nil, fmt.Errorf("query assignee stats: %w", err)
	}
	defer rows.Close()

	var stats []AssigneeStats
	for rows.Next() {
		var s AssigneeStats
		if err := rows.Scan(&s.UserID, &s.UserName, &s.TasksDone, &s.TasksOpen, &s.TasksReopened); err != nil {
			return nil, fmt.Errorf("scan assignee stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return stats, nil
}

func (r *AnalyticsRepository) countInto(ctx context.Context, query string, dest map[string]int) error {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("scan count row: %w", err)
		}
		dest[key] = count
	}
	return rows.Err()
}
