package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/staykeep/staykeep/internal/domain"
)

// TaskListFilters holds the supported filters for task listing.
type TaskListFilters struct {
	AssigneeID         *string             // tasks assigned to a user
	ReporterID         *string             // tasks reported by a user
	ReporterDepartment *domain.TaskType    // tasks whose reporter belongs to a department
	Statuses           []domain.TaskStatus // optional status filter
	Types              []domain.TaskType   // optional type filter
	GuestImpactOnly    bool                // only guest-impacting tasks
	Limit              int                 // 0 means no limit
	Offset             int
}

// List retrieves tasks matching the filters, newest first.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, error) {
	qb := psql.Select(prefixColumns("t", taskColumns)...).From("tasks t")

	if filters.AssigneeID != nil {
		qb = qb.Where(sq.Eq{"t.assignee_id": *filters.AssigneeID})
	}
	if filters.ReporterID != nil {
		qb = qb.Where(sq.Eq{"t.reporter_id": *filters.ReporterID})
	}
	if filters.ReporterDepartment != nil {
		qb = qb.
			Join("users reporter ON reporter.id = t.reporter_id").
			Where(sq.Eq{"reporter.department": *filters.ReporterDepartment})
	}
	if len(filters.Statuses) > 0 {
		qb = qb.Where(sq.Eq{"t.status": filters.Statuses})
	}
	if len(filters.Types) > 0 {
		qb = qb.Where(sq.Eq{"t.type": filters.Types})
	}
	if filters.GuestImpactOnly {
		qb = qb.Where(sq.Eq{"t.is_guest_impact": true})
	}

	qb = qb.OrderBy("t.created_at DESC")

	if filters.Limit > 0 {
		qb = qb.Limit(uint64(filters.Limit)).Offset(uint64(filters.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for tasks: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	return scanTasks(rows)
}

// prefixColumns qualifies column names with a table alias.
func prefixColumns(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
