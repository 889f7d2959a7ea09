package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staykeep/staykeep/internal/domain"
)

// ActivityLogRepository handles database operations for the task audit
// trail. The log is append-only: no update or delete is exposed.
type ActivityLogRepository struct {
	pool *pgxpool.Pool
}

// NewActivityLogRepository creates a new ActivityLogRepository.
func NewActivityLogRepository(pool *pgxpool.Pool) *ActivityLogRepository {
	return &ActivityLogRepository{pool: pool}
}

// Create inserts an activity entry within the caller's transaction so the
// audit record commits atomically with the mutation it describes.
func (r *ActivityLogRepository) Create(
	ctx context.Context,
	tx pgx.Tx,
	entry *domain.ActivityLogEntry,
) error {
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}

	query, args, err := psql.
		Insert("activity_log").
		Columns("task_id", "user_id", "action", "metadata").
		Values(entry.TaskID, entry.UserID, entry.Action, entry.Metadata).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("create activity entry: %w", err)
	}

	return nil
}

// ListByTask retrieves all entries for a task, newest first.
func (r *ActivityLogRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.ActivityLogEntry, error) {
	query, args, err := psql.
		Select("id", "task_id", "user_id", "action", "metadata", "created_at").
		From("activity_log").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity log: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ActivityLogEntry
	for rows.Next() {
		var entry domain.ActivityLogEntry
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.UserID,
			&entry.Action,
			&entry.Metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}
