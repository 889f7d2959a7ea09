package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staykeep/staykeep/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "friendly_id", "title", "description", "type", "priority", "status",
	"space_id", "custom_location", "assignee_id", "reporter_id", "equipment_id",
	"due_at", "started_at", "ready_at", "completed_at", "is_guest_impact",
	"response_time_minutes", "block_location_until", "reopen_count", "images",
	"created_at", "updated_at",
}

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.FriendlyID,
		&task.Title,
		&task.Description,
		&task.Type,
		&task.Priority,
		&task.Status,
		&task.SpaceID,
		&task.CustomLocation,
		&task.AssigneeID,
		&task.ReporterID,
		&task.EquipmentID,
		&task.DueAt,
		&task.StartedAt,
		&task.ReadyAt,
		&task.CompletedAt,
		&task.IsGuestImpact,
		&task.ResponseTimeMinutes,
		&task.BlockLocationUntil,
		&task.ReopenCount,
		&task.Images,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a task by ID with FOR UPDATE lock (within transaction).
func (r *TaskRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for task %s: %w", taskID, err)
	}

	return scanTask(tx.QueryRow(ctx, query, args...))
}

// Create inserts a new task within a transaction and populates its
// generated fields (ID, friendly ID, timestamps).
func (r *TaskRepository) Create(ctx context.Context, tx pgx.Tx, task *domain.Task) (*domain.Task, error) {
	if task.Images == nil {
		task.Images = []string{}
	}

	query, args, err := psql.
		Insert("tasks").
		Columns(
			"title", "description", "type", "priority", "status",
			"space_id", "custom_location", "assignee_id", "reporter_id", "equipment_id",
			"due_at", "is_guest_impact", "response_time_minutes", "block_location_until",
			"images",
		).
		Values(
			task.Title,
			task.Description,
			task.Type,
			task.Priority,
			task.Status,
			task.SpaceID,
			task.CustomLocation,
			task.AssigneeID,
			task.ReporterID,
			task.EquipmentID,
			task.DueAt,
			task.IsGuestImpact,
			task.ResponseTimeMinutes,
			task.BlockLocationUntil,
			task.Images,
		).
		Suffix("RETURNING id, friendly_id, reopen_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(
		&task.ID, &task.FriendlyID, &task.ReopenCount, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Update writes the mutable fields of a task, guarded by the status the
// caller loaded. Returns ErrTaskConflict when the task changed under the
// caller (expected status no longer matches).
func (r *TaskRepository) Update(
	ctx context.Context,
	tx pgx.Tx,
	task *domain.Task,
	expectedStatus domain.TaskStatus,
) error {
	query, args, err := psql.
		Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("priority", task.Priority).
		Set("status", task.Status).
		Set("assignee_id", task.AssigneeID).
		Set("due_at", task.DueAt).
		Set("started_at", task.StartedAt).
		Set("ready_at", task.ReadyAt).
		Set("completed_at", task.CompletedAt).
		Set("is_guest_impact", task.IsGuestImpact).
		Set("block_location_until", task.BlockLocationUntil).
		Set("reopen_count", task.ReopenCount).
		Set("images", task.Images).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     task.ID,
			"status": expectedStatus,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Update query for task %s: %w", task.ID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskConflict
	}

	return nil
}
