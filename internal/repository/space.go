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

var spaceColumns = []string{
	"id", "name", "type", "status", "description", "created_at", "updated_at",
}

// SpaceRepository handles database operations for spaces.
type SpaceRepository struct {
	pool *pgxpool.Pool
}

// NewSpaceRepository creates a new SpaceRepository.
func NewSpaceRepository(pool *pgxpool.Pool) *SpaceRepository {
	return &SpaceRepository{pool: pool}
}

func scanSpace(row pgx.Row) (*domain.Space, error) {
	var space domain.Space
	err := row.Scan(
		&space.ID,
		&space.Name,
		&space.Type,
		&space.Status,
		&space.Description,
		&space.CreatedAt,
		&space.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSpaceNotFound
		}
		return nil, fmt.Errorf("scan space: %w", err)
	}
	return &space, nil
}

// Create inserts a new space.
func (r *SpaceRepository) Create(ctx context.Context, space *domain.Space) (*domain.Space, error) {
	query, args, err := psql.
		Insert("spaces").
		Columns("name", "type", "status", "description").
		Values(space.Name, space.Type, space.Status, space.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for space: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&space.ID, &space.CreatedAt, &space.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create space: %w", err)
	}

	return space, nil
}

// GetByID retrieves a space by ID.
func (r *SpaceRepository) GetByID(ctx context.Context, spaceID string) (*domain.Space, error) {
	query, args, err := psql.
		Select(spaceColumns...).
		From("spaces").
		Where(sq.Eq{"id": spaceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for space: %w", err)
	}

	return scanSpace(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves all spaces ordered by name.
func (r *SpaceRepository) List(ctx context.Context) ([]*domain.Space, error) {
	return r.list(ctx, nil)
}

// ListByStatus retrieves all spaces in the given status, ordered by name.
// The inspection queue uses this to find rooms in CLEANING.
func (r *SpaceRepository) ListByStatus(ctx context.Context, status domain.SpaceStatus) ([]*domain.Space, error) {
	return r.list(ctx, sq.Eq{"status": status})
}

func (r *SpaceRepository) list(ctx context.Context, where any) ([]*domain.Space, error) {
	qb := psql.Select(spaceColumns...).From("spaces").OrderBy("name ASC")
	if where != nil {
		qb = qb.Where(where)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for spaces: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query spaces: %w", err)
	}
	defer rows.Close()

	var spaces []*domain.Space
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return spaces, nil
}

// UpdateStatusTx sets the space status within the caller's transaction.
// Used by the task lifecycle so the space change commits or rolls back
// with the task change.
func (r *SpaceRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, spaceID string, status domain.SpaceStatus) error {
	query, args, err := statusUpdateSQL(spaceID, status)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update space status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSpaceNotFound
	}
	return nil
}

// UpdateStatus sets the space status outside a transaction. Used by the
// manual override path.
func (r *SpaceRepository) UpdateStatus(ctx context.Context, spaceID string, status domain.SpaceStatus) error {
	query, args, err := statusUpdateSQL(spaceID, status)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update space status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSpaceNotFound
	}
	return nil
}

func statusUpdateSQL(spaceID string, status domain.SpaceStatus) (string, []any, error) {
	query, args, err := psql.
		Update("spaces").
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": spaceID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build status update query for space %s: %w", spaceID, err)
	}
	return query, args, nil
}
