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

var userColumns = []string{
	"id", "name", "email", "telegram_id", "token", "role", "department",
	"is_on_shift", "created_at",
}

// UserRepository handles database operations for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.TelegramID,
		&user.Token,
		&user.Role,
		&user.Department,
		&user.IsOnShift,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := psql.
		Insert("users").
		Columns("name", "email", "telegram_id", "token", "role", "department", "is_on_shift").
		Values(user.Name, user.Email, user.TelegramID, user.Token, user.Role, user.Department, user.IsOnShift).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for user: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for user: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// GetByToken finds a user by authentication token.
func (r *UserRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByToken query for user: %w", err)
	}

	return scanUser(r.pool.QueryRow(ctx, query, args...))
}

// List retrieves all users ordered by name.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, nil)
}

// ListOnShiftStaff retrieves users eligible for auto-assignment: STAFF
// role, matching department, currently on shift.
func (r *UserRepository) ListOnShiftStaff(ctx context.Context, department domain.TaskType) ([]*domain.User, error) {
	return r.list(ctx, sq.Eq{
		"role":        domain.UserRoleStaff,
		"department":  department,
		"is_on_shift": true,
	})
}

func (r *UserRepository) list(ctx context.Context, where any) ([]*domain.User, error) {
	qb := psql.Select(userColumns...).From("users").OrderBy("name ASC")
	if where != nil {
		qb = qb.Where(where)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query for users: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return users, nil
}

// SetOnShift toggles the shift flag for a user.
func (r *UserRepository) SetOnShift(ctx context.Context, userID string, onShift bool) error {
	query, args, err := psql.
		Update("users").
		Set("is_on_shift", onShift).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SetOnShift query for user %s: %w", userID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
