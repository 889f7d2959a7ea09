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

// EquipmentRepository handles database operations for equipment.
type EquipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository creates a new EquipmentRepository.
func NewEquipmentRepository(pool *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{pool: pool}
}

// Create inserts a new piece of equipment.
func (r *EquipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) (*domain.Equipment, error) {
	query, args, err := psql.
		Insert("equipment").
		Columns("name", "space_id").
		Values(equipment.Name, equipment.SpaceID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for equipment: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&equipment.ID, &equipment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}

	return equipment, nil
}

// GetByID retrieves equipment by ID.
func (r *EquipmentRepository) GetByID(ctx context.Context, equipmentID string) (*domain.Equipment, error) {
	query, args, err := psql.
		Select("id", "name", "space_id", "created_at").
		From("equipment").
		Where(sq.Eq{"id": equipmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for equipment: %w", err)
	}

	var equipment domain.Equipment
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&equipment.ID,
		&equipment.Name,
		&equipment.SpaceID,
		&equipment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("query equipment: %w", err)
	}

	return &equipment, nil
}
