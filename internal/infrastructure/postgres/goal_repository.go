package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/seller-dashboard/internal/domain"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
	"github.com/jhoicas/seller-dashboard/internal/domain/repository"
)

var _ repository.GoalRepository = (*GoalRepo)(nil)

// GoalRepo implementación del puerto GoalRepository sobre PostgreSQL.
type GoalRepo struct {
	pool *pgxpool.Pool
}

// NewGoalRepository construye el adaptador de persistencia para metas.
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepo {
	return &GoalRepo{pool: pool}
}

// Get obtiene la meta única por su clave compuesta, o domain.ErrNotFound.
func (r *GoalRepo) Get(
	ctx context.Context,
	platform string,
	goalType entity.GoalType,
	year, month int,
) (*entity.GoalRecord, error) {
	const query = `
	SELECT id, platform, year, month, goal_type, target, created_at, updated_at
	FROM goals
	WHERE platform = $1 AND goal_type = $2 AND year = $3 AND month = $4`

	var g entity.GoalRecord
	err := r.pool.QueryRow(ctx, query, platform, goalType, year, month).Scan(
		&g.ID, &g.Platform, &g.Year, &g.Month, &g.Type, &g.Target, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("goal.Get: %w", err)
	}
	return &g, nil
}

// ListByYear devuelve todas las metas de un año.
func (r *GoalRepo) ListByYear(ctx context.Context, year int) ([]entity.GoalRecord, error) {
	const query = `
	SELECT id, platform, year, month, goal_type, target, created_at, updated_at
	FROM goals
	WHERE year = $1
	ORDER BY platform, month, goal_type`

	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("goal.ListByYear: %w", err)
	}
	defer rows.Close()

	var goals []entity.GoalRecord
	for rows.Next() {
		var g entity.GoalRecord
		if err := rows.Scan(
			&g.ID, &g.Platform, &g.Year, &g.Month, &g.Type, &g.Target, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("goal.ListByYear scan: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Upsert inserta o reemplaza la meta con la misma clave compuesta.
// El constraint único (platform, year, month, goal_type) garantiza que nunca
// se crean duplicados; en conflicto se actualiza target y updated_at.
func (r *GoalRepo) Upsert(ctx context.Context, goal *entity.GoalRecord) error {
	const query = `
	INSERT INTO goals (id, platform, year, month, goal_type, target, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (platform, year, month, goal_type)
	DO UPDATE SET target = EXCLUDED.target, updated_at = EXCLUDED.updated_at
	RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		goal.ID, goal.Platform, goal.Year, goal.Month, goal.Type, goal.Target,
		goal.CreatedAt, goal.UpdatedAt,
	).Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("goal.Upsert: %w", err)
	}
	return nil
}
