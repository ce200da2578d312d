package repository

import (
	"context"

	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
)

// GoalRepository persistencia de metas mensuales.
type GoalRepository interface {
	// Get devuelve la meta única para la clave compuesta, o
	// domain.ErrNotFound si no está fijada.
	Get(ctx context.Context, platform string, goalType entity.GoalType, year, month int) (*entity.GoalRecord, error)

	// ListByYear devuelve todas las metas de un año, cualquier plataforma y tipo.
	ListByYear(ctx context.Context, year int) ([]entity.GoalRecord, error)

	// Upsert inserta o reemplaza la meta con la misma clave compuesta
	// (platform, year, month, type). Nunca crea duplicados.
	Upsert(ctx context.Context, goal *entity.GoalRecord) error
}
