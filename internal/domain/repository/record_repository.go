package repository

import (
	"context"

	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
)

// RecordRepository carga de los registros financieros diarios por plataforma.
type RecordRepository interface {
	// PlatformRollups devuelve un rollup por plataforma con todo su detalle
	// diario, en el orden canónico de plataformas. Las plataformas sin datos
	// aparecen con PerDay vacío.
	PlatformRollups(ctx context.Context) ([]entity.PlatformRollup, error)
}
