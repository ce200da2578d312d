package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
	"github.com/jhoicas/seller-dashboard/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo carga de los registros financieros diarios (imports liquidados
// de los marketplaces) agrupados por plataforma.
type RecordRepo struct {
	pool *pgxpool.Pool
}

// NewRecordRepository construye el adaptador de registros diarios.
func NewRecordRepository(pool *pgxpool.Pool) *RecordRepo {
	return &RecordRepo{pool: pool}
}

// PlatformRollups devuelve un rollup por plataforma canónica, en orden fijo,
// con su detalle diario ordenado por fecha. Las etiquetas de plataforma no
// reconocidas se descartan.
func (r *RecordRepo) PlatformRollups(ctx context.Context) ([]entity.PlatformRollup, error) {
	const query = `
	SELECT platform, date, revenue, fees, adjustments
	FROM daily_records
	ORDER BY platform, date`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("record.PlatformRollups: %w", err)
	}
	defer rows.Close()

	perPlatform := make(map[entity.Platform][]entity.DailyRecord, len(entity.Platforms))
	for rows.Next() {
		var label string
		var rec entity.DailyRecord
		if err := rows.Scan(&label, &rec.Date, &rec.Revenue, &rec.Fees, &rec.Adjustments); err != nil {
			return nil, fmt.Errorf("record.PlatformRollups scan: %w", err)
		}
		platform, ok := entity.NormalizePlatform(label)
		if !ok {
			continue
		}
		perPlatform[platform] = append(perPlatform[platform], rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("record.PlatformRollups rows: %w", err)
	}

	rollups := make([]entity.PlatformRollup, 0, len(entity.Platforms))
	for _, p := range entity.Platforms {
		rollups = append(rollups, entity.NewPlatformRollup(p, perPlatform[p]))
	}
	return rollups, nil
}
