package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/seller-dashboard/internal/domain/repository"
)

var _ repository.RollupRepository = (*RollupRepo)(nil)

// RollupRepo adaptador de solo lectura sobre las funciones rollup de la DB.
// Las funciones dashboard_top_* ya devuelven las filas ordenadas por revenue
// descendente y filtradas por plataforma/fecha; aquí solo se escanea.
type RollupRepo struct {
	pool *pgxpool.Pool
}

// NewRollupRepository construye el adaptador de rollups.
func NewRollupRepository(pool *pgxpool.Pool) *RollupRepo {
	return &RollupRepo{pool: pool}
}

// TopProducts productos con mayor ingreso del rango (plataforma nil = todas).
func (r *RollupRepo) TopProducts(
	ctx context.Context,
	platform *string,
	start, end *time.Time,
) ([]repository.TopProductRow, error) {
	const query = `
	SELECT name, variant, revenue, qty, returned, platforms, latest_at
	FROM dashboard_top_products($1, $2, $3)`

	rows, err := r.pool.Query(ctx, query, platform, start, end)
	if err != nil {
		return nil, fmt.Errorf("rollup.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(
			&row.Name,
			&row.Variant,
			&row.Revenue,
			&row.Qty,
			&row.Returned,
			&row.Platforms,
			&row.LatestAt,
		); err != nil {
			return nil, fmt.Errorf("rollup.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopProvinces provincias de destino con mayor ingreso del rango.
func (r *RollupRepo) TopProvinces(
	ctx context.Context,
	platform *string,
	start, end *time.Time,
) ([]repository.TopProvinceRow, error) {
	const query = `
	SELECT name, revenue, qty
	FROM dashboard_top_provinces($1, $2, $3)`

	rows, err := r.pool.Query(ctx, query, platform, start, end)
	if err != nil {
		return nil, fmt.Errorf("rollup.TopProvinces: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProvinceRow
	for rows.Next() {
		var row repository.TopProvinceRow
		if err := rows.Scan(&row.Name, &row.Revenue, &row.Qty); err != nil {
			return nil, fmt.Errorf("rollup.TopProvinces scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopPlatforms totales por plataforma del rango.
func (r *RollupRepo) TopPlatforms(
	ctx context.Context,
	platform *string,
	start, end *time.Time,
) ([]repository.TopPlatformRow, error) {
	const query = `
	SELECT platform, variant, revenue, qty
	FROM dashboard_top_platforms($1, $2, $3)`

	rows, err := r.pool.Query(ctx, query, platform, start, end)
	if err != nil {
		return nil, fmt.Errorf("rollup.TopPlatforms: %w", err)
	}
	defer rows.Close()

	var results []repository.TopPlatformRow
	for rows.Next() {
		var row repository.TopPlatformRow
		if err := rows.Scan(&row.Platform, &row.Variant, &row.Revenue, &row.Qty); err != nil {
			return nil, fmt.Errorf("rollup.TopPlatforms scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProductImages búsqueda en lote de imágenes por nombre de producto.
// Una sola consulta para todo el batch; los nombres sin imagen no aparecen.
func (r *RollupRepo) ProductImages(
	ctx context.Context,
	names []string,
) ([]repository.ProductImageRow, error) {
	if len(names) == 0 {
		return nil, nil
	}
	const query = `
	SELECT name, image_url
	FROM product_images
	WHERE name = ANY($1) AND image_url IS NOT NULL`

	rows, err := r.pool.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("rollup.ProductImages: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductImageRow
	for rows.Next() {
		var row repository.ProductImageRow
		if err := rows.Scan(&row.Name, &row.ImageURL); err != nil {
			return nil, fmt.Errorf("rollup.ProductImages scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
