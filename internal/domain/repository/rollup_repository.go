package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductRow fila cruda de la consulta de top productos.
// La produce la DB (función rollup opaca, ya ordenada por revenue descendente
// y filtrada por fecha/plataforma); el use case la convierte en DTO.
type TopProductRow struct {
	Name      string
	Variant   string
	Revenue   decimal.Decimal
	Qty       int64
	Returned  int64
	Platforms []string // etiquetas libres; se normalizan en el use case
	LatestAt  time.Time
}

// TopProvinceRow fila cruda de la consulta de top provincias de envío.
type TopProvinceRow struct {
	Name    string
	Revenue decimal.Decimal
	Qty     int64
}

// TopPlatformRow fila cruda de la consulta de totales por plataforma.
type TopPlatformRow struct {
	Platform string // etiqueta libre; se normaliza en el use case
	Variant  string
	Revenue  decimal.Decimal
	Qty      int64
}

// ProductImageRow resultado de la búsqueda de imágenes por nombre de producto.
type ProductImageRow struct {
	Name     string
	ImageURL string
}

// RollupRepository consultas de solo lectura contra las funciones rollup de
// la DB. Las tres consultas top son independientes entre sí; el use case las
// lanza en paralelo. platform nil significa "todas las plataformas".
type RollupRepository interface {
	// TopProducts devuelve los productos con mayor ingreso en el rango dado,
	// ya ordenados por revenue descendente.
	TopProducts(ctx context.Context, platform *string, start, end *time.Time) ([]TopProductRow, error)

	// TopProvinces devuelve las provincias de destino con mayor ingreso.
	TopProvinces(ctx context.Context, platform *string, start, end *time.Time) ([]TopProvinceRow, error)

	// TopPlatforms devuelve los totales por plataforma del rango.
	// Es la consulta opcional del dashboard: si falla, el caller degrada
	// sin tarjetas de plataforma en vez de abortar.
	TopPlatforms(ctx context.Context, platform *string, start, end *time.Time) ([]TopPlatformRow, error)

	// ProductImages busca en lote las imágenes de los nombres dados
	// (una sola consulta para todo el batch, nunca una por producto).
	// Los nombres sin imagen simplemente no aparecen en el resultado.
	ProductImages(ctx context.Context, names []string) ([]ProductImageRow, error)
}
