package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// TopRequest parámetros para GET /api/dashboard/top.
type TopRequest struct {
	Platform string `query:"platform"` // "all", vacío o plataforma canónica
	Start    string `query:"start"`    // YYYY-MM-DD; vacío = sin límite inferior
	End      string `query:"end"`      // YYYY-MM-DD; vacío = sin límite superior
}

// ── Respuesta ─────────────────────────────────────────────────────────────────
// Las claves JSON de este endpoint son camelCase: es el contrato wire que el
// cliente del dashboard consume desde siempre.

// TopProductDTO producto del ranking top-5 por ingreso.
type TopProductDTO struct {
	Name      string          `json:"name"`
	Variant   string          `json:"variant,omitempty"`
	Revenue   decimal.Decimal `json:"revenue"`
	Qty       int64           `json:"qty"`
	Returned  int64           `json:"returned"`
	Platforms []string        `json:"platforms"` // solo nombres canónicos
	// ImageURL null cuando la búsqueda de imágenes no encontró el nombre;
	// el campo se emite siempre, nunca se omite.
	ImageURL *string `json:"imageUrl"`
}

// TopProvinceDTO provincia de destino del ranking top-5 por ingreso.
type TopProvinceDTO struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Qty     int64           `json:"qty"`
}

// TopPlatformDTO tarjeta de totales de una plataforma.
type TopPlatformDTO struct {
	Platform string          `json:"platform"`
	Variant  string          `json:"variant,omitempty"`
	Revenue  decimal.Decimal `json:"revenue"`
	Qty      int64           `json:"qty"`
}

// DashboardTopDTO respuesta completa de GET /api/dashboard/top.
// Platforms tiene siempre 3 slots en orden Shopee, TikTok, Lazada; un slot
// nil significa "sin datos" y el cliente lo renderiza así en vez de omitirlo.
type DashboardTopDTO struct {
	OK           bool              `json:"ok"`
	TopProducts  []TopProductDTO   `json:"topProducts"`
	TopProvinces []TopProvinceDTO  `json:"topProvinces"`
	Platforms    [3]*TopPlatformDTO `json:"platforms"`
}

// AggregationErrorResponse cuerpo de error de GET /api/dashboard/top
// (mensaje genérico para el usuario + detalle machine-readable para logs).
type AggregationErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
