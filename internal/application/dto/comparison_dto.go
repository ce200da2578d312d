package dto

import "github.com/shopspring/decimal"

// ComparisonRequest parámetros para GET /api/dashboard/comparison.
type ComparisonRequest struct {
	Platform string `query:"platform"` // "all", vacío o plataforma canónica
	Start    string `query:"start"`    // YYYY-MM-DD inclusive, vacío = sin límite
	End      string `query:"end"`      // YYYY-MM-DD inclusive, vacío = sin límite
}

// MonthComparisonPointDTO un mes de una plataforma comparado contra el mes
// inmediatamente anterior de la serie.
//
// ChangeAmount y ChangePercent son punteros a propósito: nil significa "sin
// base de comparación" (primer mes de la serie, o divisor cero para el
// porcentaje) y el cliente lo renderiza como "(baseline)". Nunca se coerce
// a cero: 0% de cambio y "sin base" son cosas distintas.
type MonthComparisonPointDTO struct {
	Month         string           `json:"month"` // YYYY-MM
	Revenue       decimal.Decimal  `json:"revenue"`
	Fees          decimal.Decimal  `json:"fees"`
	Adjustments   decimal.Decimal  `json:"adjustments"`
	Settlement    decimal.Decimal  `json:"settlement"`
	ChangeAmount  *decimal.Decimal `json:"change_amount"`
	ChangePercent *decimal.Decimal `json:"change_percent"`
}

// PlatformComparisonDTO serie mensual de una plataforma, orden cronológico.
type PlatformComparisonDTO struct {
	Platform string                    `json:"platform"`
	Months   []MonthComparisonPointDTO `json:"months"`
}
