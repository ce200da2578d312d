package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType métrica sobre la que se fija una meta mensual.
type GoalType string

const (
	GoalTypeRevenue GoalType = "revenue" // ingresos brutos
	GoalTypeProfit  GoalType = "profit"  // neto liquidado (settlement)
)

// ParseGoalType valida el valor wire del tipo de meta.
func ParseGoalType(raw string) (GoalType, bool) {
	switch GoalType(raw) {
	case GoalTypeRevenue:
		return GoalTypeRevenue, true
	case GoalTypeProfit:
		return GoalTypeProfit, true
	default:
		return "", false
	}
}

// GoalPlatformAll valor de plataforma para metas globales (todas las plataformas).
const GoalPlatformAll = "all"

// GoalRecord meta mensual de un vendedor. La clave compuesta
// (Platform, Year, Month, Type) es única: un upsert reemplaza cualquier
// registro existente con esa clave, nunca crea duplicados.
type GoalRecord struct {
	ID        string // UUID
	Platform  string // "all" o una plataforma canónica
	Year      int
	Month     int // 1..12
	Type      GoalType
	Target    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MatchesFilter indica si la meta aplica al filtro de plataforma dado.
// Una meta "all" solo responde al filtro "all"; las metas por plataforma
// solo a su plataforma.
func (g GoalRecord) MatchesFilter(f PlatformFilter) bool {
	if f.IsAll() {
		return g.Platform == GoalPlatformAll
	}
	return f.Matches(Platform(g.Platform))
}
