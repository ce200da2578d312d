package dto

import "github.com/shopspring/decimal"

// ── Query / body ──────────────────────────────────────────────────────────────

// GoalProgressRequest parámetros para GET /api/dashboard/goals.
type GoalProgressRequest struct {
	Year     int    `query:"year"`
	Month    int    `query:"month"`    // 1..12
	Platform string `query:"platform"` // "all", vacío o plataforma canónica
}

// UpsertGoalRequest body de PUT /api/dashboard/goals.
type UpsertGoalRequest struct {
	Platform string `json:"platform"` // "all" o plataforma canónica
	Year     int    `json:"year"`
	Month    int    `json:"month"` // 1..12
	Type     string `json:"type"`  // revenue | profit
	Target   string `json:"target"`
}

// ── Respuesta ─────────────────────────────────────────────────────────────────

// GoalMetricDTO avance de una métrica contra su meta.
// Target null significa "meta no fijada" (distinto de meta cero).
type GoalMetricDTO struct {
	Type    string           `json:"type"` // revenue | profit
	Target  *decimal.Decimal `json:"target"`
	Actual  decimal.Decimal  `json:"actual"`
	Percent decimal.Decimal  `json:"percent"` // 0..999, ver política de clamp
}

// GoalYTDDTO acumulado del año hasta el mes de foco (año en curso) o del año
// completo (años pasados).
type GoalYTDDTO struct {
	Months     int           `json:"months"`      // meses que abarca la ventana YTD
	HasTargets bool          `json:"has_targets"` // si hay alguna meta fijada en la ventana
	Revenue    GoalMetricDTO `json:"revenue"`
	Profit     GoalMetricDTO `json:"profit"`
}

// GoalProgressDTO respuesta de GET /api/dashboard/goals.
type GoalProgressDTO struct {
	Platform string        `json:"platform"`
	Year     int           `json:"year"`
	Month    int           `json:"month"`
	Revenue  GoalMetricDTO `json:"revenue"`
	Profit   GoalMetricDTO `json:"profit"`
	YTD      GoalYTDDTO    `json:"ytd"`
}

// GoalDTO meta persistida, respuesta del upsert.
type GoalDTO struct {
	ID       string          `json:"id"`
	Platform string          `json:"platform"`
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Type     string          `json:"type"`
	Target   decimal.Decimal `json:"target"`
}
