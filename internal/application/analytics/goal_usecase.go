package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/seller-dashboard/internal/application/dto"
	"github.com/jhoicas/seller-dashboard/internal/domain"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
	"github.com/jhoicas/seller-dashboard/internal/domain/repository"
)

// percentCeiling tope de visualización del porcentaje de avance. Es una
// decisión de producto: una meta minúscula no debe disparar la barra de
// progreso a porcentajes patológicos, pero los valores entre 100 y 999
// siguen siendo distinguibles de exactamente 100% (sobre-cumplimiento).
var percentCeiling = decimal.NewFromInt(999)

var hundred = decimal.NewFromInt(100)

// ActualTotals sumas reales de un período.
type ActualTotals struct {
	Revenue     decimal.Decimal
	Fees        decimal.Decimal
	Adjustments decimal.Decimal
}

// Settlement neto liquidado: revenue + fees + adjustments.
func (a ActualTotals) Settlement() decimal.Decimal {
	return a.Revenue.Add(a.Fees).Add(a.Adjustments)
}

// ComputeActual suma revenue/fees/adjustments de las plataformas que pasan el
// filtro, restringido a los días del mes monthKey ("YYYY-MM"). Función pura:
// no toca estado ni hace I/O.
func ComputeActual(
	filter entity.PlatformFilter,
	monthKey string,
	rollups []entity.PlatformRollup,
) ActualTotals {
	var totals ActualTotals
	for _, roll := range rollups {
		if !filter.Matches(roll.Platform) {
			continue
		}
		for _, day := range roll.PerDay {
			if day.MonthKey() != monthKey {
				continue
			}
			totals.Revenue = totals.Revenue.Add(day.Revenue)
			totals.Fees = totals.Fees.Add(day.Fees)
			totals.Adjustments = totals.Adjustments.Add(day.Adjustments)
		}
	}
	return totals
}

// GoalPercent política de porcentaje de avance:
// target > 0 → min(actual/target*100, 999); target <= 0 → 0.
func GoalPercent(actual, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	pct := actual.Div(target).Mul(hundred)
	if pct.GreaterThan(percentCeiling) {
		return percentCeiling
	}
	return pct.Round(1)
}

// GoalUseCase calcula el avance real-contra-meta del mes de foco y del
// acumulado del año. Las sumas en sí son transformaciones puras sobre los
// registros cargados; este caso de uso solo añade la carga de datos.
type GoalUseCase struct {
	goalRepo   repository.GoalRepository
	recordRepo repository.RecordRepository

	// now reemplazable en tests para fijar la ventana YTD del año en curso.
	now func() time.Time
}

// NewGoalUseCase construye el caso de uso.
func NewGoalUseCase(goalRepo repository.GoalRepository, recordRepo repository.RecordRepository) *GoalUseCase {
	return &GoalUseCase{goalRepo: goalRepo, recordRepo: recordRepo, now: time.Now}
}

// GetProgress construye el avance de metas para el mes de foco y el YTD.
func (uc *GoalUseCase) GetProgress(
	ctx context.Context,
	filter entity.PlatformFilter,
	year, month int,
) (*dto.GoalProgressDTO, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: mes fuera de rango: %d", domain.ErrInvalidInput, month)
	}

	rollups, err := uc.recordRepo.PlatformRollups(ctx)
	if err != nil {
		return nil, fmt.Errorf("goals: registros diarios: %w", err)
	}
	goals, err := uc.goalRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("goals: metas del año: %w", err)
	}

	// Índice de metas del filtro por (mes, tipo)
	targets := indexTargets(goals, filter)

	monthKey := fmt.Sprintf("%04d-%02d", year, month)
	actual := ComputeActual(filter, monthKey, rollups)

	progress := &dto.GoalProgressDTO{
		Platform: filter.String(),
		Year:     year,
		Month:    month,
		Revenue:  metricDTO(entity.GoalTypeRevenue, actual.Revenue, targets[targetKey{month, entity.GoalTypeRevenue}]),
		Profit:   metricDTO(entity.GoalTypeProfit, actual.Settlement(), targets[targetKey{month, entity.GoalTypeProfit}]),
	}
	progress.YTD = uc.computeYTD(filter, year, rollups, targets)

	return progress, nil
}

// GetGoalRecord búsqueda puntual de la meta por su clave compuesta.
// Devuelve domain.ErrNotFound si la meta no está fijada.
func (uc *GoalUseCase) GetGoalRecord(
	ctx context.Context,
	platform string,
	goalType entity.GoalType,
	year, month int,
) (*entity.GoalRecord, error) {
	return uc.goalRepo.Get(ctx, platform, goalType, year, month)
}

// UpsertGoal valida y persiste una meta; reemplaza cualquier meta previa con
// la misma clave compuesta (platform, year, month, type).
func (uc *GoalUseCase) UpsertGoal(ctx context.Context, req dto.UpsertGoalRequest) (*dto.GoalDTO, error) {
	platform := req.Platform
	if platform != entity.GoalPlatformAll {
		p, ok := entity.NormalizePlatform(platform)
		if !ok {
			return nil, fmt.Errorf("%w: plataforma desconocida: %q", domain.ErrInvalidInput, req.Platform)
		}
		platform = string(p)
	}
	goalType, ok := entity.ParseGoalType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: tipo de meta desconocido: %q", domain.ErrInvalidInput, req.Type)
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("%w: mes fuera de rango: %d", domain.ErrInvalidInput, req.Month)
	}
	target, err := decimal.NewFromString(req.Target)
	if err != nil || target.IsNegative() {
		return nil, fmt.Errorf("%w: target inválido: %q", domain.ErrInvalidInput, req.Target)
	}

	now := uc.now()
	goal := &entity.GoalRecord{
		ID:        uuid.New().String(),
		Platform:  platform,
		Year:      req.Year,
		Month:     req.Month,
		Type:      goalType,
		Target:    target,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.goalRepo.Upsert(ctx, goal); err != nil {
		return nil, fmt.Errorf("goals: upsert: %w", err)
	}

	return &dto.GoalDTO{
		ID:       goal.ID,
		Platform: goal.Platform,
		Year:     goal.Year,
		Month:    goal.Month,
		Type:     string(goal.Type),
		Target:   goal.Target,
	}, nil
}

// computeYTD acumulado del año: para el año en curso abarca los meses 1..mes
// actual (inclusive); para un año pasado, los 12 meses. El target YTD suma
// solo los meses con meta fijada (los ausentes aportan 0); la existencia de
// alguna meta se reporta aparte para decidir si se renderiza la sección.
func (uc *GoalUseCase) computeYTD(
	filter entity.PlatformFilter,
	year int,
	rollups []entity.PlatformRollup,
	targets map[targetKey]*decimal.Decimal,
) dto.GoalYTDDTO {
	lastMonth := 12
	if now := uc.now(); year == now.Year() {
		lastMonth = int(now.Month())
	}

	var actualRevenue, actualProfit decimal.Decimal
	var targetRevenue, targetProfit decimal.Decimal
	hasTargets := false

	for m := 1; m <= lastMonth; m++ {
		monthKey := fmt.Sprintf("%04d-%02d", year, m)
		actual := ComputeActual(filter, monthKey, rollups)
		actualRevenue = actualRevenue.Add(actual.Revenue)
		actualProfit = actualProfit.Add(actual.Settlement())

		if t := targets[targetKey{m, entity.GoalTypeRevenue}]; t != nil {
			targetRevenue = targetRevenue.Add(*t)
			hasTargets = true
		}
		if t := targets[targetKey{m, entity.GoalTypeProfit}]; t != nil {
			targetProfit = targetProfit.Add(*t)
			hasTargets = true
		}
	}

	ytd := dto.GoalYTDDTO{
		Months:     lastMonth,
		HasTargets: hasTargets,
		Revenue: dto.GoalMetricDTO{
			Type:    string(entity.GoalTypeRevenue),
			Actual:  actualRevenue,
			Percent: GoalPercent(actualRevenue, targetRevenue),
		},
		Profit: dto.GoalMetricDTO{
			Type:    string(entity.GoalTypeProfit),
			Actual:  actualProfit,
			Percent: GoalPercent(actualProfit, targetProfit),
		},
	}
	// Target null si en toda la ventana no hay ninguna meta de esa métrica
	if targetRevenue.IsPositive() || hasMetric(targets, lastMonth, entity.GoalTypeRevenue) {
		ytd.Revenue.Target = &targetRevenue
	}
	if targetProfit.IsPositive() || hasMetric(targets, lastMonth, entity.GoalTypeProfit) {
		ytd.Profit.Target = &targetProfit
	}
	return ytd
}

// ── helpers ───────────────────────────────────────────────────────────────────

type targetKey struct {
	month    int
	goalType entity.GoalType
}

// indexTargets indexa por (mes, tipo) las metas del año que aplican al filtro.
func indexTargets(goals []entity.GoalRecord, filter entity.PlatformFilter) map[targetKey]*decimal.Decimal {
	targets := make(map[targetKey]*decimal.Decimal)
	for i := range goals {
		g := goals[i]
		if !g.MatchesFilter(filter) {
			continue
		}
		t := g.Target
		targets[targetKey{g.Month, g.Type}] = &t
	}
	return targets
}

// hasMetric indica si la métrica tiene alguna meta fijada dentro de la ventana.
func hasMetric(targets map[targetKey]*decimal.Decimal, lastMonth int, goalType entity.GoalType) bool {
	for m := 1; m <= lastMonth; m++ {
		if targets[targetKey{m, goalType}] != nil {
			return true
		}
	}
	return false
}

// metricDTO arma el avance de una métrica del mes de foco.
// target nil significa "meta no fijada": percent 0 y Target null en el JSON.
func metricDTO(goalType entity.GoalType, actual decimal.Decimal, target *decimal.Decimal) dto.GoalMetricDTO {
	m := dto.GoalMetricDTO{
		Type:   string(goalType),
		Actual: actual,
	}
	if target != nil {
		m.Target = target
		m.Percent = GoalPercent(actual, *target)
	} else {
		m.Percent = decimal.Zero
	}
	return m
}
