package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/seller-dashboard/internal/application/dto"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
	"github.com/jhoicas/seller-dashboard/internal/domain/repository"
)

// CalculateMonthComparison agrupa el detalle diario de cada plataforma en
// cubos mensuales y compara cada mes contra el inmediatamente anterior de la
// serie (no contra el mismo mes del año pasado). Función pura.
//
// El primer mes de cada serie no tiene predecesor: ChangeAmount y
// ChangePercent quedan en nil y el cliente lo renderiza como "(baseline)".
// Un nil jamás se convierte en cero: 0% de cambio y "sin base" son
// semánticamente distintos.
func CalculateMonthComparison(rollups []entity.PlatformRollup) []dto.PlatformComparisonDTO {
	out := make([]dto.PlatformComparisonDTO, 0, len(rollups))
	for _, roll := range rollups {
		out = append(out, dto.PlatformComparisonDTO{
			Platform: string(roll.Platform),
			Months:   monthSeries(roll.PerDay),
		})
	}
	return out
}

// monthSeries construye la serie mensual ordenada de una plataforma.
func monthSeries(perDay []entity.DailyRecord) []dto.MonthComparisonPointDTO {
	type bucket struct {
		revenue     decimal.Decimal
		fees        decimal.Decimal
		adjustments decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	for _, day := range perDay {
		key := day.MonthKey()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.revenue = b.revenue.Add(day.Revenue)
		b.fees = b.fees.Add(day.Fees)
		b.adjustments = b.adjustments.Add(day.Adjustments)
	}

	// La clave YYYY-MM es cero-padded: orden lexicográfico == cronológico
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	months := make([]dto.MonthComparisonPointDTO, 0, len(keys))
	var prev *decimal.Decimal
	for _, k := range keys {
		b := buckets[k]
		settlement := b.revenue.Add(b.fees).Add(b.adjustments)

		point := dto.MonthComparisonPointDTO{
			Month:       k,
			Revenue:     b.revenue,
			Fees:        b.fees,
			Adjustments: b.adjustments,
			Settlement:  settlement,
		}
		if prev != nil {
			amount := settlement.Sub(*prev)
			point.ChangeAmount = &amount
			if !prev.IsZero() {
				pct := amount.Div(*prev).Mul(hundred).Round(1)
				point.ChangePercent = &pct
			}
		}
		months = append(months, point)

		s := settlement
		prev = &s
	}
	return months
}

// ComparisonUseCase carga los registros diarios y deriva la comparación mes a
// mes para las plataformas que pasan el filtro.
type ComparisonUseCase struct {
	recordRepo repository.RecordRepository
}

// NewComparisonUseCase construye el caso de uso.
func NewComparisonUseCase(recordRepo repository.RecordRepository) *ComparisonUseCase {
	return &ComparisonUseCase{recordRepo: recordRepo}
}

// GetComparison devuelve la serie mensual comparada por plataforma,
// opcionalmente restringida a [start, end] (extremos inclusivos).
func (uc *ComparisonUseCase) GetComparison(
	ctx context.Context,
	filter entity.PlatformFilter,
	start, end *time.Time,
) ([]dto.PlatformComparisonDTO, error) {
	rollups, err := uc.recordRepo.PlatformRollups(ctx)
	if err != nil {
		return nil, fmt.Errorf("comparison: registros diarios: %w", err)
	}

	filtered := make([]entity.PlatformRollup, 0, len(rollups))
	for _, roll := range rollups {
		if filter.Matches(roll.Platform) {
			filtered = append(filtered, roll.FilterRange(start, end))
		}
	}
	return CalculateMonthComparison(filtered), nil
}
