package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-dashboard/internal/application/analytics"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
)

func day(t *testing.T, date string, revenue, fees, adjustments int64) entity.DailyRecord {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return entity.DailyRecord{
		Date:        d,
		Revenue:     decimal.NewFromInt(revenue),
		Fees:        decimal.NewFromInt(fees),
		Adjustments: decimal.NewFromInt(adjustments),
	}
}

func rollupOf(t *testing.T, platform entity.Platform, days ...entity.DailyRecord) entity.PlatformRollup {
	t.Helper()
	return entity.NewPlatformRollup(platform, days)
}

// Un único mes: sin predecesor, ChangeAmount y ChangePercent ambos nil.
// Nunca cero: 0% de cambio y "sin base" son cosas distintas.
func TestMonthComparison_PrimerMesEsBaseline(t *testing.T) {
	rollups := []entity.PlatformRollup{
		rollupOf(t, entity.PlatformShopee, day(t, "2025-03-10", 500, -50, 0)),
	}

	out := analytics.CalculateMonthComparison(rollups)
	require.Len(t, out, 1)
	require.Len(t, out[0].Months, 1)

	first := out[0].Months[0]
	assert.Equal(t, "2025-03", first.Month)
	assert.Nil(t, first.ChangeAmount, "el primer mes no tiene base: ChangeAmount debe ser nil, no cero")
	assert.Nil(t, first.ChangePercent, "el primer mes no tiene base: ChangePercent debe ser nil, no cero")
	assert.True(t, first.Settlement.Equal(decimal.NewFromInt(450)))
}

// Escenario de referencia: enero 90 de settlement, febrero 180 → +90, +100%.
func TestMonthComparison_EscenarioEneroFebrero(t *testing.T) {
	rollups := []entity.PlatformRollup{
		rollupOf(t, entity.PlatformShopee,
			day(t, "2025-01-05", 100, -10, 0),
			day(t, "2025-02-03", 200, -20, 0),
		),
	}

	out := analytics.CalculateMonthComparison(rollups)
	require.Len(t, out, 1)
	require.Len(t, out[0].Months, 2)

	jan := out[0].Months[0]
	feb := out[0].Months[1]

	assert.Equal(t, "2025-01", jan.Month)
	assert.True(t, jan.Settlement.Equal(decimal.NewFromInt(90)))
	assert.Nil(t, jan.ChangeAmount)

	assert.Equal(t, "2025-02", feb.Month)
	assert.True(t, feb.Settlement.Equal(decimal.NewFromInt(180)))
	require.NotNil(t, feb.ChangeAmount)
	require.NotNil(t, feb.ChangePercent)
	assert.True(t, feb.ChangeAmount.Equal(decimal.NewFromInt(90)))
	assert.True(t, feb.ChangePercent.Equal(decimal.NewFromInt(100)))
}

// Mes anterior con settlement cero: el importe se calcula, el porcentaje
// queda en nil (división por cero sin base válida).
func TestMonthComparison_BaseCeroSinPorcentaje(t *testing.T) {
	rollups := []entity.PlatformRollup{
		rollupOf(t, entity.PlatformLazada,
			day(t, "2025-01-15", 100, -100, 0), // settlement 0
			day(t, "2025-02-15", 300, -50, 0),  // settlement 250
		),
	}

	out := analytics.CalculateMonthComparison(rollups)
	require.Len(t, out, 1)
	require.Len(t, out[0].Months, 2)

	feb := out[0].Months[1]
	require.NotNil(t, feb.ChangeAmount)
	assert.True(t, feb.ChangeAmount.Equal(decimal.NewFromInt(250)))
	assert.Nil(t, feb.ChangePercent, "con base cero el porcentaje no es calculable")
}

// Los cubos se ordenan cronológicamente aunque los días lleguen desordenados,
// incluso cruzando el cambio de año (la clave YYYY-MM es cero-padded).
func TestMonthComparison_OrdenCronologico(t *testing.T) {
	rollups := []entity.PlatformRollup{
		rollupOf(t, entity.PlatformTikTok,
			day(t, "2025-01-02", 300, 0, 0),
			day(t, "2024-11-20", 100, 0, 0),
			day(t, "2024-12-05", 200, 0, 0),
		),
	}

	out := analytics.CalculateMonthComparison(rollups)
	require.Len(t, out, 1)
	months := out[0].Months
	require.Len(t, months, 3)

	assert.Equal(t, "2024-11", months[0].Month)
	assert.Equal(t, "2024-12", months[1].Month)
	assert.Equal(t, "2025-01", months[2].Month)

	// Cada mes compara contra el anterior inmediato de la serie
	require.NotNil(t, months[1].ChangeAmount)
	assert.True(t, months[1].ChangeAmount.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, months[2].ChangePercent)
	assert.True(t, months[2].ChangePercent.Equal(decimal.NewFromInt(50)))
}

type memRecordRepo struct {
	rollups []entity.PlatformRollup
}

func (m *memRecordRepo) PlatformRollups(context.Context) ([]entity.PlatformRollup, error) {
	return m.rollups, nil
}

// El caso de uso aplica filtro de plataforma y rango de fechas antes de
// construir la serie.
func TestGetComparison_FiltroYRango(t *testing.T) {
	repo := &memRecordRepo{rollups: []entity.PlatformRollup{
		rollupOf(t, entity.PlatformShopee,
			day(t, "2024-12-10", 999, 0, 0), // fuera del rango
			day(t, "2025-01-05", 100, 0, 0),
			day(t, "2025-02-05", 200, 0, 0),
		),
		rollupOf(t, entity.PlatformLazada, day(t, "2025-01-20", 50, 0, 0)),
	}}
	uc := analytics.NewComparisonUseCase(repo)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out, err := uc.GetComparison(context.Background(),
		entity.OnePlatform(entity.PlatformShopee), &start, nil)
	require.NoError(t, err)

	require.Len(t, out, 1, "solo la plataforma filtrada")
	assert.Equal(t, "Shopee", out[0].Platform)
	require.Len(t, out[0].Months, 2, "los días anteriores al rango no entran en la serie")
	assert.Equal(t, "2025-01", out[0].Months[0].Month)
	assert.Nil(t, out[0].Months[0].ChangeAmount,
		"el recorte del rango redefine cuál es el mes baseline")
}

// Una entrada por plataforma, aun sin datos.
func TestMonthComparison_UnaEntradaPorPlataforma(t *testing.T) {
	rollups := []entity.PlatformRollup{
		rollupOf(t, entity.PlatformShopee, day(t, "2025-01-05", 100, 0, 0)),
		rollupOf(t, entity.PlatformTikTok),
	}

	out := analytics.CalculateMonthComparison(rollups)
	require.Len(t, out, 2)
	assert.Equal(t, "Shopee", out[0].Platform)
	assert.Equal(t, "TikTok", out[1].Platform)
	assert.Empty(t, out[1].Months)
}
