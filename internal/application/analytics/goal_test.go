package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-dashboard/internal/application/dto"
	"github.com/jhoicas/seller-dashboard/internal/domain"
	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
)

func dtoUpsert(platform string, year, month int, goalType, target string) dto.UpsertGoalRequest {
	return dto.UpsertGoalRequest{
		Platform: platform,
		Year:     year,
		Month:    month,
		Type:     goalType,
		Target:   target,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type fakeGoalRepo struct {
	goals []entity.GoalRecord
}

func (f *fakeGoalRepo) Get(_ context.Context, platform string, goalType entity.GoalType, year, month int) (*entity.GoalRecord, error) {
	for i := range f.goals {
		g := f.goals[i]
		if g.Platform == platform && g.Type == goalType && g.Year == year && g.Month == month {
			return &g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGoalRepo) ListByYear(_ context.Context, year int) ([]entity.GoalRecord, error) {
	var out []entity.GoalRecord
	for _, g := range f.goals {
		if g.Year == year {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) Upsert(_ context.Context, goal *entity.GoalRecord) error {
	for i := range f.goals {
		g := f.goals[i]
		if g.Platform == goal.Platform && g.Type == goal.Type && g.Year == goal.Year && g.Month == goal.Month {
			f.goals[i] = *goal
			return nil
		}
	}
	f.goals = append(f.goals, *goal)
	return nil
}

type fakeRecordRepo struct {
	rollups []entity.PlatformRollup
}

func (f *fakeRecordRepo) PlatformRollups(_ context.Context) ([]entity.PlatformRollup, error) {
	return f.rollups, nil
}

func record(t *testing.T, date string, revenue, fees, adjustments int64) entity.DailyRecord {
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

func goalOf(platform string, year, month int, goalType entity.GoalType, target int64) entity.GoalRecord {
	return entity.GoalRecord{
		ID:       "g",
		Platform: platform,
		Year:     year,
		Month:    month,
		Type:     goalType,
		Target:   decimal.NewFromInt(target),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GoalPercent — política de porcentaje
// ──────────────────────────────────────────────────────────────────────────────

// Meta 1, real 1000: el clamp es 999, no 100000 (y tampoco 100: los valores
// entre 100 y 999 siguen marcando sobre-cumplimiento).
func TestGoalPercent_Clamp999(t *testing.T) {
	pct := GoalPercent(decimal.NewFromInt(1000), decimal.NewFromInt(1))
	assert.True(t, pct.Equal(decimal.NewFromInt(999)), "esperado 999, obtenido %s", pct)
}

// Meta cero: porcentaje 0 sea cual sea el real.
func TestGoalPercent_MetaCero(t *testing.T) {
	pct := GoalPercent(decimal.NewFromInt(12345), decimal.Zero)
	assert.True(t, pct.Equal(decimal.Zero))
}

func TestGoalPercent_Normal(t *testing.T) {
	pct := GoalPercent(decimal.NewFromInt(750), decimal.NewFromInt(1000))
	assert.True(t, pct.Equal(decimal.NewFromInt(75)), "esperado 75, obtenido %s", pct)
}

// Entre 100 y 999 el sobre-cumplimiento queda visible sin clamp.
func TestGoalPercent_SobreCumplimientoVisible(t *testing.T) {
	pct := GoalPercent(decimal.NewFromInt(250), decimal.NewFromInt(100))
	assert.True(t, pct.Equal(decimal.NewFromInt(250)))
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeActual — suma por mes y filtro
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeActual_FiltraMesYPlataforma(t *testing.T) {
	rollups := []entity.PlatformRollup{
		entity.NewPlatformRollup(entity.PlatformShopee, []entity.DailyRecord{
			record(t, "2025-03-01", 100, -10, 5),
			record(t, "2025-03-20", 200, -20, 0),
			record(t, "2025-04-01", 999, 0, 0), // otro mes: fuera
		}),
		entity.NewPlatformRollup(entity.PlatformTikTok, []entity.DailyRecord{
			record(t, "2025-03-10", 50, -5, 0),
		}),
	}

	// Solo Shopee, solo marzo
	actual := ComputeActual(entity.OnePlatform(entity.PlatformShopee), "2025-03", rollups)
	assert.True(t, actual.Revenue.Equal(decimal.NewFromInt(300)))
	assert.True(t, actual.Fees.Equal(decimal.NewFromInt(-30)))
	assert.True(t, actual.Adjustments.Equal(decimal.NewFromInt(5)))
	assert.True(t, actual.Settlement().Equal(decimal.NewFromInt(275)))

	// Todas las plataformas, marzo
	all := ComputeActual(entity.AllPlatforms(), "2025-03", rollups)
	assert.True(t, all.Revenue.Equal(decimal.NewFromInt(350)))
}

// ──────────────────────────────────────────────────────────────────────────────
// GetProgress — mes de foco y YTD
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: meta global de profit 1000, real 750 → 75%.
func TestGetProgress_Profit75PorCiento(t *testing.T) {
	goalRepo := &fakeGoalRepo{goals: []entity.GoalRecord{
		goalOf("all", 2025, 3, entity.GoalTypeProfit, 1000),
	}}
	recordRepo := &fakeRecordRepo{rollups: []entity.PlatformRollup{
		entity.NewPlatformRollup(entity.PlatformShopee, []entity.DailyRecord{
			record(t, "2025-03-05", 800, -50, 0),
		}),
	}}

	uc := NewGoalUseCase(goalRepo, recordRepo)
	uc.now = func() time.Time { return time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC) }

	progress, err := uc.GetProgress(context.Background(), entity.AllPlatforms(), 2025, 3)
	require.NoError(t, err)

	require.NotNil(t, progress.Profit.Target)
	assert.True(t, progress.Profit.Target.Equal(decimal.NewFromInt(1000)))
	assert.True(t, progress.Profit.Actual.Equal(decimal.NewFromInt(750)))
	assert.True(t, progress.Profit.Percent.Equal(decimal.NewFromInt(75)), "esperado 75, obtenido %s", progress.Profit.Percent)

	// Revenue sin meta fijada: target null, percent 0
	assert.Nil(t, progress.Revenue.Target)
	assert.True(t, progress.Revenue.Percent.Equal(decimal.Zero))
}

// Año en curso: la ventana YTD abarca los meses 1..mes actual.
func TestGetProgress_YTDAnioEnCurso(t *testing.T) {
	goalRepo := &fakeGoalRepo{goals: []entity.GoalRecord{
		goalOf("all", 2025, 1, entity.GoalTypeRevenue, 100),
		goalOf("all", 2025, 2, entity.GoalTypeRevenue, 100),
		// Marzo sin meta: aporta 0 al target YTD, no invalida la suma
	}}
	recordRepo := &fakeRecordRepo{rollups: []entity.PlatformRollup{
		entity.NewPlatformRollup(entity.PlatformShopee, []entity.DailyRecord{
			record(t, "2025-01-10", 80, 0, 0),
			record(t, "2025-02-10", 90, 0, 0),
			record(t, "2025-03-10", 70, 0, 0),
			record(t, "2025-06-10", 999, 0, 0), // fuera de la ventana YTD
		}),
	}}

	uc := NewGoalUseCase(goalRepo, recordRepo)
	uc.now = func() time.Time { return time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC) }

	progress, err := uc.GetProgress(context.Background(), entity.AllPlatforms(), 2025, 3)
	require.NoError(t, err)

	ytd := progress.YTD
	assert.Equal(t, 3, ytd.Months)
	assert.True(t, ytd.HasTargets)
	require.NotNil(t, ytd.Revenue.Target)
	assert.True(t, ytd.Revenue.Target.Equal(decimal.NewFromInt(200)), "meses sin meta aportan 0")
	assert.True(t, ytd.Revenue.Actual.Equal(decimal.NewFromInt(240)))
	assert.True(t, ytd.Revenue.Percent.Equal(decimal.NewFromInt(120)))
}

// Año pasado: la ventana YTD abarca los 12 meses.
func TestGetProgress_YTDAnioPasado(t *testing.T) {
	goalRepo := &fakeGoalRepo{goals: []entity.GoalRecord{
		goalOf("all", 2024, 11, entity.GoalTypeProfit, 500),
	}}
	recordRepo := &fakeRecordRepo{rollups: []entity.PlatformRollup{
		entity.NewPlatformRollup(entity.PlatformLazada, []entity.DailyRecord{
			record(t, "2024-11-10", 600, -100, 0),
			record(t, "2024-12-10", 100, 0, 0),
		}),
	}}

	uc := NewGoalUseCase(goalRepo, recordRepo)
	uc.now = func() time.Time { return time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC) }

	progress, err := uc.GetProgress(context.Background(), entity.AllPlatforms(), 2024, 11)
	require.NoError(t, err)

	assert.Equal(t, 12, progress.YTD.Months)
	assert.True(t, progress.YTD.Profit.Actual.Equal(decimal.NewFromInt(600)))
}

// Sin ninguna meta fijada en la ventana la sección YTD se marca como vacía.
func TestGetProgress_YTDSinMetas(t *testing.T) {
	uc := NewGoalUseCase(&fakeGoalRepo{}, &fakeRecordRepo{})
	uc.now = func() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }

	progress, err := uc.GetProgress(context.Background(), entity.AllPlatforms(), 2025, 5)
	require.NoError(t, err)
	assert.False(t, progress.YTD.HasTargets)
	assert.Nil(t, progress.YTD.Revenue.Target)
	assert.Nil(t, progress.YTD.Profit.Target)
}

func TestGetProgress_MesInvalido(t *testing.T) {
	uc := NewGoalUseCase(&fakeGoalRepo{}, &fakeRecordRepo{})
	_, err := uc.GetProgress(context.Background(), entity.AllPlatforms(), 2025, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpsertGoal — clave compuesta sin duplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertGoal_ReemplazaPorClaveCompuesta(t *testing.T) {
	goalRepo := &fakeGoalRepo{}
	uc := NewGoalUseCase(goalRepo, &fakeRecordRepo{})

	req := dtoUpsert("Shopee", 2025, 4, "revenue", "1000")
	_, err := uc.UpsertGoal(context.Background(), req)
	require.NoError(t, err)

	req.Target = "2000"
	_, err = uc.UpsertGoal(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, goalRepo.goals, 1, "el upsert no debe duplicar la clave compuesta")
	assert.True(t, goalRepo.goals[0].Target.Equal(decimal.NewFromInt(2000)))
}

func TestUpsertGoal_Validaciones(t *testing.T) {
	uc := NewGoalUseCase(&fakeGoalRepo{}, &fakeRecordRepo{})

	cases := []struct {
		name     string
		platform string
		month    int
		goalType string
		target   string
	}{
		{"plataforma desconocida", "Amazon", 4, "revenue", "100"},
		{"mes fuera de rango", "all", 0, "revenue", "100"},
		{"tipo desconocido", "all", 4, "units", "100"},
		{"target no numérico", "all", 4, "revenue", "mil"},
		{"target negativo", "all", 4, "revenue", "-5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.UpsertGoal(context.Background(), dtoUpsert(tc.platform, 2025, tc.month, tc.goalType, tc.target))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// La búsqueda puntual devuelve la meta fijada o ErrNotFound.
func TestGetGoalRecord_PorClaveCompuesta(t *testing.T) {
	goalRepo := &fakeGoalRepo{goals: []entity.GoalRecord{
		goalOf("Shopee", 2025, 4, entity.GoalTypeRevenue, 1000),
	}}
	uc := NewGoalUseCase(goalRepo, &fakeRecordRepo{})

	goal, err := uc.GetGoalRecord(context.Background(), "Shopee", entity.GoalTypeRevenue, 2025, 4)
	require.NoError(t, err)
	assert.True(t, goal.Target.Equal(decimal.NewFromInt(1000)))

	_, err = uc.GetGoalRecord(context.Background(), "Lazada", entity.GoalTypeRevenue, 2025, 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La plataforma del request se normaliza a la grafía canónica.
func TestUpsertGoal_NormalizaPlataforma(t *testing.T) {
	goalRepo := &fakeGoalRepo{}
	uc := NewGoalUseCase(goalRepo, &fakeRecordRepo{})

	goal, err := uc.UpsertGoal(context.Background(), dtoUpsert("tik tok", 2025, 4, "profit", "300"))
	require.NoError(t, err)
	assert.Equal(t, "TikTok", goal.Platform)
}
