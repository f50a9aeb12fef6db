package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// ─────────────────────────────────────────────
// Fake de AnalyticsRepository que registra los argumentos recibidos
// ─────────────────────────────────────────────

type fakeAnalyticsRepo struct {
	mu sync.Mutex

	monthlySince time.Time
	topSince     time.Time
	topLimit     int

	monthly []repository.MonthlySalesResult
	top     []repository.TopMedicineResult
}

func (r *fakeAnalyticsRepo) CountActiveMedicines(context.Context) (int, error) { return 42, nil }
func (r *fakeAnalyticsRepo) CountLowStock(context.Context) (int, error)        { return 3, nil }

func (r *fakeAnalyticsRepo) CountExpiringSoon(_ context.Context, _, _ time.Time) (int, error) {
	return 5, nil
}

func (r *fakeAnalyticsRepo) CountTransactions(_ context.Context, _, _ time.Time) (int, error) {
	return 17, nil
}

func (r *fakeAnalyticsRepo) MonthlySales(_ context.Context, since time.Time) ([]repository.MonthlySalesResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.monthlySince = since
	return r.monthly, nil
}

func (r *fakeAnalyticsRepo) TopSellingMedicines(_ context.Context, since time.Time, limit int) ([]repository.TopMedicineResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topSince = since
	r.topLimit = limit
	return r.top, nil
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestGetSummary_VentanaDeDoceMesesYTopDiez(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		monthly: []repository.MonthlySalesResult{
			{Year: 2026, Month: 8, TotalAmount: decimal.RequireFromString("1234.505"), OrderCount: 40},
		},
		top: []repository.TopMedicineResult{
			{DrugID: "med-ibu", DrugName: "Ibuprofeno 400mg", UnitsSold: 320, Revenue: decimal.RequireFromString("1760.004")},
		},
	}
	uc := analytics.NewDashboardUseCase(repo)

	summary, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	// Ventana de ventas: desde el inicio del mes, 11 meses atrás (12 meses
	// calendario en total); los más vendidos usan la misma ventana con tope 10.
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	wantSince := monthStart.AddDate(0, -11, 0)

	assert.True(t, repo.monthlySince.Equal(wantSince),
		"ventas mensuales desde %s, se esperaba %s", repo.monthlySince, wantSince)
	assert.True(t, repo.topSince.Equal(wantSince),
		"más vendidos desde %s, se esperaba %s", repo.topSince, wantSince)
	assert.Equal(t, 10, repo.topLimit)

	assert.Equal(t, 42, summary.TotalMedicines)
	assert.Equal(t, 3, summary.LowStockCount)
	assert.Equal(t, 5, summary.ExpiringSoonCount)
	assert.Equal(t, 17, summary.TodayTransactions)

	// Montos redondeados a 2 decimales en el DTO.
	require.Len(t, summary.MonthlySales, 1)
	assert.True(t, summary.MonthlySales[0].TotalAmount.Equal(decimal.RequireFromString("1234.51")))
	require.Len(t, summary.TopSelling, 1)
	assert.True(t, summary.TopSelling[0].Revenue.Equal(decimal.RequireFromString("1760.00")))
}
