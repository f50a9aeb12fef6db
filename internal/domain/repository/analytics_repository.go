package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySalesResult ventas completadas agregadas por mes calendario.
type MonthlySalesResult struct {
	Year        int
	Month       int
	TotalAmount decimal.Decimal
	OrderCount  int
}

// TopMedicineResult medicamento más vendido por unidades en el período.
type TopMedicineResult struct {
	DrugID    string
	DrugName  string
	UnitsSold int
	Revenue   decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard. Solo agrega;
// nunca muta estado.
type AnalyticsRepository interface {
	CountActiveMedicines(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	CountExpiringSoon(ctx context.Context, from, to time.Time) (int, error)
	CountTransactions(ctx context.Context, from, to time.Time) (int, error)
	MonthlySales(ctx context.Context, since time.Time) ([]MonthlySalesResult, error)
	TopSellingMedicines(ctx context.Context, since time.Time, limit int) ([]TopMedicineResult, error)
}
