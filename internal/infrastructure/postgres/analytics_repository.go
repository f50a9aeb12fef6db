package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas read-only para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountActiveMedicines medicamentos activos.
func (r *AnalyticsRepo) CountActiveMedicines(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM medicines WHERE is_active = true`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count medicines: %w", err)
	}
	return n, nil
}

// CountLowStock medicamentos activos con stock derivado <= reorder_level.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*) FROM (
			SELECT m.id
			FROM medicines m
			LEFT JOIN inventory_batches b ON b.drug_id = m.id AND b.is_active = true
			WHERE m.is_active = true
			GROUP BY m.id, m.reorder_level
			HAVING COALESCE(SUM(b.quantity_in_stock), 0) <= m.reorder_level
		) low`
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// CountExpiringSoon lotes activos con stock que vencen dentro de (from, to].
func (r *AnalyticsRepo) CountExpiringSoon(ctx context.Context, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM inventory_batches
		WHERE is_active = true
		  AND quantity_in_stock > 0
		  AND exp_date IS NOT NULL
		  AND exp_date > $1 AND exp_date <= $2`
	var n int
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expiring: %w", err)
	}
	return n, nil
}

// CountTransactions asientos del libro de movimientos en [from, to].
func (r *AnalyticsRepo) CountTransactions(ctx context.Context, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM stock_transactions
		WHERE created_at >= $1 AND created_at <= $2`
	var n int
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// MonthlySales ventas completadas agregadas por mes calendario desde since.
func (r *AnalyticsRepo) MonthlySales(ctx context.Context, since time.Time) ([]repository.MonthlySalesResult, error) {
	query := `
		SELECT EXTRACT(YEAR FROM created_at)::int,
		       EXTRACT(MONTH FROM created_at)::int,
		       COALESCE(SUM(total_amount), 0),
		       COUNT(*)
		FROM sales_orders
		WHERE status = $1 AND is_active = true AND created_at >= $2
		GROUP BY 1, 2
		ORDER BY 1 ASC, 2 ASC`
	rows, err := r.q.Query(ctx, query, entity.OrderStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlySalesResult
	for rows.Next() {
		var res repository.MonthlySalesResult
		if err := rows.Scan(&res.Year, &res.Month, &res.TotalAmount, &res.OrderCount); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("monthly sales rows: %w", err)
	}
	return out, nil
}

// TopSellingMedicines medicamentos con más unidades vendidas desde since.
func (r *AnalyticsRepo) TopSellingMedicines(ctx context.Context, since time.Time, limit int) ([]repository.TopMedicineResult, error) {
	query := `
		SELECT m.id, m.drug_name,
		       COALESCE(SUM(i.quantity), 0)::int,
		       COALESCE(SUM(i.quantity * i.unit_price), 0)
		FROM sales_order_items i
		JOIN sales_orders o ON o.id = i.order_id
		JOIN inventory_batches b ON b.id = i.batch_id
		JOIN medicines m ON m.id = b.drug_id
		WHERE o.status = $1 AND o.is_active = true AND o.created_at >= $2
		GROUP BY m.id, m.drug_name
		ORDER BY 3 DESC, m.drug_name ASC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, entity.OrderStatusCompleted, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling: %w", err)
	}
	defer rows.Close()

	var out []repository.TopMedicineResult
	for rows.Next() {
		var res repository.TopMedicineResult
		if err := rows.Scan(&res.DrugID, &res.DrugName, &res.UnitsSold, &res.Revenue); err != nil {
			return nil, fmt.Errorf("scan top selling: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top selling rows: %w", err)
	}
	return out, nil
}
