package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo implementación de SalesOrderRepository sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create inserta cabecera y líneas. Llamado dentro de la transacción de la
// venta: comparte commit/rollback con las deducciones de stock.
func (r *SalesOrderRepo) Create(order *entity.SalesOrder, items []*entity.SalesOrderItem) error {
	headQuery := `
		INSERT INTO sales_orders
			(id, employee_id, customer_info, total_amount, payment_method,
			 status, reference_no, is_active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), headQuery,
		order.ID, order.EmployeeID, order.CustomerInfo, order.TotalAmount,
		order.PaymentMethod, order.Status, order.ReferenceNo, order.IsActive,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sales order: %w", err)
	}

	itemQuery := `
		INSERT INTO sales_order_items (id, order_id, batch_id, quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			it.ID, it.OrderID, it.BatchID, it.Quantity, it.UnitPrice, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("create sales order item: %w", err)
		}
	}
	return nil
}

const orderColumns = `
	id, employee_id, COALESCE(customer_info, ''), total_amount,
	COALESCE(payment_method, ''), status, reference_no, is_active, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := row.Scan(
		&o.ID, &o.EmployeeID, &o.CustomerInfo, &o.TotalAmount, &o.PaymentMethod,
		&o.Status, &o.ReferenceNo, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene la cabecera. Devuelve nil, nil si no existe.
func (r *SalesOrderRepo) GetByID(id string) (*entity.SalesOrder, error) {
	query := `SELECT` + orderColumns + ` FROM sales_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return o, nil
}

// GetDetail obtiene cabecera, nombre del empleado y líneas con su contexto de
// medicamento y lote. Orden nil si no existe.
func (r *SalesOrderRepo) GetDetail(id string) (*entity.SalesOrder, string, []repository.OrderItemDetail, error) {
	headQuery := `
		SELECT o.id, o.employee_id, COALESCE(o.customer_info, ''), o.total_amount,
		       COALESCE(o.payment_method, ''), o.status, o.reference_no, o.is_active,
		       o.created_at, o.updated_at, COALESCE(e.name, '')
		FROM sales_orders o
		LEFT JOIN employees e ON e.id = o.employee_id
		WHERE o.id = $1`
	var o entity.SalesOrder
	var employeeName string
	err := r.q.QueryRow(context.Background(), headQuery, id).Scan(
		&o.ID, &o.EmployeeID, &o.CustomerInfo, &o.TotalAmount, &o.PaymentMethod,
		&o.Status, &o.ReferenceNo, &o.IsActive, &o.CreatedAt, &o.UpdatedAt, &employeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil, nil
		}
		return nil, "", nil, fmt.Errorf("get order detail: %w", err)
	}

	itemQuery := `
		SELECT i.id, b.drug_id, m.drug_name, b.batch_number, i.quantity, i.unit_price
		FROM sales_order_items i
		JOIN inventory_batches b ON b.id = i.batch_id
		JOIN medicines m ON m.id = b.drug_id
		WHERE i.order_id = $1
		ORDER BY i.created_at ASC, i.id ASC`
	rows, err := r.q.Query(context.Background(), itemQuery, id)
	if err != nil {
		return nil, "", nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	var items []repository.OrderItemDetail
	for rows.Next() {
		var it repository.OrderItemDetail
		err := rows.Scan(&it.ItemID, &it.DrugID, &it.DrugName, &it.BatchNumber, &it.Quantity, &it.UnitPrice)
		if err != nil {
			return nil, "", nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, "", nil, fmt.Errorf("order item rows: %w", err)
	}
	return &o, employeeName, items, nil
}

// List cabeceras más recientes primero, con nombre de empleado y conteo de líneas.
func (r *SalesOrderRepo) List(f repository.OrderFilter) ([]repository.OrderListRow, error) {
	query := `
		SELECT o.id, o.employee_id, COALESCE(o.customer_info, ''), o.total_amount,
		       COALESCE(o.payment_method, ''), o.status, o.reference_no, o.is_active,
		       o.created_at, o.updated_at, COALESCE(e.name, ''),
		       (SELECT COUNT(*) FROM sales_order_items i WHERE i.order_id = o.id)
		FROM sales_orders o
		LEFT JOIN employees e ON e.id = o.employee_id
		WHERE o.is_active = true`
	args := []any{}
	idx := 1
	if f.Status != "" {
		query += fmt.Sprintf(" AND o.status = $%d", idx)
		args = append(args, f.Status)
		idx++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", idx)
		args = append(args, *f.From)
		idx++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND o.created_at <= $%d", idx)
		args = append(args, *f.To)
		idx++
	}
	query += " ORDER BY o.created_at DESC, o.id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()

	var out []repository.OrderListRow
	for rows.Next() {
		var row repository.OrderListRow
		o := &row.Order
		err := rows.Scan(
			&o.ID, &o.EmployeeID, &o.CustomerInfo, &o.TotalAmount, &o.PaymentMethod,
			&o.Status, &o.ReferenceNo, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
			&row.EmployeeName, &row.ItemCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order rows: %w", err)
	}
	return out, nil
}
