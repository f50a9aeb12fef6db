package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación de StockTransactionRepository sobre
// PostgreSQL. La tabla es append-only: este adaptador no expone UPDATE ni
// DELETE.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create inserta un asiento del libro de movimientos.
func (r *StockTransactionRepo) Create(txn *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions
			(id, batch_id, employee_id, trans_type, reference_no, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.BatchID, txn.EmployeeID, txn.TransType, txn.ReferenceNo,
		txn.Quantity, txn.Notes, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

// List asientos con lote, medicamento y empleado resueltos por JOIN, más
// reciente primero.
func (r *StockTransactionRepo) List(f repository.TransactionFilter) ([]repository.TransactionListRow, error) {
	query := `
		SELECT t.id, t.batch_id, t.employee_id, t.trans_type,
		       COALESCE(t.reference_no, ''), t.quantity, t.notes, t.created_at,
		       b.batch_number, m.drug_name, COALESCE(e.name, '')
		FROM stock_transactions t
		JOIN inventory_batches b ON b.id = t.batch_id
		JOIN medicines m ON m.id = b.drug_id
		LEFT JOIN employees e ON e.id = t.employee_id
		WHERE 1=1`
	args := []any{}
	idx := 1
	if f.BatchID != "" {
		query += fmt.Sprintf(" AND t.batch_id = $%d", idx)
		args = append(args, f.BatchID)
		idx++
	}
	if f.DrugID != "" {
		query += fmt.Sprintf(" AND b.drug_id = $%d", idx)
		args = append(args, f.DrugID)
		idx++
	}
	if f.TransType != "" {
		query += fmt.Sprintf(" AND t.trans_type = $%d", idx)
		args = append(args, f.TransType)
		idx++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND t.created_at >= $%d", idx)
		args = append(args, *f.From)
		idx++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND t.created_at <= $%d", idx)
		args = append(args, *f.To)
		idx++
	}
	query += " ORDER BY t.created_at DESC, t.id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	var out []repository.TransactionListRow
	for rows.Next() {
		var row repository.TransactionListRow
		t := &row.Transaction
		err := rows.Scan(
			&t.ID, &t.BatchID, &t.EmployeeID, &t.TransType, &t.ReferenceNo,
			&t.Quantity, &t.Notes, &t.CreatedAt,
			&row.BatchNumber, &row.DrugName, &row.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transaction rows: %w", err)
	}
	return out, nil
}

// ListByBatch asientos de un lote en orden cronológico (para reconciliación).
func (r *StockTransactionRepo) ListByBatch(batchID string) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, batch_id, employee_id, trans_type, COALESCE(reference_no, ''),
		       quantity, notes, created_at
		FROM stock_transactions
		WHERE batch_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list transactions by batch: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transaction rows: %w", err)
	}
	return out, nil
}

func scanTransaction(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	err := row.Scan(
		&t.ID, &t.BatchID, &t.EmployeeID, &t.TransType, &t.ReferenceNo,
		&t.Quantity, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
