package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `
	id, drug_id, COALESCE(supplier_id, ''), batch_number, quantity_in_stock,
	cost_price, selling_price, mfg_date, exp_date, is_active, created_at, updated_at`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func scanBatch(row pgx.Row) (*entity.InventoryBatch, error) {
	var b entity.InventoryBatch
	err := row.Scan(
		&b.ID, &b.DrugID, &b.SupplierID, &b.BatchNumber, &b.QuantityInStock,
		&b.CostPrice, &b.SellingPrice, &b.MfgDate, &b.ExpDate, &b.IsActive,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta un lote nuevo.
func (r *BatchRepo) Create(batch *entity.InventoryBatch) error {
	query := `
		INSERT INTO inventory_batches
			(id, drug_id, supplier_id, batch_number, quantity_in_stock,
			 cost_price, selling_price, mfg_date, exp_date, is_active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.DrugID, batch.SupplierID, batch.BatchNumber, batch.QuantityInStock,
		batch.CostPrice, batch.SellingPrice, batch.MfgDate, batch.ExpDate, batch.IsActive,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id. Devuelve nil, nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.InventoryBatch, error) {
	query := `SELECT` + batchColumns + ` FROM inventory_batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *BatchRepo) GetForUpdate(id string) (*entity.InventoryBatch, error) {
	query := `SELECT` + batchColumns + ` FROM inventory_batches WHERE id = $1 FOR UPDATE`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// ListEligibleForUpdate lotes elegibles para deducción FEFO de un medicamento,
// bloqueados en orden de consumo: vencimiento ascendente con NULLS LAST y
// desempate por id. El ORDER BY también fija el orden de adquisición de los
// bloqueos, lo que evita deadlocks entre deducciones concurrentes del mismo
// medicamento.
func (r *BatchRepo) ListEligibleForUpdate(drugID string, today time.Time) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT` + batchColumns + `
		FROM inventory_batches
		WHERE drug_id = $1
		  AND is_active = true
		  AND quantity_in_stock > 0
		  AND (exp_date IS NULL OR exp_date > $2)
		ORDER BY exp_date ASC NULLS LAST, id ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, drugID, today)
	if err != nil {
		return nil, fmt.Errorf("list eligible batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.InventoryBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan eligible batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list eligible batches: %w", err)
	}
	return batches, nil
}

// ListExpiredForUpdate lotes activos ya vencidos con stock, bloqueados para la
// baja por vencimiento.
func (r *BatchRepo) ListExpiredForUpdate(today time.Time) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT` + batchColumns + `
		FROM inventory_batches
		WHERE is_active = true
		  AND quantity_in_stock > 0
		  AND exp_date IS NOT NULL
		  AND exp_date <= $1
		ORDER BY exp_date ASC, id ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, today)
	if err != nil {
		return nil, fmt.Errorf("list expired batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.InventoryBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expired batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expired batches: %w", err)
	}
	return batches, nil
}

// DecrementQuantity descuenta qty del lote. El CHECK de cantidad no negativa
// de la tabla respalda el cálculo hecho bajo bloqueo.
func (r *BatchRepo) DecrementQuantity(id string, qty int, now time.Time) error {
	query := `
		UPDATE inventory_batches
		SET quantity_in_stock = quantity_in_stock - $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, qty, now)
	if err != nil {
		return fmt.Errorf("decrement batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decrement batch %s: no existe", id)
	}
	return nil
}

// UpdateQuantity sobreescribe la cantidad del lote (ajuste manual / baja).
func (r *BatchRepo) UpdateQuantity(id string, qty int, now time.Time) error {
	query := `
		UPDATE inventory_batches
		SET quantity_in_stock = $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, qty, now)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update batch %s: no existe", id)
	}
	return nil
}

// Deactivate marca el lote inactivo sin borrarlo.
func (r *BatchRepo) Deactivate(id string, now time.Time) error {
	query := `
		UPDATE inventory_batches
		SET is_active = false, updated_at = $2
		WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, now); err != nil {
		return fmt.Errorf("deactivate batch: %w", err)
	}
	return nil
}

// List lotes con nombres de medicamento y proveedor resueltos por JOIN.
func (r *BatchRepo) List(f repository.BatchFilter) ([]repository.BatchListRow, error) {
	query := `
		SELECT b.id, b.drug_id, COALESCE(b.supplier_id, ''), b.batch_number,
		       b.quantity_in_stock, b.cost_price, b.selling_price, b.mfg_date,
		       b.exp_date, b.is_active, b.created_at, b.updated_at,
		       m.drug_name, COALESCE(s.name, '')
		FROM inventory_batches b
		JOIN medicines m ON m.id = b.drug_id
		LEFT JOIN suppliers s ON s.id = b.supplier_id
		WHERE b.is_active = true`
	args := []any{}
	idx := 1
	if f.DrugID != "" {
		query += fmt.Sprintf(" AND b.drug_id = $%d", idx)
		args = append(args, f.DrugID)
		idx++
	}
	if f.SupplierID != "" {
		query += fmt.Sprintf(" AND b.supplier_id = $%d", idx)
		args = append(args, f.SupplierID)
		idx++
	}
	if f.ExpiringOnly {
		query += fmt.Sprintf(" AND b.quantity_in_stock > 0 AND b.exp_date IS NOT NULL AND b.exp_date <= $%d", idx)
		args = append(args, time.Now().AddDate(0, 0, 30))
		idx++
	}
	query += " ORDER BY b.exp_date ASC NULLS LAST, b.id ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return scanBatchListRows(rows)
}

// ListExpiring lotes activos con stock que vencen en o antes de threshold.
func (r *BatchRepo) ListExpiring(threshold time.Time) ([]repository.BatchListRow, error) {
	query := `
		SELECT b.id, b.drug_id, COALESCE(b.supplier_id, ''), b.batch_number,
		       b.quantity_in_stock, b.cost_price, b.selling_price, b.mfg_date,
		       b.exp_date, b.is_active, b.created_at, b.updated_at,
		       m.drug_name, COALESCE(s.name, '')
		FROM inventory_batches b
		JOIN medicines m ON m.id = b.drug_id
		LEFT JOIN suppliers s ON s.id = b.supplier_id
		WHERE b.is_active = true
		  AND b.quantity_in_stock > 0
		  AND b.exp_date IS NOT NULL
		  AND b.exp_date <= $1
		ORDER BY b.exp_date ASC, b.id ASC`
	rows, err := r.q.Query(context.Background(), query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	defer rows.Close()
	return scanBatchListRows(rows)
}

func scanBatchListRows(rows pgx.Rows) ([]repository.BatchListRow, error) {
	var out []repository.BatchListRow
	for rows.Next() {
		var row repository.BatchListRow
		b := &row.Batch
		err := rows.Scan(
			&b.ID, &b.DrugID, &b.SupplierID, &b.BatchNumber, &b.QuantityInStock,
			&b.CostPrice, &b.SellingPrice, &b.MfgDate, &b.ExpDate, &b.IsActive,
			&b.CreatedAt, &b.UpdatedAt, &row.DrugName, &row.SupplierName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan batch row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("batch rows: %w", err)
	}
	return out, nil
}

// SumQuantityByDrug stock total derivado de los lotes activos del medicamento.
func (r *BatchRepo) SumQuantityByDrug(drugID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity_in_stock), 0)
		FROM inventory_batches
		WHERE drug_id = $1 AND is_active = true`
	var total int
	if err := r.q.QueryRow(context.Background(), query, drugID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stock: %w", err)
	}
	return total, nil
}
