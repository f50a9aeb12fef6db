package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/textutil"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

const medicineColumns = `
	id, COALESCE(barcode, ''), drug_name, COALESCE(generic_name, ''),
	COALESCE(unit, ''), COALESCE(category_id, ''), reorder_level,
	COALESCE(image_url, ''), is_active, created_at, updated_at`

// MedicineRepo implementación de MedicineRepository sobre PostgreSQL.
// Mantiene la columna search_name (nombre + genérico normalizados, sin
// tildes) para que la búsqueda sea insensible a acentos.
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

func searchName(m *entity.Medicine) string {
	return textutil.Normalize(m.DrugName + " " + m.GenericName)
}

// escapeLike escapa los metacaracteres de LIKE para que un término de
// búsqueda con % o _ se compare literal.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

func scanMedicine(row pgx.Row) (*entity.Medicine, error) {
	var m entity.Medicine
	err := row.Scan(
		&m.ID, &m.Barcode, &m.DrugName, &m.GenericName, &m.Unit, &m.CategoryID,
		&m.ReorderLevel, &m.ImageURL, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta un medicamento. Barcode duplicado → ErrDuplicate.
func (r *MedicineRepo) Create(m *entity.Medicine) error {
	query := `
		INSERT INTO medicines
			(id, barcode, drug_name, search_name, generic_name, unit, category_id,
			 reorder_level, image_url, is_active, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''),
		        NULLIF($7, ''), $8, NULLIF($9, ''), $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Barcode, m.DrugName, searchName(m), m.GenericName, m.Unit,
		m.CategoryID, m.ReorderLevel, m.ImageURL, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por id. Devuelve nil, nil si no existe.
func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	query := `SELECT` + medicineColumns + ` FROM medicines WHERE id = $1`
	m, err := scanMedicine(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine: %w", err)
	}
	return m, nil
}

// GetByBarcode obtiene un medicamento por código de barras. nil, nil si no existe.
func (r *MedicineRepo) GetByBarcode(barcode string) (*entity.Medicine, error) {
	query := `SELECT` + medicineColumns + ` FROM medicines WHERE barcode = $1`
	m, err := scanMedicine(r.q.QueryRow(context.Background(), query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medicine by barcode: %w", err)
	}
	return m, nil
}

// Update actualiza la ficha y recalcula search_name.
func (r *MedicineRepo) Update(m *entity.Medicine) error {
	query := `
		UPDATE medicines
		SET barcode = NULLIF($2, ''), drug_name = $3, search_name = $4,
		    generic_name = NULLIF($5, ''), unit = NULLIF($6, ''),
		    category_id = NULLIF($7, ''), reorder_level = $8,
		    image_url = NULLIF($9, ''), updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.Barcode, m.DrugName, searchName(m), m.GenericName, m.Unit,
		m.CategoryID, m.ReorderLevel, m.ImageURL, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update medicine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica.
func (r *MedicineRepo) Deactivate(id string) error {
	query := `UPDATE medicines SET is_active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate medicine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List medicamentos filtrados. f.Search debe llegar ya normalizado.
func (r *MedicineRepo) List(f repository.MedicineFilter) ([]*entity.Medicine, error) {
	query := `SELECT` + medicineColumns + ` FROM medicines WHERE 1=1`
	args := []any{}
	idx := 1
	if f.OnlyActive {
		query += " AND is_active = true"
	}
	if f.Search != "" {
		// Busca por nombre/genérico (search_name) o por código de barras.
		query += fmt.Sprintf(" AND (search_name LIKE $%d OR LOWER(COALESCE(barcode, '')) LIKE $%d)", idx, idx)
		args = append(args, "%"+escapeLike(f.Search)+"%")
		idx++
	}
	if f.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", idx)
		args = append(args, f.CategoryID)
		idx++
	}
	query += " ORDER BY drug_name ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()

	var out []*entity.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("medicine rows: %w", err)
	}
	return out, nil
}

// ListLowStock medicamentos activos cuyo stock derivado quedó en o bajo su
// punto de reorden. El stock se deriva de los lotes activos en la misma
// consulta; nunca de un contador cacheado.
func (r *MedicineRepo) ListLowStock() ([]repository.LowStockResult, error) {
	query := `
		SELECT m.id, m.drug_name, m.reorder_level,
		       COALESCE(SUM(b.quantity_in_stock), 0) AS current_stock
		FROM medicines m
		LEFT JOIN inventory_batches b ON b.drug_id = m.id AND b.is_active = true
		WHERE m.is_active = true
		GROUP BY m.id, m.drug_name, m.reorder_level
		HAVING COALESCE(SUM(b.quantity_in_stock), 0) <= m.reorder_level
		ORDER BY current_stock ASC, m.drug_name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockResult
	for rows.Next() {
		var res repository.LowStockResult
		if err := rows.Scan(&res.DrugID, &res.DrugName, &res.ReorderLevel, &res.CurrentStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("low stock rows: %w", err)
	}
	return out, nil
}
