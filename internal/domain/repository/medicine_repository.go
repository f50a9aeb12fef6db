package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// MedicineFilter filtros del listado de medicamentos. Search debe llegar ya
// normalizado (minúsculas, sin tildes) — ver pkg/textutil.
type MedicineFilter struct {
	Search     string
	CategoryID string
	OnlyActive bool
	Limit      int
	Offset     int
}

// LowStockResult medicamento cuyo stock derivado quedó en o bajo su punto de reorden.
type LowStockResult struct {
	DrugID       string
	DrugName     string
	ReorderLevel int
	CurrentStock int
}

// MedicineRepository acceso a la ficha maestra de medicamentos.
type MedicineRepository interface {
	Create(m *entity.Medicine) error
	GetByID(id string) (*entity.Medicine, error)
	GetByBarcode(barcode string) (*entity.Medicine, error)
	Update(m *entity.Medicine) error
	Deactivate(id string) error
	List(f MedicineFilter) ([]*entity.Medicine, error)

	// ListLowStock medicamentos activos con suma de lotes activos <= reorder_level.
	ListLowStock() ([]LowStockResult, error)
}
