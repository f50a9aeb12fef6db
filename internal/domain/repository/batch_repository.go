package repository

import (
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// BatchFilter filtros del listado de lotes.
type BatchFilter struct {
	DrugID       string
	SupplierID   string
	ExpiringOnly bool // solo lotes con vencimiento <= hoy+30d y stock > 0
	Limit        int
	Offset       int
}

// BatchListRow fila del listado con los nombres resueltos por JOIN.
type BatchListRow struct {
	Batch        entity.InventoryBatch
	DrugName     string
	SupplierName string // vacío si el lote no tiene proveedor
}

// BatchRepository acceso a lotes de inventario. Los métodos *ForUpdate toman
// bloqueo exclusivo de fila (SELECT ... FOR UPDATE) y solo tienen sentido
// dentro de una transacción (repos atados a tx vía TxRunner).
type BatchRepository interface {
	Create(batch *entity.InventoryBatch) error
	GetByID(id string) (*entity.InventoryBatch, error)
	GetForUpdate(id string) (*entity.InventoryBatch, error)

	// ListEligibleForUpdate devuelve los lotes elegibles para FEFO de un
	// medicamento: activos, con stock > 0 y vencimiento nulo o posterior a
	// today. Ordena por vencimiento ascendente con los sin-vencimiento al
	// final y desempata por id ascendente; bloquea todo el conjunto.
	ListEligibleForUpdate(drugID string, today time.Time) ([]*entity.InventoryBatch, error)

	// ListExpiredForUpdate devuelve (y bloquea) los lotes activos ya vencidos
	// con stock > 0, para la baja por vencimiento.
	ListExpiredForUpdate(today time.Time) ([]*entity.InventoryBatch, error)

	// DecrementQuantity descuenta qty del lote y estampa updated_at.
	// La cantidad resultante nunca puede ser negativa.
	DecrementQuantity(id string, qty int, now time.Time) error

	// UpdateQuantity sobreescribe la cantidad (ajuste manual / baja).
	UpdateQuantity(id string, qty int, now time.Time) error

	// Deactivate marca el lote inactivo sin borrarlo.
	Deactivate(id string, now time.Time) error

	List(f BatchFilter) ([]BatchListRow, error)

	// ListExpiring lotes activos con stock > 0 y vencimiento <= threshold,
	// ordenados por vencimiento ascendente (para alertas).
	ListExpiring(threshold time.Time) ([]BatchListRow, error)

	// SumQuantityByDrug stock total derivado de los lotes activos del
	// medicamento. Nunca se cachea.
	SumQuantityByDrug(drugID string) (int, error)
}
