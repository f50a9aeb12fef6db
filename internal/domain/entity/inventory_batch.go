package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBatch un lote recibido de un medicamento, con su propia cantidad,
// precios y vencimiento. La cantidad solo muta a través del motor de deducción
// FEFO, del ajuste manual acotado o de la creación inicial (stock-in).
// Nunca se borra: un lote en cero sigue siendo registro histórico.
type InventoryBatch struct {
	ID              string
	DrugID          string
	SupplierID      string // opcional
	BatchNumber     string // asignado por humanos, no necesariamente único
	QuantityInStock int    // invariante: nunca negativo
	CostPrice       *decimal.Decimal
	SellingPrice    *decimal.Decimal
	MfgDate         *time.Time
	ExpDate         *time.Time // nil = no vence; elegible para FEFO, ordena último
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Expired indica si el lote está vencido respecto a la fecha dada.
func (b *InventoryBatch) Expired(today time.Time) bool {
	return b.ExpDate != nil && !b.ExpDate.After(today)
}
