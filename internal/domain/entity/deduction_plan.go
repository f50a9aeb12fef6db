package entity

import "time"

// DeductionPlanEntry una entrada del plan de deducción FEFO: cuánto se tomó de
// qué lote y cuánto quedó. El plan no se persiste; el rastro durable son las
// filas OUT del libro de stock.
type DeductionPlanEntry struct {
	BatchID      string
	BatchNumber  string
	DeductedQty  int
	RemainingQty int // cantidad del lote después de la deducción
	ExpDate      *time.Time
}
