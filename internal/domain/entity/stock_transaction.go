package entity

import "time"

// Tipos de transacción de stock.
const (
	TransTypeIN      = "IN"      // recepción de lote
	TransTypeOUT     = "OUT"     // deducción FEFO (venta o salida manual)
	TransTypeADJUST  = "ADJUST"  // corrección manual, Quantity = delta con signo
	TransTypeEXPIRED = "EXPIRED" // baja por vencimiento
)

// StockTransaction asiento inmutable del libro de movimientos: exactamente un
// lote por fila. Nunca se actualiza ni se borra. La suma IN - OUT - EXPIRED
// +/- ADJUST por lote debe reconciliar con la cantidad actual del lote.
type StockTransaction struct {
	ID          string
	BatchID     string
	EmployeeID  string
	TransType   string
	ReferenceNo string // opcional: agrupa las filas de una misma operación (ej. orden de venta)
	Quantity    int    // magnitud para IN/OUT/EXPIRED; delta con signo para ADJUST
	Notes       string
	CreatedAt   time.Time
}
