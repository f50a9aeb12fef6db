package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de venta.
const (
	OrderStatusCompleted = "Completed"
	OrderStatusPending   = "Pending"
	OrderStatusCancelled = "Cancelled"
)

// SalesOrder cabecera de una venta. Las deducciones de stock de todas sus
// líneas y la cabecera se confirman en una sola transacción.
type SalesOrder struct {
	ID            string
	EmployeeID    string
	CustomerInfo  string // opcional: nombre/documento del cliente de mostrador
	TotalAmount   decimal.Decimal
	PaymentMethod string // Cash, QR, Card...
	Status        string
	ReferenceNo   string // etiqueta propagada a cada fila del libro de stock
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalesOrderItem línea de venta. BatchID apunta al primer lote que consumió
// el plan FEFO de la línea; el precio unitario sale de ese lote.
type SalesOrderItem struct {
	ID        string
	OrderID   string
	BatchID   string
	Quantity  int
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}
