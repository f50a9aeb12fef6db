package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// OrderFilter filtros del listado de órdenes de venta.
type OrderFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// OrderListRow cabecera para listados, con nombre de empleado y conteo de líneas.
type OrderListRow struct {
	Order        entity.SalesOrder
	EmployeeName string
	ItemCount    int
}

// OrderItemDetail línea con el contexto de medicamento y lote resuelto por JOIN.
type OrderItemDetail struct {
	ItemID      string
	DrugID      string
	DrugName    string
	BatchNumber string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// SalesOrderRepository acceso a órdenes de venta. Create persiste cabecera y
// líneas juntas; dentro de una transacción del TxRunner comparte suerte con
// las deducciones de stock de la orden.
type SalesOrderRepository interface {
	Create(order *entity.SalesOrder, items []*entity.SalesOrderItem) error
	GetByID(id string) (*entity.SalesOrder, error)
	GetDetail(id string) (*entity.SalesOrder, string, []OrderItemDetail, error) // orden, nombre empleado, líneas
	List(f OrderFilter) ([]OrderListRow, error)
}
