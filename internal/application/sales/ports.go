package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de inventario y el de órdenes. La orden entera (todas sus líneas y
// sus deducciones FEFO) comparte una sola transacción: si una línea falla,
// nada queda persistido.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		txnRepo repository.StockTransactionRepository,
		orderRepo repository.SalesOrderRepository,
	) error) error
}

// StockDeductor contrato con el motor FEFO: ejecuta una deducción usando los
// repositorios del caller (misma transacción). Lo implementa
// *inventory.DeductStockUseCase.
type StockDeductor interface {
	DeductInTx(
		batchRepo repository.BatchRepository,
		txnRepo repository.StockTransactionRepository,
		in appinventory.DeductStockInput,
		now time.Time,
	) ([]entity.DeductionPlanEntry, error)
}

// ReceiptPDFGenerator genera el recibo PDF de una orden.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(
		order *entity.SalesOrder,
		employeeName string,
		items []repository.OrderItemDetail,
	) ([]byte, error)
}
