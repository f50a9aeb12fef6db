package repository

import (
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// TransactionFilter filtros del listado del libro de movimientos.
type TransactionFilter struct {
	BatchID   string
	DrugID    string // filtra por medicamento vía JOIN con el lote
	TransType string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// TransactionListRow fila del listado con contexto resuelto por JOIN.
type TransactionListRow struct {
	Transaction  entity.StockTransaction
	BatchNumber  string
	DrugName     string
	EmployeeName string
}

// StockTransactionRepository libro de movimientos append-only: solo Create y
// lecturas. No existe Update ni Delete a propósito.
type StockTransactionRepository interface {
	Create(txn *entity.StockTransaction) error
	List(f TransactionFilter) ([]TransactionListRow, error)
	ListByBatch(batchID string) ([]*entity.StockTransaction, error)
}
