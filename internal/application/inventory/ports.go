package inventory

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// deducción: o se confirman todas las mutaciones de lotes y todos los
// asientos del libro de una llamada, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		txnRepo repository.StockTransactionRepository,
	) error) error
}
