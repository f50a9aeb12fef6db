package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// AdjustStockUseCase corrección manual acotada de un lote (daño, pérdida,
// reconteo). Sobreescribe la cantidad saltándose el orden FEFO y deja un
// asiento ADJUST con el delta firmado. No es para ventas.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// AdjustInput entrada de un ajuste manual.
type AdjustInput struct {
	BatchID     string
	NewQuantity int // objetivo absoluto; nunca negativo
	Reason      string
	EmployeeID  string
}

// AdjustQuantity bloquea el lote, sobreescribe su cantidad y registra el
// delta (new - old) en el libro. Devuelve (oldQuantity, newQuantity).
func (uc *AdjustStockUseCase) AdjustQuantity(ctx context.Context, in AdjustInput) (int, int, error) {
	if in.NewQuantity < 0 {
		return 0, 0, domain.ErrInvalidQuantity
	}
	if in.BatchID == "" || in.EmployeeID == "" {
		return 0, 0, domain.ErrInvalidInput
	}

	var oldQty int
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		txnRepo repository.StockTransactionRepository,
	) error {
		now := time.Now()
		batch, err := batchRepo.GetForUpdate(in.BatchID)
		if err != nil {
			return &domain.StorageError{Op: "lock batch", Err: err}
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		oldQty = batch.QuantityInStock

		if err := batchRepo.UpdateQuantity(in.BatchID, in.NewQuantity, now); err != nil {
			return &domain.StorageError{Op: "update batch quantity", Err: err}
		}
		txn := &entity.StockTransaction{
			ID:         uuid.New().String(),
			BatchID:    in.BatchID,
			EmployeeID: in.EmployeeID,
			TransType:  entity.TransTypeADJUST,
			Quantity:   in.NewQuantity - oldQty,
			Notes:      in.Reason,
			CreatedAt:  now,
		}
		if err := txnRepo.Create(txn); err != nil {
			return &domain.StorageError{Op: "create ADJUST transaction", Err: err}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return oldQty, in.NewQuantity, nil
}
