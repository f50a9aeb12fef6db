package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// WriteOffExpiredUseCase baja masiva de lotes vencidos: pone su cantidad en
// cero, los desactiva y deja un asiento EXPIRED por lote con la magnitud dada
// de baja. Atómico: o se da de baja todo el conjunto o nada.
type WriteOffExpiredUseCase struct {
	txRunner TxRunner
}

// NewWriteOffExpiredUseCase construye el caso de uso.
func NewWriteOffExpiredUseCase(txRunner TxRunner) *WriteOffExpiredUseCase {
	return &WriteOffExpiredUseCase{txRunner: txRunner}
}

// WrittenOffBatch resultado de la baja de un lote.
type WrittenOffBatch struct {
	BatchID     string
	BatchNumber string
	DrugID      string
	Quantity    int // unidades dadas de baja
	ExpDate     *time.Time
}

// WriteOffExpired busca (y bloquea) todo lote activo ya vencido con stock y
// lo da de baja. Devuelve los lotes afectados; lista vacía si no había nada
// vencido.
func (uc *WriteOffExpiredUseCase) WriteOffExpired(ctx context.Context, employeeID string) ([]WrittenOffBatch, error) {
	if employeeID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result []WrittenOffBatch
	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		txnRepo repository.StockTransactionRepository,
	) error {
		now := time.Now()
		expired, err := batchRepo.ListExpiredForUpdate(now)
		if err != nil {
			return &domain.StorageError{Op: "list expired batches", Err: err}
		}
		result = make([]WrittenOffBatch, 0, len(expired))
		for _, b := range expired {
			if err := batchRepo.UpdateQuantity(b.ID, 0, now); err != nil {
				return &domain.StorageError{Op: "zero expired batch", Err: err}
			}
			if err := batchRepo.Deactivate(b.ID, now); err != nil {
				return &domain.StorageError{Op: "deactivate expired batch", Err: err}
			}
			txn := &entity.StockTransaction{
				ID:         uuid.New().String(),
				BatchID:    b.ID,
				EmployeeID: employeeID,
				TransType:  entity.TransTypeEXPIRED,
				Quantity:   b.QuantityInStock,
				Notes:      fmt.Sprintf("Expired write-off: %d units, Batch %s", b.QuantityInStock, b.BatchNumber),
				CreatedAt:  now,
			}
			if err := txnRepo.Create(txn); err != nil {
				return &domain.StorageError{Op: "create EXPIRED transaction", Err: err}
			}
			result = append(result, WrittenOffBatch{
				BatchID:     b.ID,
				BatchNumber: b.BatchNumber,
				DrugID:      b.DrugID,
				Quantity:    b.QuantityInStock,
				ExpDate:     b.ExpDate,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
