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

// DeductStockUseCase motor de deducción FEFO (First-Expire-First-Out).
//
// Dada una demanda de N unidades de un medicamento, bloquea los lotes
// elegibles (SELECT ... FOR UPDATE), los consume en orden de vencimiento
// ascendente y deja un asiento OUT por cada lote tocado, todo en una sola
// transacción. Dos deducciones concurrentes sobre el mismo medicamento se
// serializan en el bloqueo del conjunto de lotes; sobre medicamentos
// distintos corren en paralelo.
type DeductStockUseCase struct {
	txRunner     TxRunner
	medicineRepo repository.MedicineRepository
}

// NewDeductStockUseCase construye el motor.
func NewDeductStockUseCase(txRunner TxRunner, medicineRepo repository.MedicineRepository) *DeductStockUseCase {
	return &DeductStockUseCase{txRunner: txRunner, medicineRepo: medicineRepo}
}

// DeductStockInput entrada de una deducción.
type DeductStockInput struct {
	DrugID      string
	Quantity    int
	EmployeeID  string // actor al que se atribuyen los asientos
	ReferenceNo string // opcional: etiqueta externa propagada a cada asiento
}

// DeductStock valida, abre la transacción y ejecuta la deducción.
//
// Errores:
//   - domain.ErrInvalidQuantity si Quantity <= 0 (sin efectos, sin lock).
//   - domain.ErrNotFound si el medicamento no existe o está inactivo.
//   - *domain.InsufficientStockError si el stock elegible no alcanza
//     (detectado con el lock tomado, cero mutaciones).
//   - *domain.StorageError ante fallos de infraestructura (todo revertido,
//     reintento seguro).
func (uc *DeductStockUseCase) DeductStock(ctx context.Context, in DeductStockInput) ([]entity.DeductionPlanEntry, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.DrugID == "" || in.EmployeeID == "" {
		return nil, domain.ErrInvalidInput
	}
	med, err := uc.medicineRepo.GetByID(in.DrugID)
	if err != nil {
		return nil, &domain.StorageError{Op: "get medicine", Err: err}
	}
	if med == nil || !med.IsActive {
		return nil, domain.ErrNotFound
	}

	var plan []entity.DeductionPlanEntry
	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		txnRepo repository.StockTransactionRepository,
	) error {
		p, err := uc.DeductInTx(batchRepo, txnRepo, in, time.Now())
		if err != nil {
			return err
		}
		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// DeductInTx ejecuta la deducción con los repositorios del caller (misma
// transacción). Lo usa DeductStock y también la creación de órdenes de venta,
// que corre todas sus líneas dentro de UNA transacción externa: si cualquier
// línea falla, la orden completa se revierte.
//
// Precondiciones del caller: in validado (Quantity > 0, medicamento existente)
// y now fijado una sola vez por operación.
func (uc *DeductStockUseCase) DeductInTx(
	batchRepo repository.BatchRepository,
	txnRepo repository.StockTransactionRepository,
	in DeductStockInput,
	now time.Time,
) ([]entity.DeductionPlanEntry, error) {
	// Bloquea el conjunto de lotes elegibles: activos, sin vencer (o sin
	// fecha de vencimiento) y con stock, ordenados por vencimiento ascendente
	// con nulls al final y desempate por id.
	batches, err := batchRepo.ListEligibleForUpdate(in.DrugID, now)
	if err != nil {
		return nil, &domain.StorageError{Op: "list eligible batches", Err: err}
	}

	total := 0
	for _, b := range batches {
		total += b.QuantityInStock
	}
	if total < in.Quantity {
		// Con el lock tomado pero sin haber mutado nada: el rollback deja
		// cero efectos observables.
		return nil, &domain.InsufficientStockError{Available: total, Requested: in.Quantity}
	}

	plan := make([]entity.DeductionPlanEntry, 0, len(batches))
	remaining := in.Quantity
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		take := b.QuantityInStock
		if take > remaining {
			take = remaining
		}

		if err := batchRepo.DecrementQuantity(b.ID, take, now); err != nil {
			return nil, &domain.StorageError{Op: "decrement batch quantity", Err: err}
		}
		txn := &entity.StockTransaction{
			ID:          uuid.New().String(),
			BatchID:     b.ID,
			EmployeeID:  in.EmployeeID,
			TransType:   entity.TransTypeOUT,
			ReferenceNo: in.ReferenceNo,
			Quantity:    take,
			Notes:       fmt.Sprintf("FEFO deduction: %d units from batch %s", take, b.BatchNumber),
			CreatedAt:   now,
		}
		if err := txnRepo.Create(txn); err != nil {
			return nil, &domain.StorageError{Op: "create OUT transaction", Err: err}
		}

		plan = append(plan, entity.DeductionPlanEntry{
			BatchID:      b.ID,
			BatchNumber:  b.BatchNumber,
			DeductedQty:  take,
			RemainingQty: b.QuantityInStock - take,
			ExpDate:      b.ExpDate,
		})
		remaining -= take
	}
	return plan, nil
}
