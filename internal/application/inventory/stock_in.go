package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// StockInUseCase recepción de mercancía: crea un lote nuevo y deja un asiento
// IN. Independiente del motor FEFO, salvo que crea los lotes que el motor
// luego consume.
type StockInUseCase struct {
	txRunner     TxRunner
	medicineRepo repository.MedicineRepository
	supplierRepo repository.SupplierRepository
}

// NewStockInUseCase construye el caso de uso.
func NewStockInUseCase(
	txRunner TxRunner,
	medicineRepo repository.MedicineRepository,
	supplierRepo repository.SupplierRepository,
) *StockInUseCase {
	return &StockInUseCase{txRunner: txRunner, medicineRepo: medicineRepo, supplierRepo: supplierRepo}
}

// StockInInput entrada de una recepción de lote.
type StockInInput struct {
	DrugID       string
	SupplierID   string // opcional
	BatchNumber  string
	Quantity     int
	CostPrice    *decimal.Decimal
	SellingPrice *decimal.Decimal
	MfgDate      *time.Time
	ExpDate      *time.Time
	EmployeeID   string
	ReferenceNo  string // opcional
}

// ReceiveStock valida drug/supplier, crea el lote con la cantidad dada y
// escribe un asiento IN, ambos en la misma transacción.
func (uc *StockInUseCase) ReceiveStock(ctx context.Context, in StockInInput) (*entity.InventoryBatch, error) {
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
	if in.SupplierID != "" {
		sup, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, &domain.StorageError{Op: "get supplier", Err: err}
		}
		if sup == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	batch := &entity.InventoryBatch{
		ID:              uuid.New().String(),
		DrugID:          in.DrugID,
		SupplierID:      in.SupplierID,
		BatchNumber:     in.BatchNumber,
		QuantityInStock: in.Quantity,
		CostPrice:       in.CostPrice,
		SellingPrice:    in.SellingPrice,
		MfgDate:         in.MfgDate,
		ExpDate:         in.ExpDate,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.BatchRepository,
		txnRepo repository.StockTransactionRepository,
	) error {
		if err := batchRepo.Create(batch); err != nil {
			return &domain.StorageError{Op: "create batch", Err: err}
		}
		txn := &entity.StockTransaction{
			ID:          uuid.New().String(),
			BatchID:     batch.ID,
			EmployeeID:  in.EmployeeID,
			TransType:   entity.TransTypeIN,
			ReferenceNo: in.ReferenceNo,
			Quantity:    in.Quantity,
			Notes:       fmt.Sprintf("Stock-in: %d units, Batch %s", in.Quantity, in.BatchNumber),
			CreatedAt:   now,
		}
		if err := txnRepo.Create(txn); err != nil {
			return &domain.StorageError{Op: "create IN transaction", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}
