package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// CreateOrderUseCase crea una orden de venta descontando stock vía FEFO por
// cada línea, todo dentro de UNA transacción: ninguna orden parcial queda
// persistida si alguna línea falla después de que otras ya descontaron.
type CreateOrderUseCase struct {
	txRunner     SalesTxRunner
	deductor     StockDeductor
	medicineRepo repository.MedicineRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner SalesTxRunner,
	deductor StockDeductor,
	medicineRepo repository.MedicineRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{txRunner: txRunner, deductor: deductor, medicineRepo: medicineRepo}
}

// CreateOrder valida las líneas, ejecuta la deducción FEFO de cada una y
// persiste cabecera y líneas, todo o nada.
//
// El precio unitario de cada línea sale del primer lote que su plan consumió
// (releído dentro de la misma transacción); si ese lote no tiene precio de
// venta, se cobra cero.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, employeeID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if employeeID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if item.DrugID == "" {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validar medicamentos fuera de la tx (solo lectura).
	drugNames := make(map[string]string, len(in.Items))
	for _, item := range in.Items {
		med, err := uc.medicineRepo.GetByID(item.DrugID)
		if err != nil {
			return nil, &domain.StorageError{Op: "get medicine", Err: err}
		}
		if med == nil || !med.IsActive {
			return nil, domain.ErrNotFound
		}
		drugNames[item.DrugID] = med.DrugName
	}

	now := time.Now()
	referenceNo := "SO-" + now.UTC().Format("20060102150405")
	orderID := uuid.New().String()

	var respItems []dto.OrderItemResponse
	total := decimal.Zero

	err := uc.txRunner.RunSales(ctx, func(
		batchRepo repository.BatchRepository,
		txnRepo repository.StockTransactionRepository,
		orderRepo repository.SalesOrderRepository,
	) error {
		respItems = respItems[:0]
		total = decimal.Zero
		orderItems := make([]*entity.SalesOrderItem, 0, len(in.Items))

		for _, item := range in.Items {
			plan, err := uc.deductor.DeductInTx(batchRepo, txnRepo, appinventory.DeductStockInput{
				DrugID:      item.DrugID,
				Quantity:    item.Quantity,
				EmployeeID:  employeeID,
				ReferenceNo: referenceNo,
			}, now)
			if err != nil {
				return err // revierte la orden completa
			}

			// Precio del lote realmente consumido (releído en la misma tx).
			first := plan[0]
			consumed, err := batchRepo.GetByID(first.BatchID)
			if err != nil {
				return &domain.StorageError{Op: "reload consumed batch", Err: err}
			}
			unitPrice := decimal.Zero
			if consumed != nil && consumed.SellingPrice != nil {
				unitPrice = *consumed.SellingPrice
			}
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)

			orderItems = append(orderItems, &entity.SalesOrderItem{
				ID:        uuid.New().String(),
				OrderID:   orderID,
				BatchID:   first.BatchID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				CreatedAt: now,
			})
			respItems = append(respItems, dto.OrderItemResponse{
				DrugID:    item.DrugID,
				DrugName:  drugNames[item.DrugID],
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
				LineTotal: lineTotal,
				Plan:      toPlanDTOs(plan),
			})
		}

		order := &entity.SalesOrder{
			ID:            orderID,
			EmployeeID:    employeeID,
			CustomerInfo:  in.CustomerInfo,
			TotalAmount:   total,
			PaymentMethod: in.PaymentMethod,
			Status:        entity.OrderStatusCompleted,
			ReferenceNo:   referenceNo,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := orderRepo.Create(order, orderItems); err != nil {
			return &domain.StorageError{Op: "create sales order", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.OrderResponse{
		OrderID:       orderID,
		EmployeeID:    employeeID,
		CustomerInfo:  in.CustomerInfo,
		TotalAmount:   total,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.OrderStatusCompleted,
		ReferenceNo:   referenceNo,
		Items:         respItems,
		CreatedAt:     now,
	}, nil
}

func toPlanDTOs(plan []entity.DeductionPlanEntry) []dto.PlanEntryDTO {
	out := make([]dto.PlanEntryDTO, 0, len(plan))
	for _, p := range plan {
		out = append(out, dto.PlanEntryDTO{
			BatchID:      p.BatchID,
			BatchNumber:  p.BatchNumber,
			DeductedQty:  p.DeductedQty,
			RemainingQty: p.RemainingQty,
			ExpDate:      p.ExpDate,
		})
	}
	return out
}
