package inventory

import (
	"time"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// Ventana de "próximo a vencer" para listados y alertas.
const expiringSoonDays = 30

// QueryUseCase lecturas de inventario: listado de lotes, detalle, alertas y
// libro de movimientos. Usa repositorios atados al pool (fuera de transacción).
type QueryUseCase struct {
	batchRepo    repository.BatchRepository
	txnRepo      repository.StockTransactionRepository
	medicineRepo repository.MedicineRepository
}

// NewQueryUseCase construye el caso de uso de lecturas.
func NewQueryUseCase(
	batchRepo repository.BatchRepository,
	txnRepo repository.StockTransactionRepository,
	medicineRepo repository.MedicineRepository,
) *QueryUseCase {
	return &QueryUseCase{batchRepo: batchRepo, txnRepo: txnRepo, medicineRepo: medicineRepo}
}

// ListBatches lotes con filtros y paginación, ordenados por vencimiento (FEFO).
func (uc *QueryUseCase) ListBatches(f repository.BatchFilter) (*dto.BatchListResponse, error) {
	rows, err := uc.batchRepo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toBatchResponse(r))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// GetBatch detalle de un lote.
func (uc *QueryUseCase) GetBatch(id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	med, err := uc.medicineRepo.GetByID(batch.DrugID)
	if err != nil {
		return nil, err
	}
	row := repository.BatchListRow{Batch: *batch}
	if med != nil {
		row.DrugName = med.DrugName
	}
	resp := toBatchResponse(row)
	return &resp, nil
}

// GetAlerts alertas de stock bajo y de vencimiento (ventana de 30 días).
func (uc *QueryUseCase) GetAlerts() (*dto.AlertsResponse, error) {
	lowStock, err := uc.medicineRepo.ListLowStock()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	threshold := now.AddDate(0, 0, expiringSoonDays)
	expiring, err := uc.batchRepo.ListExpiring(threshold)
	if err != nil {
		return nil, err
	}

	resp := &dto.AlertsResponse{
		LowStockAlerts: make([]dto.LowStockAlertDTO, 0, len(lowStock)),
		ExpiryAlerts:   make([]dto.ExpiryAlertDTO, 0, len(expiring)),
	}
	for _, m := range lowStock {
		resp.LowStockAlerts = append(resp.LowStockAlerts, dto.LowStockAlertDTO{
			DrugID:       m.DrugID,
			DrugName:     m.DrugName,
			ReorderLevel: m.ReorderLevel,
			CurrentStock: m.CurrentStock,
		})
	}
	for _, r := range expiring {
		if r.Batch.ExpDate == nil {
			continue
		}
		days := int(r.Batch.ExpDate.Sub(now).Hours() / 24)
		resp.ExpiryAlerts = append(resp.ExpiryAlerts, dto.ExpiryAlertDTO{
			BatchID:         r.Batch.ID,
			DrugName:        r.DrugName,
			BatchNumber:     r.Batch.BatchNumber,
			ExpDate:         *r.Batch.ExpDate,
			QuantityInStock: r.Batch.QuantityInStock,
			DaysUntilExpiry: days,
		})
	}
	return resp, nil
}

// ListTransactions libro de movimientos con filtros, más reciente primero.
func (uc *QueryUseCase) ListTransactions(f repository.TransactionFilter) (*dto.TransactionListResponse, error) {
	rows, err := uc.txnRepo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.TransactionResponse{
			TransactionID: r.Transaction.ID,
			BatchID:       r.Transaction.BatchID,
			BatchNumber:   r.BatchNumber,
			DrugName:      r.DrugName,
			EmployeeName:  r.EmployeeName,
			TransType:     r.Transaction.TransType,
			ReferenceNo:   r.Transaction.ReferenceNo,
			Quantity:      r.Transaction.Quantity,
			Notes:         r.Transaction.Notes,
			CreatedAt:     r.Transaction.CreatedAt,
		})
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

func toBatchResponse(r repository.BatchListRow) dto.BatchResponse {
	b := r.Batch
	expSoon := false
	if b.ExpDate != nil {
		expSoon = !b.ExpDate.After(time.Now().AddDate(0, 0, expiringSoonDays))
	}
	return dto.BatchResponse{
		BatchID:         b.ID,
		DrugID:          b.DrugID,
		DrugName:        r.DrugName,
		SupplierID:      b.SupplierID,
		SupplierName:    r.SupplierName,
		BatchNumber:     b.BatchNumber,
		QuantityInStock: b.QuantityInStock,
		CostPrice:       b.CostPrice,
		SellingPrice:    b.SellingPrice,
		MfgDate:         b.MfgDate,
		ExpDate:         b.ExpDate,
		IsActive:        b.IsActive,
		IsExpiringSoon:  expSoon,
		CreatedAt:       b.CreatedAt,
	}
}
