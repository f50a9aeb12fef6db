package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockInRequest recepción de un lote nuevo.
type StockInRequest struct {
	DrugID       string           `json:"drug_id"`
	SupplierID   string           `json:"supplier_id"`
	BatchNumber  string           `json:"batch_number"`
	Quantity     int              `json:"quantity"`
	CostPrice    *decimal.Decimal `json:"cost_price"`
	SellingPrice *decimal.Decimal `json:"selling_price"`
	MfgDate      *time.Time       `json:"mfg_date"`
	ExpDate      *time.Time       `json:"exp_date"`
	ReferenceNo  string           `json:"reference_no"`
}

// StockOutRequest deducción FEFO directa (salida administrativa).
type StockOutRequest struct {
	DrugID      string `json:"drug_id"`
	Quantity    int    `json:"quantity"`
	ReferenceNo string `json:"reference_no"`
}

// AdjustRequest corrección manual de la cantidad de un lote.
type AdjustRequest struct {
	BatchID     string `json:"batch_id"`
	NewQuantity int    `json:"new_quantity"`
	Reason      string `json:"reason"`
}

// AdjustResponse cantidades antes y después del ajuste.
type AdjustResponse struct {
	BatchID     string `json:"batch_id"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
}

// PlanEntryDTO entrada del plan de deducción, en el orden en que se consumió.
type PlanEntryDTO struct {
	BatchID      string     `json:"batch_id"`
	BatchNumber  string     `json:"batch_number"`
	DeductedQty  int        `json:"deducted_qty"`
	RemainingQty int        `json:"remaining_qty"`
	ExpDate      *time.Time `json:"exp_date,omitempty"`
}

// DeductionResponse plan completo de una deducción.
type DeductionResponse struct {
	DrugID      string         `json:"drug_id"`
	Quantity    int            `json:"quantity"`
	ReferenceNo string         `json:"reference_no,omitempty"`
	Plan        []PlanEntryDTO `json:"plan"`
}

// BatchResponse lote con nombres resueltos.
type BatchResponse struct {
	BatchID         string           `json:"batch_id"`
	DrugID          string           `json:"drug_id"`
	DrugName        string           `json:"drug_name"`
	SupplierID      string           `json:"supplier_id,omitempty"`
	SupplierName    string           `json:"supplier_name,omitempty"`
	BatchNumber     string           `json:"batch_number"`
	QuantityInStock int              `json:"quantity_in_stock"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice    *decimal.Decimal `json:"selling_price,omitempty"`
	MfgDate         *time.Time       `json:"mfg_date,omitempty"`
	ExpDate         *time.Time       `json:"exp_date,omitempty"`
	IsActive        bool             `json:"is_active"`
	IsExpiringSoon  bool             `json:"is_expiring_soon"`
	CreatedAt       time.Time        `json:"created_at"`
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// LowStockAlertDTO medicamento en o bajo su punto de reorden.
type LowStockAlertDTO struct {
	DrugID       string `json:"drug_id"`
	DrugName     string `json:"drug_name"`
	ReorderLevel int    `json:"reorder_level"`
	CurrentStock int    `json:"current_stock"`
}

// ExpiryAlertDTO lote próximo a vencer (ventana de 30 días).
type ExpiryAlertDTO struct {
	BatchID         string    `json:"batch_id"`
	DrugName        string    `json:"drug_name"`
	BatchNumber     string    `json:"batch_number"`
	ExpDate         time.Time `json:"exp_date"`
	QuantityInStock int       `json:"quantity_in_stock"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
}

// AlertsResponse alertas de stock bajo y vencimiento.
type AlertsResponse struct {
	LowStockAlerts []LowStockAlertDTO `json:"low_stock_alerts"`
	ExpiryAlerts   []ExpiryAlertDTO   `json:"expiry_alerts"`
}

// WrittenOffBatchDTO lote dado de baja por vencimiento.
type WrittenOffBatchDTO struct {
	BatchID     string     `json:"batch_id"`
	BatchNumber string     `json:"batch_number"`
	DrugID      string     `json:"drug_id"`
	Quantity    int        `json:"quantity"`
	ExpDate     *time.Time `json:"exp_date,omitempty"`
}

// TransactionResponse asiento del libro de movimientos.
type TransactionResponse struct {
	TransactionID string    `json:"transaction_id"`
	BatchID       string    `json:"batch_id"`
	BatchNumber   string    `json:"batch_number"`
	DrugName      string    `json:"drug_name"`
	EmployeeName  string    `json:"employee_name"`
	TransType     string    `json:"trans_type"`
	ReferenceNo   string    `json:"reference_no,omitempty"`
	Quantity      int       `json:"quantity"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionListResponse listado paginado del libro.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
