package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest línea solicitada: el lote concreto lo decide FEFO.
type CreateOrderItemRequest struct {
	DrugID   string `json:"drug_id"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest creación de una orden de venta.
type CreateOrderRequest struct {
	CustomerInfo  string                   `json:"customer_info"`
	PaymentMethod string                   `json:"payment_method"`
	Items         []CreateOrderItemRequest `json:"items"`
}

// OrderItemResponse línea vendida con su plan de deducción.
type OrderItemResponse struct {
	DrugID    string          `json:"drug_id"`
	DrugName  string          `json:"drug_name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Plan      []PlanEntryDTO  `json:"plan,omitempty"`
}

// OrderResponse orden de venta completa.
type OrderResponse struct {
	OrderID       string              `json:"order_id"`
	EmployeeID    string              `json:"employee_id"`
	EmployeeName  string              `json:"employee_name,omitempty"`
	CustomerInfo  string              `json:"customer_info,omitempty"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Status        string              `json:"status"`
	ReferenceNo   string              `json:"reference_no"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// OrderSummaryDTO cabecera para listados.
type OrderSummaryDTO struct {
	OrderID       string          `json:"order_id"`
	EmployeeName  string          `json:"employee_name"`
	CustomerInfo  string          `json:"customer_info,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Status        string          `json:"status"`
	ItemCount     int             `json:"item_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderListResponse listado paginado de órdenes.
type OrderListResponse struct {
	Items []OrderSummaryDTO `json:"items"`
	Page  PageResponse      `json:"page"`
}

// OrderDetailItemDTO línea con medicamento y lote resueltos.
type OrderDetailItemDTO struct {
	ItemID      string          `json:"item_id"`
	DrugName    string          `json:"drug_name"`
	BatchNumber string          `json:"batch_number"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderDetailResponse orden con sus líneas.
type OrderDetailResponse struct {
	OrderID       string               `json:"order_id"`
	EmployeeName  string               `json:"employee_name"`
	CustomerInfo  string               `json:"customer_info,omitempty"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	PaymentMethod string               `json:"payment_method,omitempty"`
	Status        string               `json:"status"`
	ReferenceNo   string               `json:"reference_no"`
	Items         []OrderDetailItemDTO `json:"items"`
	CreatedAt     time.Time            `json:"created_at"`
}
