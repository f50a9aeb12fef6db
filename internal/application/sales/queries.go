package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// OrderQueryUseCase lecturas de órdenes de venta.
type OrderQueryUseCase struct {
	orderRepo repository.SalesOrderRepository
}

// NewOrderQueryUseCase construye el caso de uso de lecturas.
func NewOrderQueryUseCase(orderRepo repository.SalesOrderRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orderRepo: orderRepo}
}

// List órdenes con filtros y paginación, más reciente primero.
func (uc *OrderQueryUseCase) List(f repository.OrderFilter) (*dto.OrderListResponse, error) {
	rows, err := uc.orderRepo.List(f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderSummaryDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.OrderSummaryDTO{
			OrderID:       r.Order.ID,
			EmployeeName:  r.EmployeeName,
			CustomerInfo:  r.Order.CustomerInfo,
			TotalAmount:   r.Order.TotalAmount,
			PaymentMethod: r.Order.PaymentMethod,
			Status:        r.Order.Status,
			ItemCount:     r.ItemCount,
			CreatedAt:     r.Order.CreatedAt,
		})
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// GetDetail orden con sus líneas (medicamento y lote resueltos).
func (uc *OrderQueryUseCase) GetDetail(id string) (*dto.OrderDetailResponse, error) {
	order, employeeName, items, err := uc.orderRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	detail := &dto.OrderDetailResponse{
		OrderID:       order.ID,
		EmployeeName:  employeeName,
		CustomerInfo:  order.CustomerInfo,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		ReferenceNo:   order.ReferenceNo,
		Items:         make([]dto.OrderDetailItemDTO, 0, len(items)),
		CreatedAt:     order.CreatedAt,
	}
	for _, it := range items {
		detail.Items = append(detail.Items, dto.OrderDetailItemDTO{
			ItemID:      it.ItemID,
			DrugName:    it.DrugName,
			BatchNumber: it.BatchNumber,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return detail, nil
}
