package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// ReceiptPDFUseCase genera el recibo PDF de una orden de venta.
type ReceiptPDFUseCase struct {
	orderRepo repository.SalesOrderRepository
	generator ReceiptPDFGenerator
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(orderRepo repository.SalesOrderRepository, generator ReceiptPDFGenerator) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{orderRepo: orderRepo, generator: generator}
}

// GetReceiptPDF devuelve los bytes del PDF del recibo de la orden.
func (uc *ReceiptPDFUseCase) GetReceiptPDF(_ context.Context, orderID string) ([]byte, error) {
	order, employeeName, items, err := uc.orderRepo.GetDetail(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	pdf, err := uc.generator.GenerateReceiptPDF(order, employeeName, items)
	if err != nil {
		return nil, fmt.Errorf("generar recibo: %w", err)
	}
	return pdf, nil
}
