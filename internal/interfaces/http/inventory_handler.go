package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// InventoryHandler maneja las operaciones de stock: recepción, deducción FEFO,
// ajuste, baja por vencimiento, lotes y alertas (protegido).
type InventoryHandler struct {
	deduct   *inventory.DeductStockUseCase
	stockIn  *inventory.StockInUseCase
	adjust   *inventory.AdjustStockUseCase
	writeOff *inventory.WriteOffExpiredUseCase
	queries  *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	deduct *inventory.DeductStockUseCase,
	stockIn *inventory.StockInUseCase,
	adjust *inventory.AdjustStockUseCase,
	writeOff *inventory.WriteOffExpiredUseCase,
	queries *inventory.QueryUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		deduct:   deduct,
		stockIn:  stockIn,
		adjust:   adjust,
		writeOff: writeOff,
		queries:  queries,
	}
}

// StockIn godoc
// @Summary      Recibir un lote nuevo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "drug_id, batch_number, quantity, precios y fechas opcionales"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	batch, err := h.stockIn.ReceiveStock(c.Context(), inventory.StockInInput{
		DrugID:       in.DrugID,
		SupplierID:   in.SupplierID,
		BatchNumber:  in.BatchNumber,
		Quantity:     in.Quantity,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		MfgDate:      in.MfgDate,
		ExpDate:      in.ExpDate,
		EmployeeID:   employeeID,
		ReferenceNo:  in.ReferenceNo,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchResponse{
		BatchID:         batch.ID,
		DrugID:          batch.DrugID,
		SupplierID:      batch.SupplierID,
		BatchNumber:     batch.BatchNumber,
		QuantityInStock: batch.QuantityInStock,
		CostPrice:       batch.CostPrice,
		SellingPrice:    batch.SellingPrice,
		MfgDate:         batch.MfgDate,
		ExpDate:         batch.ExpDate,
		IsActive:        batch.IsActive,
		CreatedAt:       batch.CreatedAt,
	})
}

// StockOut godoc
// @Summary      Deducción FEFO directa (salida administrativa)
// @Description  Descuenta del stock del medicamento consumiendo primero los
//
//	lotes que antes vencen. Devuelve el plan de deducción lote a lote.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "drug_id, quantity, reference_no opcional"
// @Success      200   {object}  dto.DeductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.deduct.DeductStock(c.Context(), inventory.DeductStockInput{
		DrugID:      in.DrugID,
		Quantity:    in.Quantity,
		EmployeeID:  employeeID,
		ReferenceNo: in.ReferenceNo,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	resp := dto.DeductionResponse{
		DrugID:      in.DrugID,
		Quantity:    in.Quantity,
		ReferenceNo: in.ReferenceNo,
		Plan:        make([]dto.PlanEntryDTO, 0, len(plan)),
	}
	for _, p := range plan {
		resp.Plan = append(resp.Plan, dto.PlanEntryDTO{
			BatchID:      p.BatchID,
			BatchNumber:  p.BatchNumber,
			DeductedQty:  p.DeductedQty,
			RemainingQty: p.RemainingQty,
			ExpDate:      p.ExpDate,
		})
	}
	return c.JSON(resp)
}

// Adjust godoc
// @Summary      Ajuste manual de la cantidad de un lote
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "batch_id, new_quantity (absoluto, >= 0), reason"
// @Success      200   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	oldQty, newQty, err := h.adjust.AdjustQuantity(c.Context(), inventory.AdjustInput{
		BatchID:     in.BatchID,
		NewQuantity: in.NewQuantity,
		Reason:      in.Reason,
		EmployeeID:  employeeID,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.AdjustResponse{BatchID: in.BatchID, OldQuantity: oldQty, NewQuantity: newQty})
}

// WriteOffExpired godoc
// @Summary      Dar de baja todos los lotes vencidos
// @Description  Pone en cero y desactiva los lotes vencidos con stock;
//
//	registra un asiento EXPIRED por cada uno.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.WrittenOffBatchDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/write-off-expired [post]
func (h *InventoryHandler) WriteOffExpired(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	result, err := h.writeOff.WriteOffExpired(c.Context(), employeeID)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.WrittenOffBatchDTO, 0, len(result))
	for _, b := range result {
		out = append(out, dto.WrittenOffBatchDTO{
			BatchID:     b.BatchID,
			BatchNumber: b.BatchNumber,
			DrugID:      b.DrugID,
			Quantity:    b.Quantity,
			ExpDate:     b.ExpDate,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "written_off": out})
}

// ListBatches godoc
// @Summary      Listar lotes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        drug_id       query  string  false  "Filtrar por medicamento"
// @Param        supplier_id   query  string  false  "Filtrar por proveedor"
// @Param        expiring_only query  bool    false  "Solo lotes que vencen en 30 días"
// @Param        limit         query  int     false  "Tamaño de página (max 100)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.BatchListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListBatches(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	resp, err := h.queries.ListBatches(repository.BatchFilter{
		DrugID:       c.Query("drug_id"),
		SupplierID:   c.Query("supplier_id"),
		ExpiringOnly: c.QueryBool("expiring_only"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// GetBatch godoc
// @Summary      Detalle de un lote
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "Batch ID"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetBatch(c *fiber.Ctx) error {
	resp, err := h.queries.GetBatch(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// GetAlerts godoc
// @Summary      Alertas de stock bajo y vencimiento próximo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertsResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) GetAlerts(c *fiber.Ctx) error {
	resp, err := h.queries.GetAlerts()
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}
