package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TransactionHandler lectura del libro de movimientos de stock (protegido).
// El libro es append-only: no hay rutas de edición ni borrado.
type TransactionHandler struct {
	queries *inventory.QueryUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(queries *inventory.QueryUseCase) *TransactionHandler {
	return &TransactionHandler{queries: queries}
}

// List godoc
// @Summary      Listar el libro de movimientos
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        batch_id    query  string  false  "Filtrar por lote"
// @Param        drug_id     query  string  false  "Filtrar por medicamento"
// @Param        trans_type  query  string  false  "IN | OUT | ADJUST | EXPIRED"
// @Param        from        query  string  false  "Desde (RFC3339)"
// @Param        to          query  string  false  "Hasta (RFC3339)"
// @Param        limit       query  int     false  "Tamaño de página (max 100)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	f := repository.TransactionFilter{
		BatchID:   c.Query("batch_id"),
		DrugID:    c.Query("drug_id"),
		TransType: c.Query("trans_type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		f.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		f.To = &t
	}

	resp, err := h.queries.ListTransactions(f)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}
