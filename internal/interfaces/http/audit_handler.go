package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// AuditHandler lecturas del rastro de auditoría: operaciones, libro e
// historial de movimientos.
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// ListOperations godoc
// @Summary      Listar operaciones
// @Tags         operations
// @Produce      json
// @Param        product_id  query  string  false  "Filtro por producto"
// @Param        limit       query  int     false  "Límite (default 50)"
// @Param        offset      query  int     false  "Offset"
// @Success      200  {object}  dto.OperationListResponse
// @Security     BearerAuth
// @Router       /api/operations [get]
func (h *AuditHandler) ListOperations(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.ListOperations(c.Query("product_id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListLedger godoc
// @Summary      Libro de un producto
// @Description  Asientos del libro (change y balance_after) del producto, del más reciente al más antiguo.
// @Tags         ledger
// @Produce      json
// @Param        id      path   string  true   "Product ID"
// @Param        limit   query  int     false  "Límite (default 50)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.LedgerListResponse
// @Security     BearerAuth
// @Router       /api/products/{id}/ledger [get]
func (h *AuditHandler) ListLedger(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.ListLedgerByProduct(c.Params("id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListMoveHistory godoc
// @Summary      Historial de movimientos
// @Description  Reubicaciones registradas al completar entregas.
// @Tags         deliveries
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 50)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.MoveHistoryListResponse
// @Security     BearerAuth
// @Router       /api/move-history [get]
func (h *AuditHandler) ListMoveHistory(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	out, err := h.uc.ListMoveHistory(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
