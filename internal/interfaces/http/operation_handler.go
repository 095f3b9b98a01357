package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/domain"
)

// OperationHandler expone el motor de operaciones de inventario.
type OperationHandler struct {
	applyUC *ledger.ApplyOperationUseCase
}

// NewOperationHandler construye el handler.
func NewOperationHandler(applyUC *ledger.ApplyOperationUseCase) *OperationHandler {
	return &OperationHandler{applyUC: applyUC}
}

// Apply godoc
// @Summary      Registrar operación de inventario
// @Description  Aplica receipt, delivery, transfer o adjustment sobre un producto. Actualiza la existencia y registra el asiento del libro en una sola transacción.
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyOperationRequest  true  "type, product_id, quantity, reason"
// @Success      201   {object}  dto.OperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/operations [post]
func (h *OperationHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	op, err := h.applyUC.ApplyOperation(c.Context(), ledger.OperationInputDTO{
		Type:      in.Type,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de operación inválido o cantidad no positiva"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "TRANSACTION_FAILED", Message: "la operación no pudo completarse"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OperationResponse{
		ID:          op.ID,
		Type:        op.Type,
		ProductID:   op.ProductID,
		Quantity:    op.Quantity,
		Reason:      op.Reason,
		PerformedBy: op.PerformedBy,
		Date:        op.Date,
	})
}
