package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	appdelivery "github.com/tu-usuario/almacen-api/internal/application/delivery"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// DeliveryHandler expone el ciclo de vida de las entregas.
type DeliveryHandler struct {
	uc *appdelivery.WorkflowUseCase
}

// NewDeliveryHandler construye el handler.
func NewDeliveryHandler(uc *appdelivery.WorkflowUseCase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear entrega
// @Description  Crea una entrega en estado draft con sus líneas.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeliveryRequest  true  "reference, ubicaciones, items"
// @Success      201   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliveries [post]
func (h *DeliveryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	d, err := h.uc.Create(c.Context(), appdelivery.CreateInputDTO{
		Reference:      in.Reference,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Contact:        in.Contact,
		ScheduleDate:   in.ScheduleDate,
		Items:          toItemInputs(in.Items),
		UserID:         GetUserID(c),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDeliveryResponse(d))
}

// Update godoc
// @Summary      Editar entrega en draft
// @Description  Reemplaza cabecera y set completo de líneas. Solo permitido mientras la entrega está en draft.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Delivery ID"
// @Param        body  body  dto.UpdateDeliveryRequest  true  "cabecera e items"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliveries/{id} [put]
func (h *DeliveryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	d, err := h.uc.UpdateDraft(c.Context(), id, appdelivery.UpdateInputDTO{
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Contact:        in.Contact,
		ScheduleDate:   in.ScheduleDate,
		Items:          toItemInputs(in.Items),
	})
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(toDeliveryResponse(d))
}

// ChangeStatus godoc
// @Summary      Cambiar estado de entrega
// @Description  Mueve la entrega por el grafo draft→waiting→ready→done (con retrocesos waiting→draft y ready→waiting). Al llegar a done reubica los productos y registra el historial de movimiento.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Delivery ID"
// @Param        body  body  dto.ChangeStatusRequest  true  "status destino"
// @Success      200   {object}  dto.DeliveryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliveries/{id}/status [put]
func (h *DeliveryHandler) ChangeStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	d, err := h.uc.ChangeStatus(c.Context(), id, in.Status)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(toDeliveryResponse(d))
}

// Delete godoc
// @Summary      Eliminar entrega en draft
// @Tags         deliveries
// @Produce      json
// @Param        id  path  string  true  "Delivery ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliveries/{id} [delete]
func (h *DeliveryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener entrega
// @Tags         deliveries
// @Produce      json
// @Param        id  path  string  true  "Delivery ID"
// @Success      200  {object}  dto.DeliveryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(toDeliveryResponse(d))
}

// List godoc
// @Summary      Listar entregas
// @Tags         deliveries
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado (draft, waiting, ready, done)"
// @Param        limit   query  int     false  "Límite (default 50)"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.DeliveryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/deliveries [get]
func (h *DeliveryHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	status := c.Query("status")

	list, err := h.uc.List(c.Context(), status, limit, offset)
	if err != nil {
		return h.mapError(c, err)
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toDeliveryResponse(d))
	}
	return c.JSON(dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

func (h *DeliveryHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de entrega inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrega o ubicación no encontrada"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la entrega ya no está en draft"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_REFERENCE", Message: "la referencia ya existe"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "TRANSACTION_FAILED", Message: "la operación no pudo completarse"})
	}
}

func toItemInputs(items []dto.DeliveryItemRequest) []appdelivery.ItemInput {
	out := make([]appdelivery.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, appdelivery.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

func toDeliveryResponse(d *entity.Delivery) dto.DeliveryResponse {
	items := make([]dto.DeliveryItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.DeliveryItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	var schedule *time.Time
	if d.ScheduleDate != nil {
		t := *d.ScheduleDate
		schedule = &t
	}
	return dto.DeliveryResponse{
		ID:             d.ID,
		Reference:      d.Reference,
		FromLocationID: d.FromLocationID,
		ToLocationID:   d.ToLocationID,
		Contact:        d.Contact,
		ScheduleDate:   schedule,
		Status:         d.Status,
		ResponsibleID:  d.ResponsibleID,
		Items:          items,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
