package dto

import "time"

// DeliveryItemRequest línea de entrega en requests.
type DeliveryItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateDeliveryRequest body para POST /api/deliveries. Nace en draft.
type CreateDeliveryRequest struct {
	Reference      string                `json:"reference"`
	FromLocationID string                `json:"from_location_id"`
	ToLocationID   string                `json:"to_location_id"`
	Contact        string                `json:"contact,omitempty"`
	ScheduleDate   *time.Time            `json:"schedule_date,omitempty"`
	Items          []DeliveryItemRequest `json:"items,omitempty"`
}

// UpdateDeliveryRequest body para PUT /api/deliveries/:id (solo en draft).
// Items reemplaza el set completo: lo anterior se descarta.
type UpdateDeliveryRequest struct {
	FromLocationID string                `json:"from_location_id"`
	ToLocationID   string                `json:"to_location_id"`
	Contact        string                `json:"contact,omitempty"`
	ScheduleDate   *time.Time            `json:"schedule_date,omitempty"`
	Items          []DeliveryItemRequest `json:"items"`
}

// ChangeStatusRequest body para PUT /api/deliveries/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"` // draft | waiting | ready | done
}

// DeliveryItemResponse línea de entrega en respuestas.
type DeliveryItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// DeliveryResponse representación de una entrega con sus items.
type DeliveryResponse struct {
	ID             string                 `json:"id"`
	Reference      string                 `json:"reference"`
	FromLocationID string                 `json:"from_location_id"`
	ToLocationID   string                 `json:"to_location_id"`
	Contact        string                 `json:"contact,omitempty"`
	ScheduleDate   *time.Time             `json:"schedule_date,omitempty"`
	Status         string                 `json:"status"`
	ResponsibleID  string                 `json:"responsible_id"`
	Items          []DeliveryItemResponse `json:"items"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// DeliveryListResponse listado paginado de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MoveHistoryResponse registro de reubicación completada.
type MoveHistoryResponse struct {
	ID             string    `json:"id"`
	Reference      string    `json:"reference"`
	Date           time.Time `json:"date"`
	FromLocationID string    `json:"from_location_id"`
	ToLocationID   string    `json:"to_location_id"`
	Contact        string    `json:"contact,omitempty"`
	DeliveryID     string    `json:"delivery_id"`
}

// MoveHistoryListResponse listado paginado del historial de movimientos.
type MoveHistoryListResponse struct {
	Items []MoveHistoryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
