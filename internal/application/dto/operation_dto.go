package dto

import "time"

// ApplyOperationRequest body para POST /api/operations.
// Quantity es magnitud positiva; el signo lo deriva el motor según Type.
type ApplyOperationRequest struct {
	Type      string `json:"type"` // receipt | delivery | transfer | adjustment
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// OperationResponse representación de una operación registrada.
type OperationResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ProductID   string    `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason,omitempty"`
	PerformedBy string    `json:"performed_by"`
	Date        time.Time `json:"date"`
}

// OperationListResponse listado paginado de operaciones.
type OperationListResponse struct {
	Items []OperationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// LedgerEntryResponse asiento del libro en respuestas.
type LedgerEntryResponse struct {
	ID           string    `json:"id"`
	OperationID  string    `json:"operation_id"`
	ProductID    string    `json:"product_id"`
	Change       int       `json:"change"`
	BalanceAfter int       `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

// LedgerListResponse listado paginado de asientos.
type LedgerListResponse struct {
	Items []LedgerEntryResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
