package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name             string  `json:"name"`
	ShortCode        string  `json:"short_code"`
	WarehouseID      string  `json:"warehouse_id"`
	ParentLocationID *string `json:"parent_location_id,omitempty"`
}

// UpdateLocationRequest body para PUT /api/locations/:id.
type UpdateLocationRequest struct {
	Name             *string `json:"name,omitempty"`
	ShortCode        *string `json:"short_code,omitempty"`
	ParentLocationID *string `json:"parent_location_id,omitempty"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ShortCode        string    `json:"short_code"`
	WarehouseID      string    `json:"warehouse_id"`
	ParentLocationID *string   `json:"parent_location_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LocationListResponse listado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
