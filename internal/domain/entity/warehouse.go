package entity

import "time"

// Warehouse representa una bodega física que agrupa ubicaciones.
type Warehouse struct {
	ID        string
	Name      string
	ShortCode string // código corto único
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
