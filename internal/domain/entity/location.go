package entity

import "time"

// Location representa una ubicación dentro de una bodega. Puede tener una
// ubicación padre (estantería dentro de zona, etc.); la jerarquía se valida
// acíclica al escribir, nunca se modela como árbol de punteros.
type Location struct {
	ID               string
	Name             string
	ShortCode        string
	WarehouseID      string
	ParentLocationID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
