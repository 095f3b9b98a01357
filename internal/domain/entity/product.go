package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo físico del inventario identificado por SKU.
// Quantity es la existencia actual; solo el motor de operaciones puede mutarla
// y debe coincidir siempre con el balance del último asiento del libro.
// LocationID es la ubicación física actual (nullable, se mueve al completar entregas).
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	LocationID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
