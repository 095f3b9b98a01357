package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateQuantity y UpdateLocation se usan solo dentro de transacciones: el motor
// de operaciones es el único camino que muta Quantity, y la reubicación por
// entrega el único que muta LocationID.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int) error
	UpdateLocation(productID string, locationID *string) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
