package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// DeliveryRepository define el puerto de persistencia para Delivery y sus items.
// ReplaceItems descarta el set anterior y escribe el nuevo (sin merge parcial).
type DeliveryRepository interface {
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	// GetForUpdate bloquea la cabecera para update (SELECT FOR UPDATE);
	// serializa cambios de estado concurrentes sobre la misma entrega.
	GetForUpdate(id string) (*entity.Delivery, error)
	UpdateHeader(delivery *entity.Delivery) error
	ReplaceItems(deliveryID string, items []entity.DeliveryItem) error
	UpdateStatus(deliveryID, status string) error
	List(status string, limit, offset int) ([]*entity.Delivery, error)
	Delete(id string) error
}
