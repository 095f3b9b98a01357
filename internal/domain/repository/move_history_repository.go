package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// MoveHistoryRepository define el puerto de persistencia para el historial de
// movimientos físicos. Append-only: nunca update ni delete.
type MoveHistoryRepository interface {
	Create(entry *entity.MoveHistory) error
	List(limit, offset int) ([]*entity.MoveHistory, error)
	GetByDelivery(deliveryID string) (*entity.MoveHistory, error)
}
