package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// OperationRepository define el puerto de persistencia para Operation.
// Solo append y lectura: las operaciones nunca se actualizan ni borran.
type OperationRepository interface {
	Create(op *entity.Operation) error
	GetByID(id string) (*entity.Operation, error)
	List(limit, offset int) ([]*entity.Operation, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Operation, error)
}
