package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// LedgerRepository define el puerto de persistencia para los asientos del libro.
// Append-only; el balance del último asiento por producto debe coincidir con
// Product.Quantity cuando no hay operaciones en vuelo.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error)
	GetLastByProduct(productID string) (*entity.LedgerEntry, error)
	ListRecent(limit int) ([]*entity.LedgerEntry, error)
}
