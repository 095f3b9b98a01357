package ledger

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor del libro:
// actualización de existencia, Operation y LedgerEntry se confirman juntos o
// ninguno queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		opRepo repository.OperationRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
