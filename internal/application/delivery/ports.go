package delivery

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del flujo de entregas atados a esa tx. El cambio de estado a
// done, el registro de historial y la reubicación de productos se confirman
// juntos o ninguno queda visible.
type TxRunner interface {
	RunDelivery(ctx context.Context, fn func(
		deliveryRepo repository.DeliveryRepository,
		productRepo repository.ProductRepository,
		historyRepo repository.MoveHistoryRepository,
	) error) error
}
