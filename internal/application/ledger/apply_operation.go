package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ApplyOperationUseCase registra operaciones de inventario de forma
// transaccional (receipt, delivery, transfer, adjustment) con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback. Es el único camino del sistema que
// muta Product.Quantity.
type ApplyOperationUseCase struct {
	txRunner TxRunner
}

// NewApplyOperationUseCase construye el caso de uso.
func NewApplyOperationUseCase(txRunner TxRunner) *ApplyOperationUseCase {
	return &ApplyOperationUseCase{txRunner: txRunner}
}

// OperationInputDTO entrada para registrar una operación de inventario.
// Quantity es magnitud positiva; el signo se deriva del tipo, nunca lo aporta
// el caller.
type OperationInputDTO struct {
	Type      string
	ProductID string
	Quantity  int
	Reason    string
	UserID    string
}

// DeriveDelta política fija de signos: receipt suma, delivery y transfer
// restan (solo se modela el tramo de salida), adjustment aplica la magnitud
// como positiva — una corrección a la baja no puede expresarse por esta vía.
func DeriveDelta(opType string, quantity int) int {
	switch opType {
	case entity.OperationTypeReceipt:
		return quantity
	case entity.OperationTypeDelivery, entity.OperationTypeTransfer:
		return -quantity
	case entity.OperationTypeAdjustment:
		return quantity
	}
	return 0
}

// ApplyOperation inicia una transacción, bloquea la fila del producto
// (SELECT FOR UPDATE), aplica el delta a la existencia y persiste Operation y
// LedgerEntry con el balance resultante. Todo o nada: cualquier fallo hace
// Rollback y no queda ni cantidad actualizada ni asiento suelto.
func (uc *ApplyOperationUseCase) ApplyOperation(ctx context.Context, input OperationInputDTO) (*entity.Operation, error) {
	if !entity.ValidOperationType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	delta := DeriveDelta(input.Type, input.Quantity)
	now := time.Now()

	var op *entity.Operation
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		opRepo repository.OperationRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		// Bloquea la fila del producto: dos operaciones concurrentes sobre el
		// mismo producto serializan su lectura/escritura de Quantity.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		newQuantity := product.Quantity + delta
		if err := productRepo.UpdateQuantity(product.ID, newQuantity); err != nil {
			return err
		}

		op = &entity.Operation{
			ID:          uuid.New().String(),
			Type:        input.Type,
			ProductID:   input.ProductID,
			Quantity:    input.Quantity,
			Reason:      input.Reason,
			PerformedBy: input.UserID,
			Date:        now,
			CreatedAt:   now,
		}
		if err := opRepo.Create(op); err != nil {
			return err
		}

		entry := &entity.LedgerEntry{
			ID:           uuid.New().String(),
			OperationID:  op.ID,
			ProductID:    input.ProductID,
			Change:       delta,
			BalanceAfter: newQuantity,
			CreatedAt:    now,
		}
		return ledgerRepo.Create(entry)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	return op, nil
}
