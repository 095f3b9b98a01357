package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/domain"
	deliverydomain "github.com/tu-usuario/almacen-api/internal/domain/delivery"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// WorkflowUseCase maneja el ciclo de vida de las entregas: creación en draft,
// edición y borrado solo en draft, y cambios de estado validados contra la
// tabla de transiciones. Al pasar a done reubica los productos de cada línea y
// registra el historial de movimiento en la misma transacción.
type WorkflowUseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	locationRepo repository.LocationRepository
}

// NewWorkflowUseCase construye el caso de uso.
func NewWorkflowUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	locationRepo repository.LocationRepository,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		locationRepo: locationRepo,
	}
}

// ItemInput línea de entrega en la entrada del caso de uso.
type ItemInput struct {
	ProductID string
	Quantity  int
}

// CreateInputDTO entrada para crear una entrega (nace en draft).
type CreateInputDTO struct {
	Reference      string
	FromLocationID string
	ToLocationID   string
	Contact        string
	ScheduleDate   *time.Time
	Items          []ItemInput
	UserID         string
}

// UpdateInputDTO entrada para editar una entrega en draft. Items reemplaza el
// set completo.
type UpdateInputDTO struct {
	FromLocationID string
	ToLocationID   string
	Contact        string
	ScheduleDate   *time.Time
	Items          []ItemInput
}

// validateItems exige cantidades positivas y producto único por entrega.
func validateItems(items []ItemInput) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		if _, dup := seen[it.ProductID]; dup {
			return domain.ErrInvalidInput
		}
		seen[it.ProductID] = struct{}{}
	}
	return nil
}

// Create crea una entrega en draft con sus líneas (puede nacer sin líneas).
// Referencia duplicada retorna ErrDuplicate; ubicaciones inexistentes ErrNotFound.
func (uc *WorkflowUseCase) Create(ctx context.Context, input CreateInputDTO) (*entity.Delivery, error) {
	if input.Reference == "" || input.FromLocationID == "" || input.ToLocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}
	for _, locID := range []string{input.FromLocationID, input.ToLocationID} {
		loc, err := uc.locationRepo.GetByID(locID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	d := &entity.Delivery{
		ID:             uuid.New().String(),
		Reference:      input.Reference,
		FromLocationID: input.FromLocationID,
		ToLocationID:   input.ToLocationID,
		Contact:        input.Contact,
		ScheduleDate:   input.ScheduleDate,
		Status:         deliverydomain.StatusDraft,
		ResponsibleID:  input.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, it := range input.Items {
		d.Items = append(d.Items, entity.DeliveryItem{
			ID:         uuid.New().String(),
			DeliveryID: d.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			CreatedAt:  now,
		})
	}

	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		_ repository.ProductRepository,
		_ repository.MoveHistoryRepository,
	) error {
		return deliveryRepo.Create(d)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	return d, nil
}

// UpdateDraft reemplaza cabecera y líneas de una entrega que sigue en draft.
// El set de líneas anterior se descarta completo; el nuevo queda autoritativo.
func (uc *WorkflowUseCase) UpdateDraft(ctx context.Context, deliveryID string, input UpdateInputDTO) (*entity.Delivery, error) {
	if input.FromLocationID == "" || input.ToLocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	var updated *entity.Delivery
	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		_ repository.ProductRepository,
		_ repository.MoveHistoryRepository,
	) error {
		d, err := deliveryRepo.GetForUpdate(deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != deliverydomain.StatusDraft {
			return domain.ErrInvalidState
		}

		now := time.Now()
		d.FromLocationID = input.FromLocationID
		d.ToLocationID = input.ToLocationID
		d.Contact = input.Contact
		d.ScheduleDate = input.ScheduleDate
		d.UpdatedAt = now
		if err := deliveryRepo.UpdateHeader(d); err != nil {
			return err
		}

		items := make([]entity.DeliveryItem, 0, len(input.Items))
		for _, it := range input.Items {
			items = append(items, entity.DeliveryItem{
				ID:         uuid.New().String(),
				DeliveryID: d.ID,
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				CreatedAt:  now,
			})
		}
		if err := deliveryRepo.ReplaceItems(d.ID, items); err != nil {
			return err
		}
		d.Items = items
		updated = d
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	return updated, nil
}

// ChangeStatus mueve la entrega por el grafo de estados. Si el destino es done,
// en la misma transacción: persiste el estado, crea el registro de historial y
// reubica el producto de cada línea a la ubicación destino. La reubicación no
// toca cantidades ni genera asientos en el libro.
func (uc *WorkflowUseCase) ChangeStatus(ctx context.Context, deliveryID, targetStatus string) (*entity.Delivery, error) {
	if !deliverydomain.ValidStatus(targetStatus) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Delivery
	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		productRepo repository.ProductRepository,
		historyRepo repository.MoveHistoryRepository,
	) error {
		// Bloquea la cabecera: de dos cambios concurrentes solo el primero
		// confirma; el segundo relee el estado ya actualizado y falla la
		// validación de transición.
		d, err := deliveryRepo.GetForUpdate(deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if !deliverydomain.CanTransition(d.Status, targetStatus) {
			return domain.ErrInvalidTransition
		}

		if err := deliveryRepo.UpdateStatus(d.ID, targetStatus); err != nil {
			return err
		}
		d.Status = targetStatus
		d.UpdatedAt = time.Now()

		if targetStatus == deliverydomain.StatusDone {
			now := time.Now()
			entry := &entity.MoveHistory{
				ID:             uuid.New().String(),
				Reference:      d.Reference,
				Date:           now,
				FromLocationID: d.FromLocationID,
				ToLocationID:   d.ToLocationID,
				Contact:        d.Contact,
				DeliveryID:     d.ID,
				CreatedAt:      now,
			}
			if err := historyRepo.Create(entry); err != nil {
				return err
			}
			for _, item := range d.Items {
				toLoc := d.ToLocationID
				if err := productRepo.UpdateLocation(item.ProductID, &toLoc); err != nil {
					return err
				}
			}
		}
		updated = d
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	return updated, nil
}

// Delete elimina una entrega que sigue en draft; cualquier otro estado es
// ErrInvalidState.
func (uc *WorkflowUseCase) Delete(ctx context.Context, deliveryID string) error {
	err := uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		_ repository.ProductRepository,
		_ repository.MoveHistoryRepository,
	) error {
		d, err := deliveryRepo.GetForUpdate(deliveryID)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != deliverydomain.StatusDraft {
			return domain.ErrInvalidState
		}
		return deliveryRepo.Delete(d.ID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	return nil
}

// GetByID lectura de una entrega con sus líneas.
func (uc *WorkflowUseCase) GetByID(_ context.Context, deliveryID string) (*entity.Delivery, error) {
	d, err := uc.deliveryRepo.GetByID(deliveryID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// List lectura paginada, con filtro opcional por estado.
func (uc *WorkflowUseCase) List(_ context.Context, status string, limit, offset int) ([]*entity.Delivery, error) {
	if status != "" && !deliverydomain.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.deliveryRepo.List(status, limit, offset)
}
