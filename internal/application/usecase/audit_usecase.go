package usecase

import (
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// AuditUseCase lectura del rastro de auditoría: operaciones registradas,
// asientos del libro por producto e historial de movimientos físicos.
type AuditUseCase struct {
	opRepo      repository.OperationRepository
	ledgerRepo  repository.LedgerRepository
	historyRepo repository.MoveHistoryRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(
	opRepo repository.OperationRepository,
	ledgerRepo repository.LedgerRepository,
	historyRepo repository.MoveHistoryRepository,
) *AuditUseCase {
	return &AuditUseCase{opRepo: opRepo, ledgerRepo: ledgerRepo, historyRepo: historyRepo}
}

// ListOperations lista operaciones, opcionalmente filtradas por producto.
func (uc *AuditUseCase) ListOperations(productID string, limit, offset int) (*dto.OperationListResponse, error) {
	var (
		list []*entity.Operation
		err  error
	)
	if productID != "" {
		list, err = uc.opRepo.ListByProduct(productID, limit, offset)
	} else {
		list, err = uc.opRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.OperationResponse, 0, len(list))
	for _, op := range list {
		items = append(items, toOperationResponse(op))
	}
	return &dto.OperationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListLedgerByProduct lista los asientos del libro de un producto.
func (uc *AuditUseCase) ListLedgerByProduct(productID string, limit, offset int) (*dto.LedgerListResponse, error) {
	list, err := uc.ledgerRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toLedgerEntryResponse(e))
	}
	return &dto.LedgerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListMoveHistory lista el historial de reubicaciones completadas.
func (uc *AuditUseCase) ListMoveHistory(limit, offset int) (*dto.MoveHistoryListResponse, error) {
	list, err := uc.historyRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MoveHistoryResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MoveHistoryResponse{
			ID:             m.ID,
			Reference:      m.Reference,
			Date:           m.Date,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Contact:        m.Contact,
			DeliveryID:     m.DeliveryID,
		})
	}
	return &dto.MoveHistoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toOperationResponse(op *entity.Operation) dto.OperationResponse {
	return dto.OperationResponse{
		ID:          op.ID,
		Type:        op.Type,
		ProductID:   op.ProductID,
		Quantity:    op.Quantity,
		Reason:      op.Reason,
		PerformedBy: op.PerformedBy,
		Date:        op.Date,
	}
}

func toLedgerEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:           e.ID,
		OperationID:  e.OperationID,
		ProductID:    e.ProductID,
		Change:       e.Change,
		BalanceAfter: e.BalanceAfter,
		CreatedAt:    e.CreatedAt,
	}
}
