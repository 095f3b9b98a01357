package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones. La jerarquía padre/hijo
// se valida acíclica al escribir: se recorre la cadena de padres por id, nunca
// se materializa un árbol de punteros.
type LocationUseCase struct {
	repo          repository.LocationRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, warehouseRepo repository.WarehouseRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// Create crea una ubicación dentro de una bodega existente.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || in.ShortCode == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.ParentLocationID != nil {
		parent, err := uc.repo.GetByID(*in.ParentLocationID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	location := &entity.Location{
		ID:               uuid.New().String(),
		Name:             in.Name,
		ShortCode:        in.ShortCode,
		WarehouseID:      in.WarehouseID,
		ParentLocationID: in.ParentLocationID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// Update actualiza una ubicación; un nuevo padre se valida contra ciclos.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.ShortCode != nil {
		location.ShortCode = *in.ShortCode
	}
	if in.ParentLocationID != nil {
		if err := uc.checkAcyclic(id, *in.ParentLocationID); err != nil {
			return nil, err
		}
		location.ParentLocationID = in.ParentLocationID
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// checkAcyclic recorre la cadena de padres desde parentID; si alcanza id la
// asignación crearía un ciclo.
func (uc *LocationUseCase) checkAcyclic(id, parentID string) error {
	current := parentID
	for current != "" {
		if current == id {
			return domain.ErrLocationCycle
		}
		loc, err := uc.repo.GetByID(current)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
		if loc.ParentLocationID == nil {
			break
		}
		current = *loc.ParentLocationID
	}
	return nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByWarehouse lista las ubicaciones de una bodega.
func (uc *LocationUseCase) ListByWarehouse(warehouseID string) ([]dto.LocationResponse, error) {
	list, err := uc.repo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

// Delete elimina una ubicación por ID.
func (uc *LocationUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:               l.ID,
		Name:             l.Name,
		ShortCode:        l.ShortCode,
		WarehouseID:      l.WarehouseID,
		ParentLocationID: l.ParentLocationID,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
