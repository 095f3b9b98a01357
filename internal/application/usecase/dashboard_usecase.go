package usecase

import (
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// DashboardUseCase agrega lecturas para el tablero: conteo de productos,
// unidades totales en mano, entregas por estado y últimos asientos del libro.
type DashboardUseCase struct {
	dashRepo   repository.DashboardRepository
	ledgerRepo repository.LedgerRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashRepo repository.DashboardRepository, ledgerRepo repository.LedgerRepository) *DashboardUseCase {
	return &DashboardUseCase{dashRepo: dashRepo, ledgerRepo: ledgerRepo}
}

// Summary arma la respuesta del tablero.
func (uc *DashboardUseCase) Summary() (*dto.DashboardResponse, error) {
	productCount, err := uc.dashRepo.CountProducts()
	if err != nil {
		return nil, err
	}
	totalOnHand, err := uc.dashRepo.TotalOnHand()
	if err != nil {
		return nil, err
	}
	byStatus, err := uc.dashRepo.CountDeliveriesByStatus()
	if err != nil {
		return nil, err
	}
	recent, err := uc.ledgerRepo.ListRecent(10)
	if err != nil {
		return nil, err
	}
	recentDTO := make([]dto.LedgerEntryResponse, 0, len(recent))
	for _, e := range recent {
		recentDTO = append(recentDTO, toLedgerEntryResponse(e))
	}
	return &dto.DashboardResponse{
		ProductCount:       productCount,
		TotalOnHand:        totalOnHand,
		DeliveriesByStatus: byStatus,
		RecentLedger:       recentDTO,
	}, nil
}
