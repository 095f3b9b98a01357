package repository

// DashboardRepository consultas agregadas de solo lectura para el tablero.
type DashboardRepository interface {
	CountProducts() (int, error)
	TotalOnHand() (int, error)
	CountDeliveriesByStatus() (map[string]int, error)
}
