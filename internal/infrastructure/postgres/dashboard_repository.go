package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura sobre PostgreSQL.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountProducts cuenta los productos registrados.
func (r *DashboardRepo) CountProducts() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// TotalOnHand suma las existencias de todos los productos.
func (r *DashboardRepo) TotalOnHand() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT coalesce(sum(quantity), 0) FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("total on hand: %w", err)
	}
	return n, nil
}

// CountDeliveriesByStatus cuenta entregas agrupadas por estado.
func (r *DashboardRepo) CountDeliveriesByStatus() (map[string]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT status, count(*) FROM deliveries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count deliveries by status: %w", err)
	}
	defer rows.Close()
	result := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan delivery count: %w", err)
		}
		result[status] = n
	}
	return result, rows.Err()
}
