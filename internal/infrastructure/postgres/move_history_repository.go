package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.MoveHistoryRepository = (*MoveHistoryRepo)(nil)

// MoveHistoryRepo implementación sobre PostgreSQL (usable con pool o tx).
// Append-only.
type MoveHistoryRepo struct {
	q Querier
}

// NewMoveHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMoveHistoryRepository(q Querier) *MoveHistoryRepo {
	return &MoveHistoryRepo{q: q}
}

const moveHistoryColumns = `id, reference, date, from_location_id, to_location_id, contact, delivery_id, created_at`

// Create persiste un registro de reubicación completada.
func (r *MoveHistoryRepo) Create(entry *entity.MoveHistory) error {
	query := `
		INSERT INTO move_history (id, reference, date, from_location_id, to_location_id, contact, delivery_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Reference, entry.Date, entry.FromLocationID, entry.ToLocationID,
		entry.Contact, entry.DeliveryID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert move history: %w", err)
	}
	return nil
}

// List lista el historial, del más reciente al más antiguo.
func (r *MoveHistoryRepo) List(limit, offset int) ([]*entity.MoveHistory, error) {
	query := `SELECT ` + moveHistoryColumns + ` FROM move_history ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list move history: %w", err)
	}
	defer rows.Close()
	var list []*entity.MoveHistory
	for rows.Next() {
		var m entity.MoveHistory
		if err := rows.Scan(&m.ID, &m.Reference, &m.Date, &m.FromLocationID, &m.ToLocationID,
			&m.Contact, &m.DeliveryID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan move history: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// GetByDelivery obtiene el registro asociado a una entrega (a lo sumo uno).
func (r *MoveHistoryRepo) GetByDelivery(deliveryID string) (*entity.MoveHistory, error) {
	query := `SELECT ` + moveHistoryColumns + ` FROM move_history WHERE delivery_id = $1`
	var m entity.MoveHistory
	err := r.q.QueryRow(context.Background(), query, deliveryID).Scan(
		&m.ID, &m.Reference, &m.Date, &m.FromLocationID, &m.ToLocationID,
		&m.Contact, &m.DeliveryID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get move history: %w", err)
	}
	return &m, nil
}
