package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación sobre PostgreSQL (usable con pool o tx).
// Cabecera en deliveries, líneas en delivery_items (únicas por producto).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, reference, from_location_id, to_location_id, contact, schedule_date, status, responsible_id, created_at, updated_at`

// Create persiste cabecera y líneas. Referencia duplicada retorna ErrDuplicate.
// Llamar dentro de una tx para que cabecera y líneas queden juntas.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, reference, from_location_id, to_location_id, contact, schedule_date, status, responsible_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.Reference, delivery.FromLocationID, delivery.ToLocationID,
		delivery.Contact, delivery.ScheduleDate, delivery.Status, delivery.ResponsibleID,
		delivery.CreatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return r.insertItems(delivery.ID, delivery.Items)
}

func (r *DeliveryRepo) insertItems(deliveryID string, items []entity.DeliveryItem) error {
	for _, item := range items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO delivery_items (id, delivery_id, product_id, quantity, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			item.ID, deliveryID, item.ProductID, item.Quantity, item.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert delivery item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una entrega con sus líneas.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return r.getOne(`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id)
}

// GetForUpdate obtiene la entrega bloqueando la cabecera (SELECT FOR UPDATE).
// Serializa cambios de estado concurrentes sobre la misma entrega.
func (r *DeliveryRepo) GetForUpdate(id string) (*entity.Delivery, error) {
	return r.getOne(`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1 FOR UPDATE`, id)
}

func (r *DeliveryRepo) getOne(query string, args ...any) (*entity.Delivery, error) {
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&d.ID, &d.Reference, &d.FromLocationID, &d.ToLocationID, &d.Contact,
		&d.ScheduleDate, &d.Status, &d.ResponsibleID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	items, err := r.listItems(d.ID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (r *DeliveryRepo) listItems(deliveryID string) ([]entity.DeliveryItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, delivery_id, product_id, quantity, created_at
		 FROM delivery_items WHERE delivery_id = $1 ORDER BY created_at`,
		deliveryID,
	)
	if err != nil {
		return nil, fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()
	var items []entity.DeliveryItem
	for rows.Next() {
		var it entity.DeliveryItem
		if err := rows.Scan(&it.ID, &it.DeliveryID, &it.ProductID, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateHeader actualiza los campos editables de la cabecera (no status).
func (r *DeliveryRepo) UpdateHeader(delivery *entity.Delivery) error {
	query := `
		UPDATE deliveries SET from_location_id = $2, to_location_id = $3, contact = $4, schedule_date = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.FromLocationID, delivery.ToLocationID,
		delivery.Contact, delivery.ScheduleDate, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery header: %w", err)
	}
	return nil
}

// ReplaceItems descarta todas las líneas anteriores y escribe el set nuevo.
func (r *DeliveryRepo) ReplaceItems(deliveryID string, items []entity.DeliveryItem) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM delivery_items WHERE delivery_id = $1`, deliveryID)
	if err != nil {
		return fmt.Errorf("delete delivery items: %w", err)
	}
	return r.insertItems(deliveryID, items)
}

// UpdateStatus persiste solo el campo status.
func (r *DeliveryRepo) UpdateStatus(deliveryID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE deliveries SET status = $2, updated_at = now() WHERE id = $1`,
		deliveryID, status,
	)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	return nil
}

// List lista entregas, opcionalmente filtradas por estado, con sus líneas.
func (r *DeliveryRepo) List(status string, limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.Reference, &d.FromLocationID, &d.ToLocationID, &d.Contact,
			&d.ScheduleDate, &d.Status, &d.ResponsibleID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range list {
		items, err := r.listItems(d.ID)
		if err != nil {
			return nil, err
		}
		d.Items = items
	}
	return list, nil
}

// Delete elimina cabecera y líneas.
func (r *DeliveryRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM delivery_items WHERE delivery_id = $1`, id); err != nil {
		return fmt.Errorf("delete delivery items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM deliveries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	return nil
}
