package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: las operaciones son inmutables.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = `id, type, product_id, quantity, reason, performed_by, date, created_at`

// Create persiste una operación.
func (r *OperationRepo) Create(op *entity.Operation) error {
	query := `
		INSERT INTO operations (id, type, product_id, quantity, reason, performed_by, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		op.ID, op.Type, op.ProductID, op.Quantity, op.Reason, op.PerformedBy, op.Date, op.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// GetByID obtiene una operación por ID.
func (r *OperationRepo) GetByID(id string) (*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1`
	var op entity.Operation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&op.ID, &op.Type, &op.ProductID, &op.Quantity, &op.Reason, &op.PerformedBy, &op.Date, &op.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return &op, nil
}

// List lista operaciones recientes.
func (r *OperationRepo) List(limit, offset int) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations ORDER BY date DESC LIMIT $1 OFFSET $2`
	return r.scanList(query, limit, offset)
}

// ListByProduct lista operaciones de un producto.
func (r *OperationRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE product_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	return r.scanList(query, productID, limit, offset)
}

func (r *OperationRepo) scanList(query string, args ...any) ([]*entity.Operation, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Operation
	for rows.Next() {
		var op entity.Operation
		if err := rows.Scan(&op.ID, &op.Type, &op.ProductID, &op.Quantity, &op.Reason,
			&op.PerformedBy, &op.Date, &op.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, &op)
	}
	return list, rows.Err()
}
