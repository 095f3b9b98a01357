package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación sobre PostgreSQL (usable con pool o tx).
// Append-only: nunca update ni delete.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, operation_id, product_id, change, balance_after, created_at`

// Create persiste un asiento del libro.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, operation_id, product_id, change, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.OperationID, entry.ProductID, entry.Change, entry.BalanceAfter, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// ListByProduct lista asientos de un producto, del más reciente al más antiguo.
func (r *LedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanList(query, productID, limit, offset)
}

// GetLastByProduct obtiene el asiento más reciente de un producto; su
// balance_after debe coincidir con products.quantity en reposo.
func (r *LedgerRepo) GetLastByProduct(productID string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE product_id = $1 ORDER BY created_at DESC LIMIT 1`
	var e entity.LedgerEntry
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&e.ID, &e.OperationID, &e.ProductID, &e.Change, &e.BalanceAfter, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last ledger entry: %w", err)
	}
	return &e, nil
}

// ListRecent lista los últimos asientos de todos los productos.
func (r *LedgerRepo) ListRecent(limit int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries ORDER BY created_at DESC LIMIT $1`
	return r.scanList(query, limit)
}

func (r *LedgerRepo) scanList(query string, args ...any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.OperationID, &e.ProductID, &e.Change, &e.BalanceAfter, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
