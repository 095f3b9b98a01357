package entity

import "time"

// LedgerEntry asiento inmutable del libro de inventario, atado 1:1 a una Operation.
// Change es el delta firmado aplicado; BalanceAfter la existencia del producto
// inmediatamente después de aplicarlo. Secuencia append-only por producto.
type LedgerEntry struct {
	ID           string
	OperationID  string
	ProductID    string
	Change       int
	BalanceAfter int
	CreatedAt    time.Time
}
