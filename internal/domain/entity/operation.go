package entity

import "time"

// Tipos de operación de inventario. El signo del delta lo deriva el motor:
// receipt suma, delivery y transfer restan (solo se modela el tramo de salida),
// adjustment suma la magnitud recibida.
const (
	OperationTypeReceipt    = "receipt"
	OperationTypeDelivery   = "delivery"
	OperationTypeTransfer   = "transfer"
	OperationTypeAdjustment = "adjustment"
)

// Operation registro inmutable de una acción de inventario.
// Quantity es magnitud positiva; el signo nunca lo aporta el caller.
type Operation struct {
	ID          string
	Type        string
	ProductID   string
	Quantity    int
	Reason      string
	PerformedBy string // UserID
	Date        time.Time
	CreatedAt   time.Time
}

// ValidOperationType verifica que el tipo sea uno de los cuatro permitidos.
func ValidOperationType(t string) bool {
	switch t {
	case OperationTypeReceipt, OperationTypeDelivery, OperationTypeTransfer, OperationTypeAdjustment:
		return true
	}
	return false
}
