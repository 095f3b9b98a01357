package entity

import "time"

// MoveHistory registro inmutable de una reubicación física completada.
// Se crea exactamente una vez, cuando la entrega pasa a done. No afecta
// cantidades ni genera asientos en el libro: es un movimiento solo de ubicación.
type MoveHistory struct {
	ID             string
	Reference      string // copiada de la entrega
	Date           time.Time
	FromLocationID string
	ToLocationID   string
	Contact        string
	DeliveryID     string
	CreatedAt      time.Time
}
