package entity

import "time"

// User actor que ejecuta operaciones y entregas. La autenticación emite el
// identificador opaco que viaja en Operation.PerformedBy y Delivery.ResponsibleID.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
