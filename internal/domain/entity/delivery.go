package entity

import "time"

// Delivery cabecera de una entrega multi-línea entre dos ubicaciones.
// Status se mueve por el grafo draft → waiting → ready → done (con retrocesos
// waiting→draft y ready→waiting); los items solo se editan en draft.
type Delivery struct {
	ID             string
	Reference      string // referencia única
	FromLocationID string
	ToLocationID   string
	Contact        string
	ScheduleDate   *time.Time
	Status         string
	ResponsibleID  string // UserID
	Items          []DeliveryItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DeliveryItem línea de una entrega: producto y cantidad solicitada.
// Único por producto dentro de la entrega.
type DeliveryItem struct {
	ID         string
	DeliveryID string
	ProductID  string
	Quantity   int
	CreatedAt  time.Time
}
