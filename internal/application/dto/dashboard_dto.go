package dto

// DashboardResponse agregados de solo lectura para el tablero.
type DashboardResponse struct {
	ProductCount       int                   `json:"product_count"`
	TotalOnHand        int                   `json:"total_on_hand"`
	DeliveriesByStatus map[string]int        `json:"deliveries_by_status"`
	RecentLedger       []LedgerEntryResponse `json:"recent_ledger"`
}
