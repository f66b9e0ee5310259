package entity

import "time"

// DailyAudit records one physical count of an item in a warehouse.
// Discrepancy is always actual - expected; AuditDate is the calendar day the
// count happened, in the configured local zone. Read-only once created.
type DailyAudit struct {
	ID                string
	WarehouseID       string
	ItemID            string
	UserID            string
	ExpectedQuantity  int
	ActualQuantity    int
	Discrepancy       int
	Notes             string
	AuditDate         time.Time // date component only
	EgyptianTimestamp string
	CreatedAt         time.Time
}
