package entity

import "time"

// DefaultLowInventoryThreshold flags items for restocking attention when
// their quantity is at or below it.
const DefaultLowInventoryThreshold = 10

// Item represents a stored article in a school warehouse.
// Quantity is the authoritative on-hand count and is always >= 0: movement
// deltas that would take it below zero are clamped at zero, not rejected.
type Item struct {
	ID          string
	Name        string
	CategoryID  string
	WarehouseID string
	Quantity    int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
