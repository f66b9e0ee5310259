package entity

import "time"

// Warehouse represents a school storage location.
type Warehouse struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WarehouseStatus classifies a warehouse by its total on-hand quantity.
// Derived for display, never stored.
type WarehouseStatus string

const (
	StatusLow    WarehouseStatus = "low"
	StatusNormal WarehouseStatus = "normal"
	StatusHigh   WarehouseStatus = "high"
)

// Fixed classification thresholds (total quantity across the warehouse).
const (
	lowStatusBelow  = 300
	highStatusAbove = 1000
)

// ClassifyWarehouse maps a total quantity to its status:
// total < 300 is low, total > 1000 is high, anything else is normal.
func ClassifyWarehouse(total int) WarehouseStatus {
	switch {
	case total < lowStatusBelow:
		return StatusLow
	case total > highStatusAbove:
		return StatusHigh
	default:
		return StatusNormal
	}
}
