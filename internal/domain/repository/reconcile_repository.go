package repository

import (
	"context"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

// WarehouseTotals aggregates a warehouse's items.
type WarehouseTotals struct {
	ItemCount     int
	TotalQuantity int
}

// CategoryBreakdown is the per-category slice of a warehouse summary.
type CategoryBreakdown struct {
	CategoryID    string
	CategoryName  string
	ItemCount     int
	TotalQuantity int
}

// ItemSummary is an item row with its names resolved, used by the
// distribution charts. CategoryName is empty for uncategorized items.
type ItemSummary struct {
	ItemID        string
	ItemName      string
	CategoryName  string
	WarehouseName string
	Quantity      int
}

// ReconcileRepository serves the read-only aggregate queries of the
// reconciliation engine. Every call recomputes from current data; there is
// no cached or incrementally maintained state behind it.
type ReconcileRepository interface {
	// ListLowInventory returns items with quantity <= threshold, ascending
	// by quantity.
	ListLowInventory(ctx context.Context, threshold int) ([]*entity.Item, error)
	GetWarehouseTotals(ctx context.Context, warehouseID string) (WarehouseTotals, error)
	GetCategoryBreakdown(ctx context.Context, warehouseID string) ([]CategoryBreakdown, error)
	ListItemSummaries(ctx context.Context) ([]ItemSummary, error)
	// ListTransactionKinds returns the raw source kinds of the most recent
	// ledger entries, newest first.
	ListTransactionKinds(ctx context.Context, limit int) ([]string, error)
}
