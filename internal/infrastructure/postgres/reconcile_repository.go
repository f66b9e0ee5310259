package postgres

import (
	"context"
	"fmt"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

var _ repository.ReconcileRepository = (*ReconcileRepo)(nil)

// ReconcileRepo serves the read-only aggregate queries over items and the
// ledger. Nothing here is cached; every call recomputes from current rows.
type ReconcileRepo struct {
	q Querier
}

// NewReconcileRepository builds the aggregate-query adapter.
func NewReconcileRepository(q Querier) *ReconcileRepo {
	return &ReconcileRepo{q: q}
}

// ListLowInventory returns items with quantity <= threshold, ascending.
func (r *ReconcileRepo) ListLowInventory(ctx context.Context, threshold int) ([]*entity.Item, error) {
	query := `
		SELECT id, name, COALESCE(category_id, ''), warehouse_id, quantity, description, created_at, updated_at
		FROM items WHERE quantity <= $1 ORDER BY quantity ASC`
	rows, err := r.q.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CategoryID, &it.WarehouseID,
			&it.Quantity, &it.Description, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan low-inventory item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetWarehouseTotals aggregates item count and total quantity for one warehouse.
func (r *ReconcileRepo) GetWarehouseTotals(ctx context.Context, warehouseID string) (repository.WarehouseTotals, error) {
	var t repository.WarehouseTotals
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(quantity), 0)
		FROM items WHERE warehouse_id = $1`, warehouseID).Scan(&t.ItemCount, &t.TotalQuantity)
	if err != nil {
		return t, fmt.Errorf("warehouse totals: %w", err)
	}
	return t, nil
}

// GetCategoryBreakdown aggregates one warehouse's items per category. Items
// whose category no longer resolves come back with an empty name.
func (r *ReconcileRepo) GetCategoryBreakdown(ctx context.Context, warehouseID string) ([]repository.CategoryBreakdown, error) {
	query := `
		SELECT COALESCE(i.category_id, ''), COALESCE(c.name, ''), COUNT(*), COALESCE(SUM(i.quantity), 0)
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.warehouse_id = $1
		GROUP BY i.category_id, c.name
		ORDER BY COALESCE(SUM(i.quantity), 0) DESC`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryBreakdown
	for rows.Next() {
		var b repository.CategoryBreakdown
		if err := rows.Scan(&b.CategoryID, &b.CategoryName, &b.ItemCount, &b.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan breakdown: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// ListItemSummaries returns every item with its category and warehouse names
// resolved, for the distribution charts.
func (r *ReconcileRepo) ListItemSummaries(ctx context.Context) ([]repository.ItemSummary, error) {
	query := `
		SELECT i.id, i.name, COALESCE(c.name, ''), w.name, i.quantity
		FROM items i
		LEFT JOIN categories c ON c.id = i.category_id
		JOIN warehouses w ON w.id = i.warehouse_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("item summaries: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemSummary
	for rows.Next() {
		var s repository.ItemSummary
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.CategoryName, &s.WarehouseName, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan item summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ListTransactionKinds returns the raw source kinds of the latest ledger
// entries, newest first.
func (r *ReconcileRepo) ListTransactionKinds(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT source_type FROM transactions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("transaction kinds: %w", err)
	}
	defer rows.Close()
	var kinds []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan kind: %w", err)
		}
		kinds = append(kinds, k)
	}
	return kinds, rows.Err()
}
