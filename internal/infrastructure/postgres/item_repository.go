package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implements ItemRepository over PostgreSQL (usable with pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the persistence adapter for items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persists a new item.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, category_id, warehouse_id, quantity, description, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.CategoryID, item.WarehouseID,
		item.Quantity, item.Description, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID returns one item, or nil when it does not exist.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `
		SELECT id, name, COALESCE(category_id, ''), warehouse_id, quantity, description, created_at, updated_at
		FROM items WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.CategoryID, &it.WarehouseID,
		&it.Quantity, &it.Description, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List returns items filtered by warehouse and/or category when non-empty.
func (r *ItemRepo) List(ctx context.Context, warehouseID, categoryID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT id, name, COALESCE(category_id, ''), warehouse_id, quantity, description, created_at, updated_at
		FROM items
		WHERE ($1 = '' OR warehouse_id = $1)
		  AND ($2 = '' OR category_id = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, warehouseID, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CategoryID, &it.WarehouseID,
			&it.Quantity, &it.Description, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update persists an existing item.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, category_id = NULLIF($3, ''), warehouse_id = $4,
			quantity = $5, description = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.CategoryID, item.WarehouseID,
		item.Quantity, item.Description, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// Delete removes an item.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ApplyDelta reads the current quantity and writes max(0, current+delta).
// Two statements, no row lock: concurrent callers on the same item race and
// the last write wins.
func (r *ItemRepo) ApplyDelta(ctx context.Context, itemID string, delta int) (int, error) {
	var current int
	err := r.q.QueryRow(ctx, `SELECT quantity FROM items WHERE id = $1`, itemID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("read quantity: %w", err)
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	_, err = r.q.Exec(ctx, `UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`, itemID, next)
	if err != nil {
		return 0, fmt.Errorf("write quantity: %w", err)
	}
	return next, nil
}
