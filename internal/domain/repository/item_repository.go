package repository

import (
	"context"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

// ItemRepository is the persistence port for items and the quantity store.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// List filters by warehouse and/or category when non-empty.
	List(ctx context.Context, warehouseID, categoryID string, limit, offset int) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error

	// ApplyDelta reads the current quantity, persists max(0, current+delta)
	// and returns the clamped result. Read-then-write, no row lock: two
	// concurrent callers on the same item race and the last write wins.
	// Returns domain.ErrNotFound when the item does not exist.
	ApplyDelta(ctx context.Context, itemID string, delta int) (int, error)
}
