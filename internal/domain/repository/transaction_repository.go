package repository

import (
	"context"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

// TransactionRepository is the append-only persistence port for the ledger.
// There is deliberately no Update or Delete: entries are immutable once
// written.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error)
	// CountByItem backs the restrict-on-delete policy for items with history.
	CountByItem(ctx context.Context, itemID string) (int, error)
}
