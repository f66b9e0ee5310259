package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/makhzan/school-warehouse-api/internal/application/audit"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

var _ audit.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction. Only the
// daily-audit flow uses it; movements deliberately run as independent
// statements.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, runs fn with repos bound to it and commits, or
// rolls back on error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	auditRepo repository.DailyAuditRepository,
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	auditRepo := NewDailyAuditRepository(tx)
	txRepo := NewTransactionRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(auditRepo, txRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
