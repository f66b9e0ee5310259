package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implements the append-only ledger over PostgreSQL.
// There is no UPDATE or DELETE here: entries are immutable once written.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository builds the persistence adapter for ledger entries.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `
	id, item_id, user_id, source_type, transaction_type, quantity, recipient,
	notes, expected_quantity, actual_quantity, discrepancy, created_at, egyptian_timestamp`

// Create appends one ledger entry.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, item_id, user_id, source_type, transaction_type, quantity,
			recipient, notes, expected_quantity, actual_quantity, discrepancy, created_at, egyptian_timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.ItemID, tx.UserID, tx.SourceType, tx.Type, tx.Quantity,
		tx.Recipient, tx.Notes, tx.ExpectedQuantity, tx.ActualQuantity, tx.Discrepancy,
		tx.CreatedAt, tx.EgyptianTimestamp,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID returns one entry, or nil when it does not exist.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// ListByItem returns the entries of one item, newest first.
func (r *TransactionRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return collectTransactions(rows)
}

// ListRecent returns the latest entries across all items, newest first.
func (r *TransactionRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	return collectTransactions(rows)
}

// CountByItem returns the number of entries referencing an item.
func (r *TransactionRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var tx entity.Transaction
	err := row.Scan(
		&tx.ID, &tx.ItemID, &tx.UserID, &tx.SourceType, &tx.Type, &tx.Quantity,
		&tx.Recipient, &tx.Notes, &tx.ExpectedQuantity, &tx.ActualQuantity, &tx.Discrepancy,
		&tx.CreatedAt, &tx.EgyptianTimestamp,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func collectTransactions(rows pgx.Rows) ([]*entity.Transaction, error) {
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}
