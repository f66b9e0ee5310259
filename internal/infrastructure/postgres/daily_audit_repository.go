package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

var _ repository.DailyAuditRepository = (*DailyAuditRepo)(nil)

// DailyAuditRepo implements DailyAuditRepository over PostgreSQL.
type DailyAuditRepo struct {
	q Querier
}

// NewDailyAuditRepository builds the persistence adapter for daily audits.
func NewDailyAuditRepository(q Querier) *DailyAuditRepo {
	return &DailyAuditRepo{q: q}
}

const dailyAuditColumns = `
	id, warehouse_id, item_id, user_id, expected_quantity, actual_quantity,
	discrepancy, notes, audit_date, egyptian_timestamp, created_at`

// Create persists one physical-count record.
func (r *DailyAuditRepo) Create(ctx context.Context, a *entity.DailyAudit) error {
	query := `
		INSERT INTO daily_audits (id, warehouse_id, item_id, user_id, expected_quantity,
			actual_quantity, discrepancy, notes, audit_date, egyptian_timestamp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.WarehouseID, a.ItemID, a.UserID, a.ExpectedQuantity,
		a.ActualQuantity, a.Discrepancy, a.Notes, a.AuditDate, a.EgyptianTimestamp, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert daily audit: %w", err)
	}
	return nil
}

// ListByWarehouse returns the audit records of one warehouse, newest first.
func (r *DailyAuditRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.DailyAudit, error) {
	query := `SELECT ` + dailyAuditColumns + `
		FROM daily_audits WHERE warehouse_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list daily audits: %w", err)
	}
	return collectDailyAudits(rows)
}

// ListByDate returns the audits of one calendar day. warehouseID filters when
// non-empty.
func (r *DailyAuditRepo) ListByDate(ctx context.Context, warehouseID string, day time.Time) ([]*entity.DailyAudit, error) {
	query := `SELECT ` + dailyAuditColumns + `
		FROM daily_audits
		WHERE audit_date = $1 AND ($2 = '' OR warehouse_id = $2)
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, day, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list daily audits by date: %w", err)
	}
	return collectDailyAudits(rows)
}

func collectDailyAudits(rows pgx.Rows) ([]*entity.DailyAudit, error) {
	defer rows.Close()
	var list []*entity.DailyAudit
	for rows.Next() {
		var a entity.DailyAudit
		if err := rows.Scan(&a.ID, &a.WarehouseID, &a.ItemID, &a.UserID, &a.ExpectedQuantity,
			&a.ActualQuantity, &a.Discrepancy, &a.Notes, &a.AuditDate, &a.EgyptianTimestamp, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan daily audit: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
