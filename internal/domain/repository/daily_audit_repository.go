package repository

import (
	"context"
	"time"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

// DailyAuditRepository persists physical-count records. Create-and-read only.
type DailyAuditRepository interface {
	Create(ctx context.Context, audit *entity.DailyAudit) error
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.DailyAudit, error)
	// ListByDate returns the audits of one calendar day (warehouse optional).
	ListByDate(ctx context.Context, warehouseID string, day time.Time) ([]*entity.DailyAudit, error)
}
