// Package audit records daily physical counts. A count with a non-zero
// difference against the stored quantity also writes an audit_adjustment
// ledger entry and brings the item to the counted value, in one transaction.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/makhzan/school-warehouse-api/internal/application/dto"
	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
	"github.com/makhzan/school-warehouse-api/internal/notify"
)

// UseCase records and lists daily audits.
type UseCase struct {
	runner        TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	userRepo      repository.UserRepository
	auditRepo     repository.DailyAuditRepository
	hub           *notify.Hub
	loc           *time.Location
}

// NewUseCase builds the use case. loc is the zone for the audit date and
// ledger timestamps; nil falls back to UTC.
func NewUseCase(
	runner TxRunner,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	userRepo repository.UserRepository,
	auditRepo repository.DailyAuditRepository,
	hub *notify.Hub,
	loc *time.Location,
) *UseCase {
	return &UseCase{
		runner:        runner,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		userRepo:      userRepo,
		auditRepo:     auditRepo,
		hub:           hub,
		loc:           loc,
	}
}

// Record persists one physical count. Discrepancy is always
// actual - expected; the audit date is the calendar day in the configured
// zone. When the counted value differs from the stored quantity an
// audit_adjustment entry is appended and the item is set to the count.
func (uc *UseCase) Record(ctx context.Context, userID string, in dto.CreateAuditRequest) (*dto.AuditResponse, error) {
	if in.WarehouseID == "" || in.ItemID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ExpectedQuantity < 0 || in.ActualQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	loc := uc.loc
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now()
	local := now.In(loc)
	auditDate := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	record := &entity.DailyAudit{
		ID:                uuid.New().String(),
		WarehouseID:       in.WarehouseID,
		ItemID:            in.ItemID,
		UserID:            userID,
		ExpectedQuantity:  in.ExpectedQuantity,
		ActualQuantity:    in.ActualQuantity,
		Discrepancy:       in.ActualQuantity - in.ExpectedQuantity,
		Notes:             in.Notes,
		AuditDate:         auditDate,
		EgyptianTimestamp: entity.FormatEgyptianTimestamp(now, loc),
		CreatedAt:         now,
	}

	// Adjustment against the stored quantity, not the form's expected value:
	// the store may already have drifted from what the auditor was shown.
	adjustment := in.ActualQuantity - item.Quantity

	err = uc.runner.Run(ctx, func(
		auditRepo repository.DailyAuditRepository,
		txRepo repository.TransactionRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := auditRepo.Create(ctx, record); err != nil {
			return err
		}
		if adjustment == 0 {
			return nil
		}
		expected := in.ExpectedQuantity
		actual := in.ActualQuantity
		adj := &entity.Transaction{
			ID:                uuid.New().String(),
			ItemID:            in.ItemID,
			UserID:            userID,
			SourceType:        entity.KindAuditAdjustment,
			Type:              entity.TypeAudit,
			Quantity:          adjustment,
			Recipient:         "daily audit",
			Notes:             in.Notes,
			ExpectedQuantity:  &expected,
			ActualQuantity:    &actual,
			Discrepancy:       entity.ComputeDiscrepancy(&expected, &actual),
			CreatedAt:         now,
			EgyptianTimestamp: record.EgyptianTimestamp,
		}
		if err := txRepo.Create(ctx, adj); err != nil {
			return err
		}
		_, err := itemRepo.ApplyDelta(ctx, in.ItemID, adjustment)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.publish(record, item)

	return toAuditResponse(record), nil
}

// ListByWarehouse returns the audit records of a warehouse, newest first.
func (uc *UseCase) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) (*dto.AuditListResponse, error) {
	list, err := uc.auditRepo.ListByWarehouse(ctx, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAuditResponse(a))
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByDate returns the audits of one calendar day, for the report.
func (uc *UseCase) ListByDate(ctx context.Context, warehouseID string, day time.Time) ([]*entity.DailyAudit, error) {
	return uc.auditRepo.ListByDate(ctx, warehouseID, day)
}

// ReportRow is one line of the daily audit report, names resolved.
type ReportRow struct {
	ItemName         string
	ExpectedQuantity int
	ActualQuantity   int
	Discrepancy      int
	Notes            string
	Timestamp        string
}

// DailyReport assembles the report data for one warehouse and day: the
// warehouse plus one row per audit with the item name resolved.
func (uc *UseCase) DailyReport(ctx context.Context, warehouseID string, day time.Time) (*entity.Warehouse, []ReportRow, error) {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, nil, err
	}
	if wh == nil {
		return nil, nil, domain.ErrNotFound
	}
	audits, err := uc.auditRepo.ListByDate(ctx, warehouseID, day)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]ReportRow, 0, len(audits))
	for _, a := range audits {
		name := a.ItemID
		if item, err := uc.itemRepo.GetByID(ctx, a.ItemID); err == nil && item != nil {
			name = item.Name
		}
		rows = append(rows, ReportRow{
			ItemName:         name,
			ExpectedQuantity: a.ExpectedQuantity,
			ActualQuantity:   a.ActualQuantity,
			Discrepancy:      a.Discrepancy,
			Notes:            a.Notes,
			Timestamp:        a.EgyptianTimestamp,
		})
	}
	return wh, rows, nil
}

func (uc *UseCase) publish(record *entity.DailyAudit, item *entity.Item) {
	if uc.hub == nil {
		return
	}
	uc.hub.Publish(entity.Notification{
		Event: "daily_audit",
		Message: fmt.Sprintf("audited %s: expected %d, counted %d",
			item.Name, record.ExpectedQuantity, record.ActualQuantity),
		Payload: map[string]any{
			"item_id":      record.ItemID,
			"warehouse_id": record.WarehouseID,
			"discrepancy":  record.Discrepancy,
		},
	})
}

func toAuditResponse(a *entity.DailyAudit) *dto.AuditResponse {
	return &dto.AuditResponse{
		ID:                a.ID,
		WarehouseID:       a.WarehouseID,
		ItemID:            a.ItemID,
		UserID:            a.UserID,
		ExpectedQuantity:  a.ExpectedQuantity,
		ActualQuantity:    a.ActualQuantity,
		Discrepancy:       a.Discrepancy,
		Notes:             a.Notes,
		AuditDate:         a.AuditDate.Format("2006-01-02"),
		EgyptianTimestamp: a.EgyptianTimestamp,
		CreatedAt:         a.CreatedAt,
	}
}
