package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makhzan/school-warehouse-api/internal/application/audit"
	"github.com/makhzan/school-warehouse-api/internal/application/dto"
	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

const testUserID = "auditor-1"

// memAuditRepo in-memory daily-audit store.
type memAuditRepo struct {
	records []*entity.DailyAudit
}

func (m *memAuditRepo) Create(_ context.Context, a *entity.DailyAudit) error {
	cp := *a
	m.records = append(m.records, &cp)
	return nil
}

func (m *memAuditRepo) ListByWarehouse(_ context.Context, warehouseID string, _, _ int) ([]*entity.DailyAudit, error) {
	var out []*entity.DailyAudit
	for _, a := range m.records {
		if a.WarehouseID == warehouseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memAuditRepo) ListByDate(context.Context, string, time.Time) ([]*entity.DailyAudit, error) {
	return nil, nil
}

type memItemRepo struct {
	items map[string]*entity.Item
}

func (m *memItemRepo) Create(_ context.Context, it *entity.Item) error {
	m.items[it.ID] = it
	return nil
}
func (m *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}
func (m *memItemRepo) List(context.Context, string, string, int, int) ([]*entity.Item, error) {
	return nil, nil
}
func (m *memItemRepo) Update(_ context.Context, it *entity.Item) error { return nil }
func (m *memItemRepo) Delete(context.Context, string) error            { return nil }
func (m *memItemRepo) ApplyDelta(_ context.Context, id string, delta int) (int, error) {
	it, ok := m.items[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	next := it.Quantity + delta
	if next < 0 {
		next = 0
	}
	it.Quantity = next
	return next, nil
}

type memTxRepo struct {
	entries []*entity.Transaction
}

func (m *memTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	cp := *tx
	m.entries = append(m.entries, &cp)
	return nil
}
func (m *memTxRepo) GetByID(context.Context, string) (*entity.Transaction, error) { return nil, nil }
func (m *memTxRepo) ListByItem(context.Context, string, int, int) ([]*entity.Transaction, error) {
	return nil, nil
}
func (m *memTxRepo) ListRecent(context.Context, int) ([]*entity.Transaction, error) {
	return nil, nil
}
func (m *memTxRepo) CountByItem(context.Context, string) (int, error) { return 0, nil }

type memWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (m *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error { return nil }
func (m *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return m.warehouses[id], nil
}
func (m *memWarehouseRepo) List(context.Context, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (m *memWarehouseRepo) Update(context.Context, *entity.Warehouse) error { return nil }
func (m *memWarehouseRepo) Delete(context.Context, string) error            { return nil }
func (m *memWarehouseRepo) CountItems(context.Context, string) (int, error) { return 0, nil }

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) Create(context.Context, *entity.User) error { return nil }
func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.users[id], nil
}
func (m *memUserRepo) GetByNationalID(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (m *memUserRepo) List(context.Context, int, int) ([]*entity.User, error) { return nil, nil }
func (m *memUserRepo) Update(context.Context, *entity.User) error             { return nil }
func (m *memUserRepo) Delete(context.Context, string) error                   { return nil }

// memRunner passes the same in-memory repos through; the fake has no real
// transaction semantics, which is fine for these assertions.
type memRunner struct {
	auditRepo *memAuditRepo
	txRepo    *memTxRepo
	itemRepo  *memItemRepo
}

func (r *memRunner) Run(ctx context.Context, fn func(
	repository.DailyAuditRepository,
	repository.TransactionRepository,
	repository.ItemRepository,
) error) error {
	return fn(r.auditRepo, r.txRepo, r.itemRepo)
}

type fixture struct {
	uc     *audit.UseCase
	audits *memAuditRepo
	txs    *memTxRepo
	items  *memItemRepo
}

func newFixture(t *testing.T, storedQty int) *fixture {
	t.Helper()
	audits := &memAuditRepo{}
	txs := &memTxRepo{}
	items := &memItemRepo{items: map[string]*entity.Item{
		"markers": {ID: "markers", Name: "whiteboard markers", WarehouseID: "wh-1", Quantity: storedQty},
	}}
	warehouses := &memWarehouseRepo{warehouses: map[string]*entity.Warehouse{
		"wh-1": {ID: "wh-1", Name: "main store"},
	}}
	users := &memUserRepo{users: map[string]*entity.User{
		testUserID: {ID: testUserID, Role: entity.RoleEmployee},
	}}
	runner := &memRunner{auditRepo: audits, txRepo: txs, itemRepo: items}
	return &fixture{
		uc:     audit.NewUseCase(runner, items, warehouses, users, audits, nil, nil),
		audits: audits,
		txs:    txs,
		items:  items,
	}
}

func TestRecord_DiscrepancyIsActualMinusExpected(t *testing.T) {
	f := newFixture(t, 50)

	resp, err := f.uc.Record(context.Background(), testUserID, dto.CreateAuditRequest{
		WarehouseID: "wh-1", ItemID: "markers",
		ExpectedQuantity: 50, ActualQuantity: 47,
	})
	require.NoError(t, err)

	assert.Equal(t, -3, resp.Discrepancy)
	assert.NotEmpty(t, resp.AuditDate)
	assert.NotEmpty(t, resp.EgyptianTimestamp)
}

func TestRecord_AdjustsItemToCountedValue(t *testing.T) {
	f := newFixture(t, 50)

	_, err := f.uc.Record(context.Background(), testUserID, dto.CreateAuditRequest{
		WarehouseID: "wh-1", ItemID: "markers",
		ExpectedQuantity: 50, ActualQuantity: 47,
	})
	require.NoError(t, err)

	stored, _ := f.items.GetByID(context.Background(), "markers")
	assert.Equal(t, 47, stored.Quantity)

	require.Len(t, f.txs.entries, 1)
	adj := f.txs.entries[0]
	assert.Equal(t, entity.KindAuditAdjustment, adj.SourceType)
	assert.Equal(t, entity.TypeAudit, adj.Type)
	assert.Equal(t, -3, adj.Quantity)
	require.NotNil(t, adj.Discrepancy)
	assert.Equal(t, -3, *adj.Discrepancy)
}

func TestRecord_NoAdjustmentWhenCountMatchesStore(t *testing.T) {
	f := newFixture(t, 47)

	// Expected on the form was stale (50) but the store already says 47:
	// the audit row keeps the form's discrepancy, the stock needs no change.
	resp, err := f.uc.Record(context.Background(), testUserID, dto.CreateAuditRequest{
		WarehouseID: "wh-1", ItemID: "markers",
		ExpectedQuantity: 50, ActualQuantity: 47,
	})
	require.NoError(t, err)

	assert.Equal(t, -3, resp.Discrepancy)
	assert.Empty(t, f.txs.entries, "no adjustment entry when the store already matches the count")
	stored, _ := f.items.GetByID(context.Background(), "markers")
	assert.Equal(t, 47, stored.Quantity)
}

func TestRecord_Validation(t *testing.T) {
	f := newFixture(t, 50)
	ctx := context.Background()

	_, err := f.uc.Record(ctx, testUserID, dto.CreateAuditRequest{
		WarehouseID: "", ItemID: "markers", ExpectedQuantity: 1, ActualQuantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Record(ctx, testUserID, dto.CreateAuditRequest{
		WarehouseID: "wh-1", ItemID: "markers", ExpectedQuantity: -1, ActualQuantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Record(ctx, testUserID, dto.CreateAuditRequest{
		WarehouseID: "ghost", ItemID: "markers", ExpectedQuantity: 1, ActualQuantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Record(ctx, "ghost-user", dto.CreateAuditRequest{
		WarehouseID: "wh-1", ItemID: "markers", ExpectedQuantity: 1, ActualQuantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
