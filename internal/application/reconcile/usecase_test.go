package reconcile_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makhzan/school-warehouse-api/internal/application/dto"
	"github.com/makhzan/school-warehouse-api/internal/application/reconcile"
	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

// memReconcileRepo serves the aggregate queries from plain slices.
type memReconcileRepo struct {
	items     []*entity.Item
	summaries []repository.ItemSummary
	kinds     []string
}

func (m *memReconcileRepo) ListLowInventory(_ context.Context, threshold int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range m.items {
		if it.Quantity <= threshold {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (m *memReconcileRepo) GetWarehouseTotals(_ context.Context, warehouseID string) (repository.WarehouseTotals, error) {
	var t repository.WarehouseTotals
	for _, it := range m.items {
		if it.WarehouseID == warehouseID {
			t.ItemCount++
			t.TotalQuantity += it.Quantity
		}
	}
	return t, nil
}

func (m *memReconcileRepo) GetCategoryBreakdown(_ context.Context, warehouseID string) ([]repository.CategoryBreakdown, error) {
	byCat := map[string]*repository.CategoryBreakdown{}
	for _, it := range m.items {
		if it.WarehouseID != warehouseID {
			continue
		}
		b, ok := byCat[it.CategoryID]
		if !ok {
			b = &repository.CategoryBreakdown{CategoryID: it.CategoryID, CategoryName: it.CategoryID}
			byCat[it.CategoryID] = b
		}
		b.ItemCount++
		b.TotalQuantity += it.Quantity
	}
	var out []repository.CategoryBreakdown
	for _, b := range byCat {
		out = append(out, *b)
	}
	return out, nil
}

func (m *memReconcileRepo) ListItemSummaries(context.Context) ([]repository.ItemSummary, error) {
	return m.summaries, nil
}

func (m *memReconcileRepo) ListTransactionKinds(context.Context, int) ([]string, error) {
	return m.kinds, nil
}

// memWarehouseRepo only needs GetByID for the summary existence check.
type memWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (m *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	m.warehouses[w.ID] = w
	return nil
}
func (m *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return m.warehouses[id], nil
}
func (m *memWarehouseRepo) List(context.Context, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}
func (m *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error { return nil }
func (m *memWarehouseRepo) Delete(context.Context, string) error                { return nil }
func (m *memWarehouseRepo) CountItems(context.Context, string) (int, error)     { return 0, nil }

func newUseCase(repo *memReconcileRepo, warehouses ...*entity.Warehouse) *reconcile.UseCase {
	whRepo := &memWarehouseRepo{warehouses: map[string]*entity.Warehouse{}}
	for _, w := range warehouses {
		whRepo.warehouses[w.ID] = w
	}
	return reconcile.NewUseCase(repo, whRepo)
}

func TestLowInventory_ThresholdAndOrdering(t *testing.T) {
	repo := &memReconcileRepo{items: []*entity.Item{
		{ID: "a", Quantity: 5},
		{ID: "b", Quantity: 15},
		{ID: "c", Quantity: 10},
		{ID: "d", Quantity: 0},
	}}
	uc := newUseCase(repo)

	resp, err := uc.LowInventory(context.Background(), 10)
	require.NoError(t, err)

	quantities := make([]int, 0, len(resp.Items))
	for _, it := range resp.Items {
		quantities = append(quantities, it.Quantity)
	}
	assert.Equal(t, []int{0, 5, 10}, quantities, "items at or below threshold, ascending")
	assert.Equal(t, 10, resp.Threshold)
}

func TestLowInventory_DefaultThreshold(t *testing.T) {
	repo := &memReconcileRepo{items: []*entity.Item{{ID: "a", Quantity: 10}, {ID: "b", Quantity: 11}}}
	uc := newUseCase(repo)

	resp, err := uc.LowInventory(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Threshold, "non-positive threshold falls back to 10")
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "a", resp.Items[0].ID)
}

func TestWarehouseSummary_TotalsAndStatus(t *testing.T) {
	repo := &memReconcileRepo{items: []*entity.Item{
		{ID: "a", WarehouseID: "wh-1", CategoryID: "stationery", Quantity: 400},
		{ID: "b", WarehouseID: "wh-1", CategoryID: "stationery", Quantity: 150},
		{ID: "c", WarehouseID: "wh-1", CategoryID: "lab", Quantity: 50},
		{ID: "d", WarehouseID: "wh-2", Quantity: 999},
	}}
	uc := newUseCase(repo, &entity.Warehouse{ID: "wh-1", Name: "main store"})

	sum, err := uc.WarehouseSummary(context.Background(), "wh-1")
	require.NoError(t, err)

	assert.Equal(t, 3, sum.ItemCount)
	assert.Equal(t, 600, sum.TotalQuantity)
	assert.Equal(t, string(entity.StatusNormal), sum.Status)
	require.Len(t, sum.Categories, 2)
}

func TestWarehouseSummary_StatusThresholds(t *testing.T) {
	cases := []struct {
		total int
		want  entity.WarehouseStatus
	}{
		{250, entity.StatusLow},
		{1500, entity.StatusHigh},
		{600, entity.StatusNormal},
	}
	for _, tc := range cases {
		repo := &memReconcileRepo{items: []*entity.Item{{ID: "a", WarehouseID: "wh", Quantity: tc.total}}}
		uc := newUseCase(repo, &entity.Warehouse{ID: "wh"})
		sum, err := uc.WarehouseSummary(context.Background(), "wh")
		require.NoError(t, err)
		assert.Equal(t, string(tc.want), sum.Status, "total=%d", tc.total)
	}
}

func TestWarehouseSummary_UnknownWarehouse(t *testing.T) {
	uc := newUseCase(&memReconcileRepo{})
	_, err := uc.WarehouseSummary(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDistributeByCategory_FallbackAndOrdering(t *testing.T) {
	items := []repository.ItemSummary{
		{ItemName: "chalk", CategoryName: "stationery", Quantity: 30},
		{ItemName: "beaker", CategoryName: "lab", Quantity: 80},
		{ItemName: "mystery", CategoryName: "", Quantity: 5},
		{ItemName: "pens", CategoryName: "stationery", Quantity: 20},
	}
	slices := reconcile.DistributeByCategory(items)

	require.Len(t, slices, 3)
	assert.Equal(t, "lab", slices[0].Label)
	assert.Equal(t, 80, slices[0].Value)
	assert.Equal(t, "stationery", slices[1].Label)
	assert.Equal(t, 50, slices[1].Value)
	assert.Equal(t, reconcile.UncategorizedLabel, slices[2].Label)
	assert.Equal(t, 5, slices[2].Value)
}

func TestDistributeByWarehouse(t *testing.T) {
	items := []repository.ItemSummary{
		{WarehouseName: "annex", Quantity: 10},
		{WarehouseName: "main store", Quantity: 70},
		{WarehouseName: "annex", Quantity: 15},
	}
	slices := reconcile.DistributeByWarehouse(items)

	require.Len(t, slices, 2)
	assert.Equal(t, "main store", slices[0].Label)
	assert.Equal(t, 70, slices[0].Value)
	assert.Equal(t, "annex", slices[1].Label)
	assert.Equal(t, 25, slices[1].Value)
}

func TestKindDistribution(t *testing.T) {
	kinds := []string{
		entity.KindIssue, entity.KindIssue, entity.KindReturn,
		entity.KindExchangeOut, entity.KindExchangeIn,
		entity.KindDailyAudit, // neither issue/return nor exchange: ignored
	}
	slices := reconcile.KindDistribution(kinds)

	require.Len(t, slices, 3)
	assert.Equal(t, dto.LabelValue{Label: "issue", Value: 2}, slices[0])
	assert.Equal(t, dto.LabelValue{Label: "return", Value: 1}, slices[1])
	assert.Equal(t, dto.LabelValue{Label: "exchange", Value: 2}, slices[2])
}

func TestKindDistribution_OmitsZeroBuckets(t *testing.T) {
	slices := reconcile.KindDistribution([]string{entity.KindReturn})
	require.Len(t, slices, 1)
	assert.Equal(t, "return", slices[0].Label)
	assert.Equal(t, 1, slices[0].Value)
}
