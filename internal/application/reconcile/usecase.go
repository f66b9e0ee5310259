// Package reconcile computes the read-only aggregate views over the quantity
// store and the ledger: low-inventory sets, warehouse summaries and the
// dashboard distributions. Everything is recomputed from current data on
// every call; the engine holds no derived state of its own.
package reconcile

import (
	"context"
	"sort"
	"strings"

	"github.com/makhzan/school-warehouse-api/internal/application/dto"
	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/domain/repository"
)

// UncategorizedLabel is the fallback bucket for items without a category.
const UncategorizedLabel = "uncategorized"

// recentKindsWindow bounds the ledger scan of the type-distribution widget.
const recentKindsWindow = 500

// UseCase answers the aggregate queries.
type UseCase struct {
	repo          repository.ReconcileRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase builds the engine.
func NewUseCase(repo repository.ReconcileRepository, warehouseRepo repository.WarehouseRepository) *UseCase {
	return &UseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// LowInventory returns the items with quantity <= threshold, ascending by
// quantity. A non-positive threshold falls back to the default of 10.
func (uc *UseCase) LowInventory(ctx context.Context, threshold int) (*dto.LowInventoryResponse, error) {
	if threshold <= 0 {
		threshold = entity.DefaultLowInventoryThreshold
	}
	list, err := uc.repo.ListLowInventory(ctx, threshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, dto.ItemResponse{
			ID:          it.ID,
			Name:        it.Name,
			CategoryID:  it.CategoryID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			Description: it.Description,
			CreatedAt:   it.CreatedAt,
			UpdatedAt:   it.UpdatedAt,
		})
	}
	return &dto.LowInventoryResponse{Threshold: threshold, Items: items}, nil
}

// WarehouseSummary aggregates one warehouse: item count, total quantity,
// category breakdown and the derived status classification.
func (uc *UseCase) WarehouseSummary(ctx context.Context, warehouseID string) (*dto.WarehouseSummaryDTO, error) {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	totals, err := uc.repo.GetWarehouseTotals(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.repo.GetCategoryBreakdown(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	categories := make([]dto.CategoryBreakdownDTO, 0, len(breakdown))
	for _, b := range breakdown {
		name := b.CategoryName
		if name == "" {
			name = UncategorizedLabel
		}
		categories = append(categories, dto.CategoryBreakdownDTO{
			CategoryID:    b.CategoryID,
			CategoryName:  name,
			ItemCount:     b.ItemCount,
			TotalQuantity: b.TotalQuantity,
		})
	}

	return &dto.WarehouseSummaryDTO{
		WarehouseID:   warehouseID,
		ItemCount:     totals.ItemCount,
		TotalQuantity: totals.TotalQuantity,
		Status:        string(entity.ClassifyWarehouse(totals.TotalQuantity)),
		Categories:    categories,
	}, nil
}

// Distribution groups all items by category name or resolved warehouse name,
// summing quantities. by is "category" or "warehouse".
func (uc *UseCase) Distribution(ctx context.Context, by string) (*dto.DistributionResponse, error) {
	if by != "category" && by != "warehouse" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.repo.ListItemSummaries(ctx)
	if err != nil {
		return nil, err
	}
	var slices []dto.LabelValue
	if by == "category" {
		slices = DistributeByCategory(items)
	} else {
		slices = DistributeByWarehouse(items)
	}
	return &dto.DistributionResponse{By: by, Slices: slices}, nil
}

// TransactionTypeDistribution counts recent ledger entries whose submitted
// kind is issue, return, or contains "exchange".
func (uc *UseCase) TransactionTypeDistribution(ctx context.Context) (*dto.DistributionResponse, error) {
	kinds, err := uc.repo.ListTransactionKinds(ctx, recentKindsWindow)
	if err != nil {
		return nil, err
	}
	return &dto.DistributionResponse{By: "transaction_type", Slices: KindDistribution(kinds)}, nil
}

// DistributeByCategory sums quantities per category name, with the
// uncategorized fallback, sorted descending by value.
func DistributeByCategory(items []repository.ItemSummary) []dto.LabelValue {
	totals := map[string]int{}
	for _, it := range items {
		label := it.CategoryName
		if label == "" {
			label = UncategorizedLabel
		}
		totals[label] += it.Quantity
	}
	return sortedSlices(totals)
}

// DistributeByWarehouse sums quantities per resolved warehouse name, sorted
// descending by value.
func DistributeByWarehouse(items []repository.ItemSummary) []dto.LabelValue {
	totals := map[string]int{}
	for _, it := range items {
		totals[it.WarehouseName] += it.Quantity
	}
	return sortedSlices(totals)
}

// KindDistribution buckets submitted transaction kinds into issue, return
// and exchange (any kind containing "exchange") counts; zero buckets are
// omitted.
func KindDistribution(kinds []string) []dto.LabelValue {
	var issues, returns, exchanges int
	for _, k := range kinds {
		switch {
		case k == entity.KindIssue:
			issues++
		case k == entity.KindReturn:
			returns++
		case strings.Contains(k, "exchange"):
			exchanges++
		}
	}
	out := make([]dto.LabelValue, 0, 3)
	if issues > 0 {
		out = append(out, dto.LabelValue{Label: entity.KindIssue, Value: issues})
	}
	if returns > 0 {
		out = append(out, dto.LabelValue{Label: entity.KindReturn, Value: returns})
	}
	if exchanges > 0 {
		out = append(out, dto.LabelValue{Label: "exchange", Value: exchanges})
	}
	return out
}

// sortedSlices orders the buckets descending by value; ties break on label
// for deterministic output.
func sortedSlices(totals map[string]int) []dto.LabelValue {
	out := make([]dto.LabelValue, 0, len(totals))
	for label, value := range totals {
		out = append(out, dto.LabelValue{Label: label, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}
