// Package movement implements the three stock movement operations: issue,
// return and exchange. Each operation validates its input, appends ledger
// entries and then applies the clamped quantity deltas — strictly in that
// order, with no enclosing transaction and no compensating rollback. A step
// that fails surfaces its error and leaves the previously completed steps in
// place.
package movement

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

// UseCase runs the movement operations against the ledger and the quantity
// store and publishes a notification per completed movement.
type UseCase struct {
	itemRepo repository.ItemRepository
	txRepo   repository.TransactionRepository
	userRepo repository.UserRepository
	hub      *notify.Hub
	loc      *time.Location
}

// NewUseCase builds the use case. loc is the zone used for ledger
// timestamps; nil falls back to UTC.
func NewUseCase(
	itemRepo repository.ItemRepository,
	txRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	hub *notify.Hub,
	loc *time.Location,
) *UseCase {
	return &UseCase{itemRepo: itemRepo, txRepo: txRepo, userRepo: userRepo, hub: hub, loc: loc}
}

// Issue hands quantity units of an item to a recipient: one ledger entry
// (issue, -quantity), then the quantity delta.
func (uc *UseCase) Issue(ctx context.Context, userID string, in dto.IssueRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 || in.Recipient == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.requireItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	tx := &entity.Transaction{
		ItemID:     in.ItemID,
		UserID:     userID,
		SourceType: entity.KindIssue,
		Quantity:   -in.Quantity,
		Recipient:  in.Recipient,
		Notes:      in.Notes,
	}
	if err := uc.record(ctx, tx); err != nil {
		return nil, err
	}
	newQty, err := uc.itemRepo.ApplyDelta(ctx, in.ItemID, -in.Quantity)
	if err != nil {
		return nil, err
	}

	uc.publish("issue", fmt.Sprintf("issued %d x %s to %s", in.Quantity, item.Name, in.Recipient), map[string]any{
		"item_id":   item.ID,
		"item_name": item.Name,
		"quantity":  in.Quantity,
		"recipient": in.Recipient,
	})
	uc.warnLowInventory(item, newQty)

	return &dto.MovementResponse{
		Transactions: []dto.TransactionResponse{toTransactionResponse(tx)},
		Quantities:   map[string]int{in.ItemID: newQty},
	}, nil
}

// Return takes quantity units back into stock: one ledger entry (return,
// +quantity) with the condition carried in the recipient field, then the
// quantity delta.
func (uc *UseCase) Return(ctx context.Context, userID string, in dto.ReturnRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Condition {
	case entity.ConditionGood, entity.ConditionDamaged, entity.ConditionPartial:
	default:
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.requireItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	tx := &entity.Transaction{
		ItemID:     in.ItemID,
		UserID:     userID,
		SourceType: entity.KindReturn,
		Quantity:   in.Quantity,
		Recipient:  in.Condition, // recipient field repurposed for the condition
		Notes:      in.Notes,
	}
	if err := uc.record(ctx, tx); err != nil {
		return nil, err
	}
	newQty, err := uc.itemRepo.ApplyDelta(ctx, in.ItemID, in.Quantity)
	if err != nil {
		return nil, err
	}

	uc.publish("return", fmt.Sprintf("returned %d x %s (%s)", in.Quantity, item.Name, in.Condition), map[string]any{
		"item_id":   item.ID,
		"item_name": item.Name,
		"quantity":  in.Quantity,
		"condition": in.Condition,
	})

	return &dto.MovementResponse{
		Transactions: []dto.TransactionResponse{toTransactionResponse(tx)},
		Quantities:   map[string]int{in.ItemID: newQty},
	}, nil
}

// Exchange swaps outgoing units of one item for incoming units of another.
// Fixed four-step sequence: ledger(out) -> quantity(out) -> ledger(in) ->
// quantity(in). Both entries share the recipient and notes; notes get an
// "exchange: " prefix when present.
func (uc *UseCase) Exchange(ctx context.Context, userID string, in dto.ExchangeRequest) (*dto.MovementResponse, error) {
	if in.OutgoingItemID == "" || in.IncomingItemID == "" ||
		in.OutQuantity <= 0 || in.InQuantity <= 0 || in.Recipient == "" {
		return nil, domain.ErrInvalidInput
	}
	outItem, err := uc.requireItem(ctx, in.OutgoingItemID)
	if err != nil {
		return nil, err
	}
	inItem, err := uc.requireItem(ctx, in.IncomingItemID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	notes := in.Notes
	if notes != "" {
		notes = "exchange: " + notes
	}

	outTx := &entity.Transaction{
		ItemID:     in.OutgoingItemID,
		UserID:     userID,
		SourceType: entity.KindExchangeOut,
		Quantity:   -in.OutQuantity,
		Recipient:  in.Recipient,
		Notes:      notes,
	}
	if err := uc.record(ctx, outTx); err != nil {
		return nil, err
	}
	outQty, err := uc.itemRepo.ApplyDelta(ctx, in.OutgoingItemID, -in.OutQuantity)
	if err != nil {
		return nil, err
	}

	inTx := &entity.Transaction{
		ItemID:     in.IncomingItemID,
		UserID:     userID,
		SourceType: entity.KindExchangeIn,
		Quantity:   in.InQuantity,
		Recipient:  in.Recipient,
		Notes:      notes,
	}
	if err := uc.record(ctx, inTx); err != nil {
		return nil, err
	}
	inQty, err := uc.itemRepo.ApplyDelta(ctx, in.IncomingItemID, in.InQuantity)
	if err != nil {
		return nil, err
	}

	uc.publish("exchange",
		fmt.Sprintf("exchanged %d x %s for %d x %s (%s)",
			in.OutQuantity, outItem.Name, in.InQuantity, inItem.Name, in.Recipient),
		map[string]any{
			"outgoing_item_id": outItem.ID,
			"incoming_item_id": inItem.ID,
			"out_quantity":     in.OutQuantity,
			"in_quantity":      in.InQuantity,
			"recipient":        in.Recipient,
		})
	uc.warnLowInventory(outItem, outQty)

	return &dto.MovementResponse{
		Transactions: []dto.TransactionResponse{
			toTransactionResponse(outTx),
			toTransactionResponse(inTx),
		},
		Quantities: map[string]int{
			in.OutgoingItemID: outQty,
			in.IncomingItemID: inQty,
		},
	}, nil
}

// ListByItem returns the ledger entries of an item, newest first.
func (uc *UseCase) ListByItem(ctx context.Context, itemID string, limit, offset int) (*dto.TransactionListResponse, error) {
	list, err := uc.txRepo.ListByItem(ctx, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, toTransactionResponse(tx))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// record normalizes, validates and appends one ledger entry. The full
// requested delta is always recorded, even when the quantity store will
// later clamp its application at zero.
func (uc *UseCase) record(ctx context.Context, tx *entity.Transaction) error {
	if tx.ItemID == "" || tx.UserID == "" {
		return domain.ErrInvalidInput
	}
	persisted, err := entity.NormalizeKind(tx.SourceType)
	if err != nil {
		return err
	}
	if err := entity.ValidateDirection(tx.SourceType, tx.Quantity); err != nil {
		return err
	}
	tx.Type = persisted
	tx.Discrepancy = entity.ComputeDiscrepancy(tx.ExpectedQuantity, tx.ActualQuantity)

	now := time.Now()
	tx.ID = uuid.New().String()
	tx.CreatedAt = now
	tx.EgyptianTimestamp = entity.FormatEgyptianTimestamp(now, uc.loc)

	return uc.txRepo.Create(ctx, tx)
}

func (uc *UseCase) requireItem(ctx context.Context, itemID string) (*entity.Item, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (uc *UseCase) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *UseCase) publish(event, message string, payload map[string]any) {
	if uc.hub == nil {
		return
	}
	uc.hub.Publish(entity.Notification{Event: event, Message: message, Payload: payload})
}

// warnLowInventory pushes a restocking notification when a movement leaves
// the item at or below the default threshold.
func (uc *UseCase) warnLowInventory(item *entity.Item, newQty int) {
	if newQty > entity.DefaultLowInventoryThreshold {
		return
	}
	uc.publish("low_inventory",
		fmt.Sprintf("%s is low on stock (%d left)", item.Name, newQty),
		map[string]any{"item_id": item.ID, "item_name": item.Name, "quantity": newQty})
}

func toTransactionResponse(tx *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                tx.ID,
		ItemID:            tx.ItemID,
		UserID:            tx.UserID,
		SourceType:        tx.SourceType,
		Type:              tx.Type,
		Quantity:          tx.Quantity,
		Recipient:         tx.Recipient,
		Notes:             tx.Notes,
		ExpectedQuantity:  tx.ExpectedQuantity,
		ActualQuantity:    tx.ActualQuantity,
		Discrepancy:       tx.Discrepancy,
		CreatedAt:         tx.CreatedAt,
		EgyptianTimestamp: tx.EgyptianTimestamp,
	}
}
