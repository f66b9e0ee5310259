package movement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makhzan/school-warehouse-api/internal/application/dto"
	"github.com/makhzan/school-warehouse-api/internal/application/movement"
	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/notify"
)

const testUserID = "user-1"

type fixture struct {
	uc    *movement.UseCase
	items *memItemRepo
	txs   *memTxRepo
	hub   *notify.Hub
	log   *opLog
}

func newFixture(t *testing.T, items ...*entity.Item) *fixture {
	t.Helper()
	log := &opLog{}
	itemRepo := newMemItemRepo(log, items...)
	txRepo := &memTxRepo{log: log}
	userRepo := newMemUserRepo(&entity.User{ID: testUserID, NationalID: "29001010100001", Role: entity.RoleEmployee})
	hub := notify.NewHub(50, nil)
	return &fixture{
		uc:    movement.NewUseCase(itemRepo, txRepo, userRepo, hub, nil),
		items: itemRepo,
		txs:   txRepo,
		hub:   hub,
		log:   log,
	}
}

func item(id string, qty int) *entity.Item {
	return &entity.Item{ID: id, Name: "item " + id, WarehouseID: "wh-1", Quantity: qty}
}

func TestIssue_WritesLedgerAndAppliesDelta(t *testing.T) {
	f := newFixture(t, item("chalk", 20))

	resp, err := f.uc.Issue(context.Background(), testUserID, dto.IssueRequest{
		ItemID: "chalk", Quantity: 7, Recipient: "grade 3 teacher",
	})
	require.NoError(t, err)

	require.Len(t, resp.Transactions, 1)
	tx := resp.Transactions[0]
	assert.Equal(t, entity.KindIssue, tx.SourceType)
	assert.Equal(t, entity.TypeOut, tx.Type, "issue normalizes to out")
	assert.Equal(t, -7, tx.Quantity)
	assert.Equal(t, "grade 3 teacher", tx.Recipient)
	assert.NotEmpty(t, tx.EgyptianTimestamp)

	assert.Equal(t, 13, resp.Quantities["chalk"])
	stored, _ := f.items.GetByID(context.Background(), "chalk")
	assert.Equal(t, 13, stored.Quantity)
}

func TestIssue_ClampsAtZeroButLedgerKeepsFullDelta(t *testing.T) {
	f := newFixture(t, item("glue", 3))

	resp, err := f.uc.Issue(context.Background(), testUserID, dto.IssueRequest{
		ItemID: "glue", Quantity: 10, Recipient: "lab",
	})
	require.NoError(t, err)

	// Quantity floors at zero while the ledger records the full -10: the
	// known divergence between store and ledger.
	assert.Equal(t, 0, resp.Quantities["glue"])
	require.Len(t, f.txs.entries, 1)
	assert.Equal(t, -10, f.txs.entries[0].Quantity)
}

func TestIssue_QuantityIsMaxOfZeroAfterAnySequence(t *testing.T) {
	f := newFixture(t, item("pens", 10))
	ctx := context.Background()

	deltas := []int{-4, -9, +5, -2} // running clamp: 10→6→0→5→3
	for _, d := range deltas {
		var err error
		if d < 0 {
			_, err = f.uc.Issue(ctx, testUserID, dto.IssueRequest{ItemID: "pens", Quantity: -d, Recipient: "class"})
		} else {
			_, err = f.uc.Return(ctx, testUserID, dto.ReturnRequest{ItemID: "pens", Quantity: d, Condition: entity.ConditionGood})
		}
		require.NoError(t, err)
	}

	stored, _ := f.items.GetByID(ctx, "pens")
	assert.Equal(t, 3, stored.Quantity)
}

func TestIssue_Validation(t *testing.T) {
	f := newFixture(t, item("chalk", 20))
	ctx := context.Background()

	_, err := f.uc.Issue(ctx, testUserID, dto.IssueRequest{ItemID: "chalk", Quantity: 0, Recipient: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantity must be positive")

	_, err = f.uc.Issue(ctx, testUserID, dto.IssueRequest{ItemID: "chalk", Quantity: 1, Recipient: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "recipient is required")

	_, err = f.uc.Issue(ctx, testUserID, dto.IssueRequest{ItemID: "missing", Quantity: 1, Recipient: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Issue(ctx, "ghost-user", dto.IssueRequest{ItemID: "chalk", Quantity: 1, Recipient: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.txs.entries, "failed validation must not touch the ledger")
}

func TestReturn_CarriesConditionInRecipientField(t *testing.T) {
	f := newFixture(t, item("projector", 2))

	resp, err := f.uc.Return(context.Background(), testUserID, dto.ReturnRequest{
		ItemID: "projector", Quantity: 1, Condition: entity.ConditionDamaged, Notes: "lens cracked",
	})
	require.NoError(t, err)

	require.Len(t, resp.Transactions, 1)
	tx := resp.Transactions[0]
	assert.Equal(t, entity.KindReturn, tx.SourceType)
	assert.Equal(t, entity.TypeIn, tx.Type, "return normalizes to in")
	assert.Equal(t, 1, tx.Quantity)
	assert.Equal(t, entity.ConditionDamaged, tx.Recipient)
	assert.Equal(t, 3, resp.Quantities["projector"])
}

func TestReturn_RejectsUnknownCondition(t *testing.T) {
	f := newFixture(t, item("projector", 2))
	_, err := f.uc.Return(context.Background(), testUserID, dto.ReturnRequest{
		ItemID: "projector", Quantity: 1, Condition: "mangled",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExchange_TwoEntriesAndFinalQuantities(t *testing.T) {
	f := newFixture(t, item("A", 5), item("B", 3))

	resp, err := f.uc.Exchange(context.Background(), testUserID, dto.ExchangeRequest{
		OutgoingItemID: "A", IncomingItemID: "B",
		OutQuantity: 2, InQuantity: 4,
		Recipient: "science lab", Notes: "lab swap",
	})
	require.NoError(t, err)

	require.Len(t, resp.Transactions, 2, "exactly two ledger entries")
	out, in := resp.Transactions[0], resp.Transactions[1]
	assert.Equal(t, entity.KindExchangeOut, out.SourceType)
	assert.Equal(t, -2, out.Quantity)
	assert.Equal(t, "A", out.ItemID)
	assert.Equal(t, entity.KindExchangeIn, in.SourceType)
	assert.Equal(t, 4, in.Quantity)
	assert.Equal(t, "B", in.ItemID)

	assert.Equal(t, "exchange: lab swap", out.Notes)
	assert.Equal(t, "exchange: lab swap", in.Notes)
	assert.Equal(t, "science lab", in.Recipient)

	assert.Equal(t, 3, resp.Quantities["A"])
	assert.Equal(t, 7, resp.Quantities["B"])
}

func TestExchange_FixedFourStepOrder(t *testing.T) {
	f := newFixture(t, item("A", 5), item("B", 3))

	_, err := f.uc.Exchange(context.Background(), testUserID, dto.ExchangeRequest{
		OutgoingItemID: "A", IncomingItemID: "B",
		OutQuantity: 2, InQuantity: 4, Recipient: "lab",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ledger:exchange_out:A:-2",
		"delta:A:-2",
		"ledger:exchange_in:B:4",
		"delta:B:4",
	}, f.log.ops)
}

func TestExchange_NoRollbackWhenQuantityStepFails(t *testing.T) {
	f := newFixture(t, item("A", 5), item("B", 3))
	f.items.failDeltaFor = "A"

	_, err := f.uc.Exchange(context.Background(), testUserID, dto.ExchangeRequest{
		OutgoingItemID: "A", IncomingItemID: "B",
		OutQuantity: 2, InQuantity: 4, Recipient: "lab",
	})
	require.Error(t, err)

	// The outgoing ledger entry stays in place: no compensating rollback.
	require.Len(t, f.txs.entries, 1)
	assert.Equal(t, entity.KindExchangeOut, f.txs.entries[0].SourceType)

	// The incoming half never ran.
	stored, _ := f.items.GetByID(context.Background(), "B")
	assert.Equal(t, 3, stored.Quantity)
}

func TestExchange_Validation(t *testing.T) {
	f := newFixture(t, item("A", 5), item("B", 3))
	ctx := context.Background()

	cases := []dto.ExchangeRequest{
		{IncomingItemID: "B", OutQuantity: 1, InQuantity: 1, Recipient: "x"},
		{OutgoingItemID: "A", OutQuantity: 1, InQuantity: 1, Recipient: "x"},
		{OutgoingItemID: "A", IncomingItemID: "B", OutQuantity: 0, InQuantity: 1, Recipient: "x"},
		{OutgoingItemID: "A", IncomingItemID: "B", OutQuantity: 1, InQuantity: 0, Recipient: "x"},
		{OutgoingItemID: "A", IncomingItemID: "B", OutQuantity: 1, InQuantity: 1},
	}
	for _, in := range cases {
		_, err := f.uc.Exchange(ctx, testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestIssue_PublishesNotificationAndLowStockWarning(t *testing.T) {
	f := newFixture(t, item("chalk", 12))

	var events []string
	f.hub.Subscribe(func(n entity.Notification) { events = append(events, n.Event) })

	_, err := f.uc.Issue(context.Background(), testUserID, dto.IssueRequest{
		ItemID: "chalk", Quantity: 5, Recipient: "grade 1",
	})
	require.NoError(t, err)

	// 12 - 5 = 7 <= threshold 10: issue event plus a low inventory warning.
	assert.Equal(t, []string{"issue", "low_inventory"}, events)
}
