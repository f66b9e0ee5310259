package movement_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/makhzan/school-warehouse-api/internal/domain"
	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

// opLog records the order of ledger writes and quantity applications so the
// tests can assert the fixed step sequence.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

// memItemRepo in-memory quantity store with the clamp-at-zero semantics.
type memItemRepo struct {
	items map[string]*entity.Item
	log   *opLog
	// failDeltaFor injects a failure on ApplyDelta for one item id.
	failDeltaFor string
}

func newMemItemRepo(log *opLog, items ...*entity.Item) *memItemRepo {
	m := &memItemRepo{items: map[string]*entity.Item{}, log: log}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	m.items[item.ID] = item
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
	return nil, errors.New("not implemented")
}

func (m *memItemRepo) Update(_ context.Context, item *entity.Item) error {
	m.items[item.ID] = item
	return nil
}

func (m *memItemRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memItemRepo) ApplyDelta(_ context.Context, itemID string, delta int) (int, error) {
	if m.log != nil {
		m.log.add(fmt.Sprintf("delta:%s:%d", itemID, delta))
	}
	if itemID == m.failDeltaFor {
		return 0, errors.New("simulated store failure")
	}
	it, ok := m.items[itemID]
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

// memTxRepo in-memory append-only ledger.
type memTxRepo struct {
	entries []*entity.Transaction
	log     *opLog
}

func (m *memTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	if m.log != nil {
		m.log.add(fmt.Sprintf("ledger:%s:%s:%d", tx.SourceType, tx.ItemID, tx.Quantity))
	}
	cp := *tx
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memTxRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	for _, tx := range m.entries {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (m *memTxRepo) ListByItem(_ context.Context, itemID string, _, _ int) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range m.entries {
		if tx.ItemID == itemID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memTxRepo) ListRecent(_ context.Context, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]*entity.Transaction, 0, limit)
	for i := len(m.entries) - 1; i >= len(m.entries)-limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *memTxRepo) CountByItem(_ context.Context, itemID string) (int, error) {
	n := 0
	for _, tx := range m.entries {
		if tx.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

// memUserRepo minimal user lookup.
type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	m := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUserRepo) Create(_ context.Context, user *entity.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *memUserRepo) GetByNationalID(_ context.Context, nationalID string) (*entity.User, error) {
	for _, u := range m.users {
		if u.NationalID == nationalID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) List(context.Context, int, int) ([]*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (m *memUserRepo) Update(_ context.Context, user *entity.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}
