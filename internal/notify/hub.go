// Package notify implements the single in-process broadcast channel for the
// real-time notification feed. One topic, synchronous fanout: Publish calls
// every subscriber on the publishing goroutine, in registration order, and a
// panicking subscriber never prevents the rest from running.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/pkg/logger"
)

// Subscriber receives every published notification.
type Subscriber func(n entity.Notification)

// Hub is the broadcast channel. It also keeps a bounded ring of recent
// notifications backing the feed endpoint.
type Hub struct {
	mu     sync.RWMutex
	subs   []Subscriber
	recent []entity.Notification
	max    int
	log    *logger.Logger
}

// NewHub builds a hub keeping up to bufferSize recent notifications.
func NewHub(bufferSize int, log *logger.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &Hub{max: bufferSize, log: log}
}

// Subscribe registers a subscriber. Subscribers are invoked in registration
// order and cannot be removed; the hub lives for the process lifetime.
func (h *Hub) Subscribe(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, s)
}

// Publish stamps the notification (ID, timestamp when missing), records it
// in the recent ring and delivers it synchronously to every subscriber.
func (h *Hub) Publish(n entity.Notification) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	h.mu.Lock()
	h.recent = append(h.recent, n)
	if len(h.recent) > h.max {
		h.recent = h.recent[len(h.recent)-h.max:]
	}
	subs := make([]Subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		h.deliver(s, n)
	}
}

// deliver isolates one subscriber call: a panic is recovered and logged so
// the remaining subscribers still run.
func (h *Hub) deliver(s Subscriber, n entity.Notification) {
	defer func() {
		if r := recover(); r != nil && h.log != nil {
			h.log.Error().Interface("panic", r).Str("notification_id", n.ID).
				Msg("notification subscriber panicked")
		}
	}()
	s(n)
}

// Recent returns up to limit of the latest notifications, newest first.
func (h *Hub) Recent(limit int) []entity.Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if limit <= 0 || limit > len(h.recent) {
		limit = len(h.recent)
	}
	out := make([]entity.Notification, 0, limit)
	for i := len(h.recent) - 1; i >= len(h.recent)-limit; i-- {
		out = append(out, h.recent[i])
	}
	return out
}
