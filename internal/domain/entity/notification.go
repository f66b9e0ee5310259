package entity

import "time"

// Notification is the payload pushed on the broadcast channel after a
// movement or audit. The payload is forwarded verbatim to subscribers.
type Notification struct {
	ID        string         `json:"id"`
	Event     string         `json:"event"` // issue, return, exchange, daily_audit
	Message   string         `json:"message"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
