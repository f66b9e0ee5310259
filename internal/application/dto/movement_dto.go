package dto

import "time"

// IssueRequest hands quantity units of an item to a recipient.
type IssueRequest struct {
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
	Recipient string `json:"recipient"`
	Notes     string `json:"notes,omitempty"`
}

// ReturnRequest takes quantity units back; condition is good, damaged or
// partial.
type ReturnRequest struct {
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition"`
	Notes     string `json:"notes,omitempty"`
}

// ExchangeRequest swaps outgoing units of one item for incoming units of
// another in a single movement.
type ExchangeRequest struct {
	OutgoingItemID string `json:"outgoing_item_id"`
	IncomingItemID string `json:"incoming_item_id"`
	OutQuantity    int    `json:"out_quantity"`
	InQuantity     int    `json:"in_quantity"`
	Recipient      string `json:"recipient"`
	Notes          string `json:"notes,omitempty"`
}

// TransactionResponse is the public view of a ledger entry.
type TransactionResponse struct {
	ID                string    `json:"id"`
	ItemID            string    `json:"item_id"`
	UserID            string    `json:"user_id"`
	SourceType        string    `json:"source_type"`
	Type              string    `json:"type"`
	Quantity          int       `json:"quantity"`
	Recipient         string    `json:"recipient"`
	Notes             string    `json:"notes,omitempty"`
	ExpectedQuantity  *int      `json:"expected_quantity,omitempty"`
	ActualQuantity    *int      `json:"actual_quantity,omitempty"`
	Discrepancy       *int      `json:"discrepancy,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	EgyptianTimestamp string    `json:"egyptian_timestamp"`
}

// MovementResponse reports the ledger entries written by a movement and the
// resulting (clamped) quantities per item.
type MovementResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Quantities   map[string]int        `json:"quantities"` // item id -> new quantity
}

// TransactionListResponse paginated ledger entries.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
