package dto

import "time"

// CreateAuditRequest records a physical count of one item.
type CreateAuditRequest struct {
	WarehouseID      string `json:"warehouse_id"`
	ItemID           string `json:"item_id"`
	ExpectedQuantity int    `json:"expected_quantity"`
	ActualQuantity   int    `json:"actual_quantity"`
	Notes            string `json:"notes,omitempty"`
}

// AuditResponse is the public view of a daily audit record.
type AuditResponse struct {
	ID                string    `json:"id"`
	WarehouseID       string    `json:"warehouse_id"`
	ItemID            string    `json:"item_id"`
	UserID            string    `json:"user_id"`
	ExpectedQuantity  int       `json:"expected_quantity"`
	ActualQuantity    int       `json:"actual_quantity"`
	Discrepancy       int       `json:"discrepancy"`
	Notes             string    `json:"notes,omitempty"`
	AuditDate         string    `json:"audit_date"` // YYYY-MM-DD in the local zone
	EgyptianTimestamp string    `json:"egyptian_timestamp"`
	CreatedAt         time.Time `json:"created_at"`
}

// AuditListResponse paginated audit records.
type AuditListResponse struct {
	Items []AuditResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
