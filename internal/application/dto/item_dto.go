package dto

import "time"

// CreateItemRequest registers a new item with its opening quantity.
type CreateItemRequest struct {
	Name        string `json:"name"`
	CategoryID  string `json:"category_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// UpdateItemRequest partial update; nil fields stay unchanged. Quantity here
// is a direct administrative edit, not a movement — it leaves no ledger entry.
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
	WarehouseID *string `json:"warehouse_id,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ItemResponse is the public view of an item.
type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CategoryID  string    `json:"category_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemListResponse paginated items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
