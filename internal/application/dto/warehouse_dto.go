package dto

import "time"

// CreateWarehouseRequest registers a new warehouse.
type CreateWarehouseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateWarehouseRequest partial update; nil fields stay unchanged.
type UpdateWarehouseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// WarehouseResponse is the public view of a warehouse.
type WarehouseResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WarehouseListResponse paginated warehouses.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CategoryBreakdownDTO per-category slice of a warehouse summary.
type CategoryBreakdownDTO struct {
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	ItemCount     int    `json:"item_count"`
	TotalQuantity int    `json:"total_quantity"`
}

// WarehouseSummaryDTO aggregate view of one warehouse: totals, category
// breakdown and the derived status (low / normal / high).
type WarehouseSummaryDTO struct {
	WarehouseID   string                 `json:"warehouse_id"`
	ItemCount     int                    `json:"item_count"`
	TotalQuantity int                    `json:"total_quantity"`
	Status        string                 `json:"status"`
	Categories    []CategoryBreakdownDTO `json:"categories"`
}
