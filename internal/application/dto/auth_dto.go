package dto

import "time"

// LoginRequest credentials: the national id is the login identifier.
type LoginRequest struct {
	NationalID string `json:"national_id"`
	Password   string `json:"password"`
}

// LoginResponse token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest creates a user account (admin only).
type RegisterRequest struct {
	NationalID  string `json:"national_id"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	WarehouseID string `json:"warehouse_id,omitempty"`
}

// UserResponse is the public view of a user (never the password hash).
type UserResponse struct {
	ID          string    `json:"id"`
	NationalID  string    `json:"national_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse paginated users.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateUserRequest partial update; nil fields stay unchanged.
type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"`
	Password    *string `json:"password,omitempty"`
	Role        *string `json:"role,omitempty"`
	WarehouseID *string `json:"warehouse_id,omitempty"`
}
