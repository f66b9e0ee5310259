package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User represents an account that can log in and act on the ledger.
// NationalID is the login identifier; employees are optionally pinned to a
// single warehouse.
type User struct {
	ID           string
	NationalID   string
	Name         string
	PasswordHash string // bcrypt hash, never plain after persisting
	Role         string // admin, employee
	WarehouseID  string // empty for admins with global access
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
