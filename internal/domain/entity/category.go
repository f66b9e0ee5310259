package entity

import "time"

// Category groups items for reporting and distribution charts.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
