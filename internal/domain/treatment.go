package domain

import "time"

// Treatment процедура из каталога салона
type Treatment struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
