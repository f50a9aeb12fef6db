package entity

import "time"

// Category agrupa medicamentos (analgésicos, antibióticos, etc.).
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
