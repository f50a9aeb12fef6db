package entity

import "time"

// Supplier proveedor de lotes de inventario.
type Supplier struct {
	ID        string
	Name      string
	Contact   string // opcional
	Address   string // opcional
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
