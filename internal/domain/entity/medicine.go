package entity

import "time"

// Medicine ficha maestra de un medicamento. El stock nunca se cachea aquí:
// siempre se deriva sumando los lotes activos (InventoryBatch).
type Medicine struct {
	ID           string
	Barcode      string // opcional
	DrugName     string
	GenericName  string // opcional
	Unit         string // presentación: tableta, frasco, ampolla...
	CategoryID   string // opcional
	ReorderLevel int    // umbral de alerta de stock bajo
	ImageURL     string // opcional
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
