package dto

import "time"

// CreateMedicineRequest alta de medicamento.
type CreateMedicineRequest struct {
	Barcode      string `json:"barcode"`
	DrugName     string `json:"drug_name"`
	GenericName  string `json:"generic_name"`
	Unit         string `json:"unit"`
	CategoryID   string `json:"category_id"`
	ReorderLevel int    `json:"reorder_level"`
	ImageURL     string `json:"image_url"`
}

// UpdateMedicineRequest actualización parcial (nil = sin cambio).
type UpdateMedicineRequest struct {
	Barcode      *string `json:"barcode"`
	DrugName     *string `json:"drug_name"`
	GenericName  *string `json:"generic_name"`
	Unit         *string `json:"unit"`
	CategoryID   *string `json:"category_id"`
	ReorderLevel *int    `json:"reorder_level"`
	ImageURL     *string `json:"image_url"`
}

// MedicineResponse medicamento con su stock derivado.
type MedicineResponse struct {
	DrugID       string    `json:"drug_id"`
	Barcode      string    `json:"barcode,omitempty"`
	DrugName     string    `json:"drug_name"`
	GenericName  string    `json:"generic_name,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	CategoryID   string    `json:"category_id,omitempty"`
	ReorderLevel int       `json:"reorder_level"`
	ImageURL     string    `json:"image_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CurrentStock *int      `json:"current_stock,omitempty"` // solo en el detalle
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MedicineListResponse listado paginado.
type MedicineListResponse struct {
	Items []MedicineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
