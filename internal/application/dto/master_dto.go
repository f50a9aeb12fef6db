package dto

import "time"

// ── Categorías ────────────────────────────────────────────────────────────────

// CategoryRequest alta/edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría.
type CategoryResponse struct {
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// SupplierRequest alta/edición de proveedor.
type SupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

// SupplierResponse proveedor.
type SupplierResponse struct {
	SupplierID string    `json:"supplier_id"`
	Name       string    `json:"name"`
	Contact    string    `json:"contact,omitempty"`
	Address    string    `json:"address,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// ── Empleados ─────────────────────────────────────────────────────────────────

// EmployeeRequest alta/edición de empleado.
type EmployeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// EmployeeResponse empleado.
type EmployeeResponse struct {
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}
