package repository

import "github.com/jhoicas/Farmacia-api/internal/domain/entity"

// CategoryRepository acceso a categorías de medicamentos.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(c *entity.Category) error
	Deactivate(id string) error
	List(limit, offset int) ([]*entity.Category, error)
}

// SupplierRepository acceso a proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Deactivate(id string) error
	List(limit, offset int) ([]*entity.Supplier, error)
}

// EmployeeRepository acceso a empleados (dato maestro de actores, sin credenciales).
type EmployeeRepository interface {
	Create(e *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByEmail(email string) (*entity.Employee, error)
	Update(e *entity.Employee) error
	Deactivate(id string) error
	List(limit, offset int) ([]*entity.Employee, error)
}
