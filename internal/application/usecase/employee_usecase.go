package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// EmployeeUseCase CRUD de empleados. Sin credenciales: la identidad llega
// en el token emitido fuera de esta API.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create email duplicado → ErrDuplicate; rol desconocido → ErrInvalidInput.
func (uc *EmployeeUseCase) Create(in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	emp := &entity.Employee{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(emp); err != nil {
		return nil, err
	}
	return toEmployeeResponse(emp), nil
}

func (uc *EmployeeUseCase) GetByID(id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(emp), nil
}

func (uc *EmployeeUseCase) Update(id string, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	emp.Name = in.Name
	emp.Email = in.Email
	emp.Role = in.Role
	if err := uc.repo.Update(emp); err != nil {
		return nil, err
	}
	return toEmployeeResponse(emp), nil
}

func (uc *EmployeeUseCase) List(limit, offset int) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

func (uc *EmployeeUseCase) Deactivate(id string) error {
	emp, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		EmployeeID: e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
	}
}
