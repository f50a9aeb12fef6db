package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

func (uc *SupplierUseCase) Create(in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	sup := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Address:   in.Address,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	sup, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(sup), nil
}

func (uc *SupplierUseCase) Update(id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	sup.Name = in.Name
	sup.Contact = in.Contact
	sup.Address = in.Address
	if err := uc.repo.Update(sup); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

func (uc *SupplierUseCase) List(limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func (uc *SupplierUseCase) Deactivate(id string) error {
	sup, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sup == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		SupplierID: s.ID,
		Name:       s.Name,
		Contact:    s.Contact,
		Address:    s.Address,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
	}
}
