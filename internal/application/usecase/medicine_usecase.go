package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/textutil"
)

// MedicineUseCase CRUD de medicamentos. El stock no se edita aquí: se deriva
// de los lotes y solo muta vía inventario.
type MedicineUseCase struct {
	repo      repository.MedicineRepository
	batchRepo repository.BatchRepository
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(repo repository.MedicineRepository, batchRepo repository.BatchRepository) *MedicineUseCase {
	return &MedicineUseCase{repo: repo, batchRepo: batchRepo}
}

// Create crea un medicamento. Barcode duplicado → ErrDuplicate.
func (uc *MedicineUseCase) Create(in dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if in.DrugName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Barcode != "" {
		existing, _ := uc.repo.GetByBarcode(in.Barcode)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	reorder := in.ReorderLevel
	if reorder <= 0 {
		reorder = 10
	}
	now := time.Now()
	med := &entity.Medicine{
		ID:           uuid.New().String(),
		Barcode:      in.Barcode,
		DrugName:     in.DrugName,
		GenericName:  in.GenericName,
		Unit:         in.Unit,
		CategoryID:   in.CategoryID,
		ReorderLevel: reorder,
		ImageURL:     in.ImageURL,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(med); err != nil {
		return nil, err
	}
	return toMedicineResponse(med, nil), nil
}

// GetByID medicamento con su stock derivado (suma de lotes activos).
func (uc *MedicineUseCase) GetByID(id string) (*dto.MedicineResponse, error) {
	med, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.batchRepo.SumQuantityByDrug(id)
	if err != nil {
		return nil, err
	}
	return toMedicineResponse(med, &stock), nil
}

// Update actualización parcial.
func (uc *MedicineUseCase) Update(id string, in dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	med, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}
	if in.Barcode != nil {
		med.Barcode = *in.Barcode
	}
	if in.DrugName != nil {
		if *in.DrugName == "" {
			return nil, domain.ErrInvalidInput
		}
		med.DrugName = *in.DrugName
	}
	if in.GenericName != nil {
		med.GenericName = *in.GenericName
	}
	if in.Unit != nil {
		med.Unit = *in.Unit
	}
	if in.CategoryID != nil {
		med.CategoryID = *in.CategoryID
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		med.ReorderLevel = *in.ReorderLevel
	}
	if in.ImageURL != nil {
		med.ImageURL = *in.ImageURL
	}
	med.UpdatedAt = time.Now()
	if err := uc.repo.Update(med); err != nil {
		return nil, err
	}
	return toMedicineResponse(med, nil), nil
}

// List medicamentos con búsqueda insensible a tildes y paginación.
func (uc *MedicineUseCase) List(search, categoryID string, limit, offset int) (*dto.MedicineListResponse, error) {
	list, err := uc.repo.List(repository.MedicineFilter{
		Search:     textutil.Normalize(search),
		CategoryID: categoryID,
		OnlyActive: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicineResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMedicineResponse(m, nil))
	}
	return &dto.MedicineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Deactivate baja lógica; los lotes del medicamento quedan fuera de FEFO al
// consultarse junto con la ficha activa.
func (uc *MedicineUseCase) Deactivate(id string) error {
	med, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if med == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id)
}

func toMedicineResponse(m *entity.Medicine, stock *int) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		DrugID:       m.ID,
		Barcode:      m.Barcode,
		DrugName:     m.DrugName,
		GenericName:  m.GenericName,
		Unit:         m.Unit,
		CategoryID:   m.CategoryID,
		ReorderLevel: m.ReorderLevel,
		ImageURL:     m.ImageURL,
		IsActive:     m.IsActive,
		CurrentStock: stock,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
