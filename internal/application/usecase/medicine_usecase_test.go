package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/textutil"
)

// ─────────────────────────────────────────────
// Fake de MedicineRepository con la semántica de búsqueda del adaptador
// postgres: search_name (nombre + genérico normalizados) o código de barras.
// ─────────────────────────────────────────────

type searchFakeMedicineRepo struct {
	meds []*entity.Medicine

	lastSearch string // término tal como llegó al repo
}

func (r *searchFakeMedicineRepo) Create(m *entity.Medicine) error {
	cp := *m
	r.meds = append(r.meds, &cp)
	return nil
}

func (r *searchFakeMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	for _, m := range r.meds {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *searchFakeMedicineRepo) GetByBarcode(barcode string) (*entity.Medicine, error) {
	for _, m := range r.meds {
		if m.Barcode == barcode {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *searchFakeMedicineRepo) Update(*entity.Medicine) error { return nil }
func (r *searchFakeMedicineRepo) Deactivate(string) error       { return nil }

func (r *searchFakeMedicineRepo) List(f repository.MedicineFilter) ([]*entity.Medicine, error) {
	r.lastSearch = f.Search
	var out []*entity.Medicine
	for _, m := range r.meds {
		if f.OnlyActive && !m.IsActive {
			continue
		}
		if f.Search != "" {
			searchName := textutil.Normalize(m.DrugName + " " + m.GenericName)
			byName := strings.Contains(searchName, f.Search)
			byBarcode := m.Barcode != "" && strings.Contains(strings.ToLower(m.Barcode), f.Search)
			if !byName && !byBarcode {
				continue
			}
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *searchFakeMedicineRepo) ListLowStock() ([]repository.LowStockResult, error) {
	return nil, nil
}

func repoWith(meds ...*entity.Medicine) *searchFakeMedicineRepo {
	r := &searchFakeMedicineRepo{}
	for _, m := range meds {
		cp := *m
		r.meds = append(r.meds, &cp)
	}
	return r
}

func med(id, name, generic, barcode string) *entity.Medicine {
	return &entity.Medicine{
		ID:          id,
		DrugName:    name,
		GenericName: generic,
		Barcode:     barcode,
		IsActive:    true,
	}
}

// ─────────────────────────────────────────────
// Tests de búsqueda
// ─────────────────────────────────────────────

func TestMedicineList_BuscaPorCodigoDeBarras(t *testing.T) {
	repo := repoWith(
		med("med-ibu", "Ibuprofeno 400mg", "", "7701234567890"),
		med("med-amx", "Amoxicilina 500mg", "", "7709876543210"),
	)
	uc := usecase.NewMedicineUseCase(repo, nil)

	resp, err := uc.List("7701234567890", "", 50, 0)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "med-ibu", resp.Items[0].DrugID)
}

func TestMedicineList_BuscaPorNombreSinTildes(t *testing.T) {
	repo := repoWith(
		med("med-ace", "Acetaminofén 500mg", "Paracetamol", ""),
		med("med-ibu", "Ibuprofeno 400mg", "", ""),
	)
	uc := usecase.NewMedicineUseCase(repo, nil)

	// El término llega con tildes y mayúsculas; el caso de uso lo normaliza
	// antes de pasarlo al repo.
	resp, err := uc.List("ACETAMINOFÉN", "", 50, 0)
	require.NoError(t, err)

	assert.Equal(t, "acetaminofen", repo.lastSearch)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "med-ace", resp.Items[0].DrugID)
}

func TestMedicineList_BuscaPorNombreGenerico(t *testing.T) {
	repo := repoWith(med("med-ace", "Acetaminofén 500mg", "Paracetamol", ""))
	uc := usecase.NewMedicineUseCase(repo, nil)

	resp, err := uc.List("paracetamol", "", 50, 0)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "med-ace", resp.Items[0].DrugID)
}
