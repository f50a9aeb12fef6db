package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// ─────────────────────────────────────────────
// Estado en memoria compartido por los fakes
// ─────────────────────────────────────────────

// memState guarda lotes y asientos en memoria. El mutex vive en el runner:
// cada transacción entra serializada, igual que con los locks de fila.
type memState struct {
	batches map[string]*entity.InventoryBatch
	txns    []*entity.StockTransaction

	// failTxnCreateAfter < 0 deshabilita la inyección; con n >= 0 el Create
	// número n+1 de asientos devuelve error (para probar el rollback).
	failTxnCreateAfter int
	txnCreates         int
}

func newMemState() *memState {
	return &memState{
		batches:            make(map[string]*entity.InventoryBatch),
		failTxnCreateAfter: -1,
	}
}

func (s *memState) addBatch(b *entity.InventoryBatch) {
	cp := *b
	s.batches[b.ID] = &cp
}

type memSnapshot struct {
	batches    map[string]*entity.InventoryBatch
	txns       []*entity.StockTransaction
	txnCreates int
}

func (s *memState) snapshot() memSnapshot {
	snap := memSnapshot{
		batches:    make(map[string]*entity.InventoryBatch, len(s.batches)),
		txns:       append([]*entity.StockTransaction(nil), s.txns...),
		txnCreates: s.txnCreates,
	}
	for id, b := range s.batches {
		cp := *b
		snap.batches[id] = &cp
	}
	return snap
}

func (s *memState) restore(snap memSnapshot) {
	s.batches = snap.batches
	s.txns = snap.txns
	s.txnCreates = snap.txnCreates
}

func (s *memState) txnsOfType(transType string) []*entity.StockTransaction {
	var out []*entity.StockTransaction
	for _, t := range s.txns {
		if t.TransType == transType {
			out = append(out, t)
		}
	}
	return out
}

// ─────────────────────────────────────────────
// fakeTxRunner
// ─────────────────────────────────────────────

// fakeTxRunner serializa las transacciones con un mutex y revierte el estado
// al snapshot previo cuando fn devuelve error.
type fakeTxRunner struct {
	mu sync.Mutex
	st *memState
}

func newFakeTxRunner() *fakeTxRunner {
	return &fakeTxRunner{st: newMemState()}
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	batchRepo repository.BatchRepository,
	txnRepo repository.StockTransactionRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.st.snapshot()
	if err := fn(&fakeBatchRepo{st: r.st}, &fakeTxnRepo{st: r.st}); err != nil {
		r.st.restore(snap)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────
// fakeBatchRepo
// ─────────────────────────────────────────────

type fakeBatchRepo struct {
	st *memState
}

func (r *fakeBatchRepo) Create(batch *entity.InventoryBatch) error {
	if _, ok := r.st.batches[batch.ID]; ok {
		return errors.New("lote duplicado")
	}
	r.st.addBatch(batch)
	return nil
}

func (r *fakeBatchRepo) GetByID(id string) (*entity.InventoryBatch, error) {
	b, ok := r.st.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) GetForUpdate(id string) (*entity.InventoryBatch, error) {
	return r.GetByID(id)
}

func (r *fakeBatchRepo) ListEligibleForUpdate(drugID string, today time.Time) ([]*entity.InventoryBatch, error) {
	var out []*entity.InventoryBatch
	for _, b := range r.st.batches {
		if b.DrugID != drugID || !b.IsActive || b.QuantityInStock <= 0 {
			continue
		}
		if b.ExpDate != nil && !b.ExpDate.After(today) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sortFEFO(out)
	return out, nil
}

func (r *fakeBatchRepo) ListExpiredForUpdate(today time.Time) ([]*entity.InventoryBatch, error) {
	var out []*entity.InventoryBatch
	for _, b := range r.st.batches {
		if !b.IsActive || b.QuantityInStock <= 0 {
			continue
		}
		if b.ExpDate == nil || b.ExpDate.After(today) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sortFEFO(out)
	return out, nil
}

func (r *fakeBatchRepo) DecrementQuantity(id string, qty int, now time.Time) error {
	b, ok := r.st.batches[id]
	if !ok || b.QuantityInStock < qty {
		return errors.New("lote inexistente o cantidad insuficiente")
	}
	b.QuantityInStock -= qty
	b.UpdatedAt = now
	return nil
}

func (r *fakeBatchRepo) UpdateQuantity(id string, qty int, now time.Time) error {
	b, ok := r.st.batches[id]
	if !ok {
		return errors.New("lote inexistente")
	}
	b.QuantityInStock = qty
	b.UpdatedAt = now
	return nil
}

func (r *fakeBatchRepo) Deactivate(id string, now time.Time) error {
	b, ok := r.st.batches[id]
	if !ok {
		return errors.New("lote inexistente")
	}
	b.IsActive = false
	b.UpdatedAt = now
	return nil
}

func (r *fakeBatchRepo) List(f repository.BatchFilter) ([]repository.BatchListRow, error) {
	var out []repository.BatchListRow
	for _, b := range r.st.batches {
		if f.DrugID != "" && b.DrugID != f.DrugID {
			continue
		}
		out = append(out, repository.BatchListRow{Batch: *b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Batch.ID < out[j].Batch.ID })
	return out, nil
}

func (r *fakeBatchRepo) ListExpiring(threshold time.Time) ([]repository.BatchListRow, error) {
	var out []repository.BatchListRow
	for _, b := range r.st.batches {
		if !b.IsActive || b.QuantityInStock <= 0 || b.ExpDate == nil || b.ExpDate.After(threshold) {
			continue
		}
		out = append(out, repository.BatchListRow{Batch: *b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Batch.ExpDate.Before(*out[j].Batch.ExpDate) })
	return out, nil
}

func (r *fakeBatchRepo) SumQuantityByDrug(drugID string) (int, error) {
	total := 0
	for _, b := range r.st.batches {
		if b.DrugID == drugID && b.IsActive {
			total += b.QuantityInStock
		}
	}
	return total, nil
}

// sortFEFO vencimiento ascendente, nulls al final, desempate por id.
func sortFEFO(batches []*entity.InventoryBatch) {
	sort.Slice(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		switch {
		case a.ExpDate == nil && b.ExpDate == nil:
			return a.ID < b.ID
		case a.ExpDate == nil:
			return false
		case b.ExpDate == nil:
			return true
		case a.ExpDate.Equal(*b.ExpDate):
			return a.ID < b.ID
		default:
			return a.ExpDate.Before(*b.ExpDate)
		}
	})
}

// ─────────────────────────────────────────────
// fakeTxnRepo
// ─────────────────────────────────────────────

type fakeTxnRepo struct {
	st *memState
}

func (r *fakeTxnRepo) Create(txn *entity.StockTransaction) error {
	if r.st.failTxnCreateAfter >= 0 && r.st.txnCreates >= r.st.failTxnCreateAfter {
		return errors.New("fallo inyectado")
	}
	r.st.txnCreates++
	cp := *txn
	r.st.txns = append(r.st.txns, &cp)
	return nil
}

func (r *fakeTxnRepo) List(f repository.TransactionFilter) ([]repository.TransactionListRow, error) {
	var out []repository.TransactionListRow
	for _, t := range r.st.txns {
		if f.BatchID != "" && t.BatchID != f.BatchID {
			continue
		}
		if f.TransType != "" && t.TransType != f.TransType {
			continue
		}
		out = append(out, repository.TransactionListRow{Transaction: *t})
	}
	return out, nil
}

func (r *fakeTxnRepo) ListByBatch(batchID string) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, t := range r.st.txns {
		if t.BatchID == batchID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ─────────────────────────────────────────────
// fakeMedicineRepo / fakeSupplierRepo
// ─────────────────────────────────────────────

type fakeMedicineRepo struct {
	meds     map[string]*entity.Medicine
	lowStock []repository.LowStockResult
}

func newFakeMedicineRepo(meds ...*entity.Medicine) *fakeMedicineRepo {
	r := &fakeMedicineRepo{meds: make(map[string]*entity.Medicine, len(meds))}
	for _, m := range meds {
		cp := *m
		r.meds[m.ID] = &cp
	}
	return r
}

func (r *fakeMedicineRepo) Create(m *entity.Medicine) error {
	cp := *m
	r.meds[m.ID] = &cp
	return nil
}

func (r *fakeMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	m, ok := r.meds[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMedicineRepo) GetByBarcode(barcode string) (*entity.Medicine, error) {
	for _, m := range r.meds {
		if m.Barcode == barcode {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMedicineRepo) Update(m *entity.Medicine) error {
	cp := *m
	r.meds[m.ID] = &cp
	return nil
}

func (r *fakeMedicineRepo) Deactivate(id string) error {
	if m, ok := r.meds[id]; ok {
		m.IsActive = false
	}
	return nil
}

func (r *fakeMedicineRepo) List(_ repository.MedicineFilter) ([]*entity.Medicine, error) {
	var out []*entity.Medicine
	for _, m := range r.meds {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMedicineRepo) ListLowStock() ([]repository.LowStockResult, error) {
	return r.lowStock, nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func newFakeSupplierRepo(suppliers ...*entity.Supplier) *fakeSupplierRepo {
	r := &fakeSupplierRepo{suppliers: make(map[string]*entity.Supplier, len(suppliers))}
	for _, s := range suppliers {
		cp := *s
		r.suppliers[s.ID] = &cp
	}
	return r
}

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) Deactivate(id string) error {
	if s, ok := r.suppliers[id]; ok {
		s.IsActive = false
	}
	return nil
}

func (r *fakeSupplierRepo) List(_, _ int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.suppliers {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// ─────────────────────────────────────────────
// Helpers de construcción
// ─────────────────────────────────────────────

func dateIn(days int) *time.Time {
	d := time.Now().AddDate(0, 0, days)
	return &d
}

func activeBatch(id, drugID string, qty int, expDate *time.Time) *entity.InventoryBatch {
	now := time.Now()
	return &entity.InventoryBatch{
		ID:              id,
		DrugID:          drugID,
		BatchNumber:     "L-" + id,
		QuantityInStock: qty,
		ExpDate:         expDate,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func activeMedicine(id, name string) *entity.Medicine {
	now := time.Now()
	return &entity.Medicine{
		ID:           id,
		DrugName:     name,
		Unit:         "tableta",
		ReorderLevel: 10,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
