package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

const (
	testDrugID     = "med-amoxicilina"
	testEmployeeID = "emp-001"
)

func newDeductFixture(batches ...*entity.InventoryBatch) (*fakeTxRunner, *inventory.DeductStockUseCase) {
	runner := newFakeTxRunner()
	for _, b := range batches {
		runner.st.addBatch(b)
	}
	meds := newFakeMedicineRepo(activeMedicine(testDrugID, "Amoxicilina 500mg"))
	return runner, inventory.NewDeductStockUseCase(runner, meds)
}

// ─────────────────────────────────────────────
// Motor de deducción FEFO
// ─────────────────────────────────────────────

func TestDeductStock_ConsumeLotesPorVencimientoAscendente(t *testing.T) {
	// A vence primero (30 uds), B después (20 uds), C al final (50 uds).
	runner, uc := newDeductFixture(
		activeBatch("b-a", testDrugID, 30, dateIn(10)),
		activeBatch("b-b", testDrugID, 20, dateIn(60)),
		activeBatch("b-c", testDrugID, 50, dateIn(180)),
	)

	plan, err := uc.DeductStock(context.Background(), inventory.DeductStockInput{
		DrugID:     testDrugID,
		Quantity:   45,
		EmployeeID: testEmployeeID,
	})
	require.NoError(t, err)

	// A se agota, B cubre el resto, C queda intacto.
	require.Len(t, plan, 2)
	assert.Equal(t, "b-a", plan[0].BatchID)
	assert.Equal(t, 30, plan[0].DeductedQty)
	assert.Equal(t, 0, plan[0].RemainingQty)
	assert.Equal(t, "b-b", plan[1].BatchID)
	assert.Equal(t, 15, plan[1].DeductedQty)
	assert.Equal(t, 5, plan[1].RemainingQty)

	assert.Equal(t, 0, runner.st.batches["b-a"].QuantityInStock)
	assert.Equal(t, 5, runner.st.batches["b-b"].QuantityInStock)
	assert.Equal(t, 50, runner.st.batches["b-c"].QuantityInStock)

	// La suma del plan reconcilia con lo solicitado.
	deducted := 0
	for _, p := range plan {
		deducted += p.DeductedQty
	}
	assert.Equal(t, 45, deducted)

	// Un asiento OUT por lote tocado, atribuido al empleado.
	outs := runner.st.txnsOfType(entity.TransTypeOUT)
	require.Len(t, outs, 2)
	assert.Equal(t, "b-a", outs[0].BatchID)
	assert.Equal(t, 30, outs[0].Quantity)
	assert.Equal(t, "b-b", outs[1].BatchID)
	assert.Equal(t, 15, outs[1].Quantity)
	for _, txn := range outs {
		assert.Equal(t, testEmployeeID, txn.EmployeeID)
	}
}

func TestDeductStock_LotesSinVencimientoConsumenAlFinal(t *testing.T) {
	runner, uc := newDeductFixture(
		activeBatch("b-sinfecha", testDrugID, 40, nil),
		activeBatch("b-confecha", testDrugID, 10, dateIn(30)),
	)

	plan, err := uc.DeductStock(context.Background(), inventory.DeductStockInput{
		DrugID:     testDrugID,
		Quantity:   25,
		EmployeeID: testEmployeeID,
	})
	require.NoError(t, err)

	require.Len(t, plan, 2)
	assert.Equal(t, "b-confecha", plan[0].BatchID)
	assert.Equal(t, 10, plan[0].DeductedQty)
	assert.Equal(t, "b-sinfecha", plan[1].BatchID)
	assert.Equal(t, 15, plan[1].DeductedQty)
	assert.Equal(t, 25, runner.st.batches["b-sinfecha"].QuantityInStock)
}

func TestDeductStock_IgnoraLotesNoElegibles(t *testing.T) {
	inactive := activeBatch("b-inactivo", testDrugID, 100, dateIn(90))
	inactive.IsActive = false
	runner, uc := newDeductFixture(
		inactive,
		activeBatch("b-vencido", testDrugID, 100, dateIn(-1)),
		activeBatch("b-vacio", testDrugID, 0, dateIn(90)),
		activeBatch("b-ok", testDrugID, 8, dateIn(90)),
	)

	plan, err := uc.DeductStock(context.Background(), inventory.DeductStockInput{
		DrugID:     testDrugID,
		Quantity:   8,
		EmployeeID: testEmployeeID,
	})
	require.NoError(t, err)

	require.Len(t, plan, 1)
	assert.Equal(t, "b-ok", plan[0].BatchID)
	assert.Equal(t, 100, runner.st.batches["b-inactivo"].QuantityInStock)
	assert.Equal(t, 100, runner.st.batches["b-vencido"].QuantityInStock)
}

func TestDeductStock_StockInsuficienteNoMutaNada(t *testing.T) {
	runner, uc := newDeductFixture(
		activeBatch("b-a", testDrugID, 10, dateIn(10)),
		activeBatch("b-vencido", testDrugID, 500, dateIn(-5)), // no cuenta
	)

	_, err := uc.DeductStock(context.Background(), inventory.DeductStockInput{
		DrugID:     testDrugID,
		Quantity:   11,
		EmployeeID: testEmployeeID,
	})
	require.Error(t, err)

	var insufErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufErr)
	assert.Equal(t, 10, insufErr.Available)
	assert.Equal(t, 11, insufErr.Requested)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Cero efectos observables: ni cantidades ni asientos.
	assert.Equal(t, 10, runner.st.batches["b-a"].QuantityInStock)
	assert.Empty(t, runner.st.txns)
}

func TestDeductStock_CantidadInvalida(t *testing.T) {
	_, uc := newDeductFixture(activeBatch("b-a", testDrugID, 10, dateIn(10)))

	for _, qty := range []int{0, -5} {
		_, err := uc.DeductStock(context.Background(), inventory.DeductStockInput{
			DrugID:     testDrugID,
			Quantity:   qty,
			EmployeeID: testEmployeeID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "qty=%d", qty)
	}
}

func TestDeductStock_MedicamentoInexistenteOInactivo(t *testing.T) {
	runner := newFakeTxRunner()
	runner.st.addBatch(activeBatch("b-a", testDrugID, 10, dateIn(10)))
	inactive := activeMedicine(testDrugID, "Amoxicilina 500mg")
	inactive.IsActive = false
	uc := inventory.NewDeductStockUseCase(runner, newFakeMedicineRepo(inactive))

	_, err := uc.DeductStock(context.Background(), inventory.DeductStockInput{
		DrugID:     "med-desconocido",
		Quantity:   1,
		EmployeeID: testEmployeeID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.DeductStock(context.Background(), inventory.DeductStockInput{
		DrugID:     testDrugID,
		Quantity:   1,
		EmployeeID: testEmployeeID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeductStock_FalloDeAlmacenamientoRevierteTodo(t *testing.T) {
	runner, uc := newDeductFixture(
		activeBatch("b-a", testDrugID, 30, dateIn(10)),
		activeBatch("b-b", testDrugID, 20, dateIn(60)),
	)
	// El segundo asiento OUT falla: el decremento de b-a ya ocurrió y debe
	// revertirse junto con su asiento.
	runner.st.failTxnCreateAfter = 1

	_, err := uc.DeductStock(context.Background(), inventory.DeductStockInput{
		DrugID:     testDrugID,
		Quantity:   40,
		EmployeeID: testEmployeeID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "create OUT transaction", storageErr.Op)

	assert.Equal(t, 30, runner.st.batches["b-a"].QuantityInStock)
	assert.Equal(t, 20, runner.st.batches["b-b"].QuantityInStock)
	assert.Empty(t, runner.st.txns)
}

func TestDeductStock_ConcurrenciaNuncaSobrevende(t *testing.T) {
	// 100 unidades en total; 20 deducciones concurrentes de 7 piden 140.
	runner, uc := newDeductFixture(
		activeBatch("b-a", testDrugID, 40, dateIn(10)),
		activeBatch("b-b", testDrugID, 35, dateIn(60)),
		activeBatch("b-c", testDrugID, 25, dateIn(180)),
	)

	const (
		workers  = 20
		perOrder = 7
	)
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failed    int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.DeductStock(context.Background(), inventory.DeductStockInput{
				DrugID:     testDrugID,
				Quantity:   perOrder,
				EmployeeID: testEmployeeID,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				return
			}
			succeeded++
		}()
	}
	wg.Wait()

	remaining := 0
	for _, b := range runner.st.batches {
		assert.GreaterOrEqual(t, b.QuantityInStock, 0, "cantidad negativa en %s", b.ID)
		remaining += b.QuantityInStock
	}

	// Contabilidad exacta: lo deducido sale del stock inicial, nunca más.
	assert.Equal(t, 100-succeeded*perOrder, remaining)
	assert.Equal(t, workers, succeeded+failed)
	assert.LessOrEqual(t, succeeded*perOrder, 100)

	// El libro reconcilia: la suma de OUT es exactamente lo deducido.
	outTotal := 0
	for _, txn := range runner.st.txnsOfType(entity.TransTypeOUT) {
		outTotal += txn.Quantity
	}
	assert.Equal(t, succeeded*perOrder, outTotal)
}

// ─────────────────────────────────────────────
// Recepción de mercancía (stock-in)
// ─────────────────────────────────────────────

func TestReceiveStock_CreaLoteYAsientoIN(t *testing.T) {
	runner := newFakeTxRunner()
	meds := newFakeMedicineRepo(activeMedicine(testDrugID, "Amoxicilina 500mg"))
	suppliers := newFakeSupplierRepo(&entity.Supplier{ID: "sup-01", Name: "Droguería Norte", IsActive: true})
	uc := inventory.NewStockInUseCase(runner, meds, suppliers)

	batch, err := uc.ReceiveStock(context.Background(), inventory.StockInInput{
		DrugID:      testDrugID,
		SupplierID:  "sup-01",
		BatchNumber: "AMX-2026-07",
		Quantity:    120,
		ExpDate:     dateIn(365),
		EmployeeID:  testEmployeeID,
		ReferenceNo: "PO-889",
	})
	require.NoError(t, err)
	require.NotNil(t, batch)

	stored := runner.st.batches[batch.ID]
	require.NotNil(t, stored)
	assert.Equal(t, 120, stored.QuantityInStock)
	assert.True(t, stored.IsActive)

	ins := runner.st.txnsOfType(entity.TransTypeIN)
	require.Len(t, ins, 1)
	assert.Equal(t, batch.ID, ins[0].BatchID)
	assert.Equal(t, 120, ins[0].Quantity)
	assert.Equal(t, "PO-889", ins[0].ReferenceNo)
	assert.Equal(t, fmt.Sprintf("Stock-in: %d units, Batch %s", 120, "AMX-2026-07"), ins[0].Notes)
}

func TestReceiveStock_CantidadInvalida(t *testing.T) {
	uc := inventory.NewStockInUseCase(newFakeTxRunner(), newFakeMedicineRepo(), newFakeSupplierRepo())

	_, err := uc.ReceiveStock(context.Background(), inventory.StockInInput{
		DrugID:     testDrugID,
		Quantity:   0,
		EmployeeID: testEmployeeID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestReceiveStock_ProveedorInexistente(t *testing.T) {
	runner := newFakeTxRunner()
	meds := newFakeMedicineRepo(activeMedicine(testDrugID, "Amoxicilina 500mg"))
	uc := inventory.NewStockInUseCase(runner, meds, newFakeSupplierRepo())

	_, err := uc.ReceiveStock(context.Background(), inventory.StockInInput{
		DrugID:     testDrugID,
		SupplierID: "sup-fantasma",
		Quantity:   10,
		EmployeeID: testEmployeeID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, runner.st.batches)
}

// ─────────────────────────────────────────────
// Ajuste manual acotado
// ─────────────────────────────────────────────

func TestAdjustQuantity_RegistraDeltaFirmado(t *testing.T) {
	runner := newFakeTxRunner()
	runner.st.addBatch(activeBatch("b-a", testDrugID, 40, dateIn(90)))
	uc := inventory.NewAdjustStockUseCase(runner)

	oldQty, newQty, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{
		BatchID:     "b-a",
		NewQuantity: 25,
		Reason:      "reconteo físico",
		EmployeeID:  testEmployeeID,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, oldQty)
	assert.Equal(t, 25, newQty)
	assert.Equal(t, 25, runner.st.batches["b-a"].QuantityInStock)

	adjusts := runner.st.txnsOfType(entity.TransTypeADJUST)
	require.Len(t, adjusts, 1)
	assert.Equal(t, -15, adjusts[0].Quantity) // delta con signo
	assert.Equal(t, "reconteo físico", adjusts[0].Notes)
}

func TestAdjustQuantity_CantidadNegativaRechazada(t *testing.T) {
	uc := inventory.NewAdjustStockUseCase(newFakeTxRunner())

	_, _, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{
		BatchID:     "b-a",
		NewQuantity: -1,
		EmployeeID:  testEmployeeID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestAdjustQuantity_LoteInexistente(t *testing.T) {
	uc := inventory.NewAdjustStockUseCase(newFakeTxRunner())

	_, _, err := uc.AdjustQuantity(context.Background(), inventory.AdjustInput{
		BatchID:     "b-fantasma",
		NewQuantity: 5,
		EmployeeID:  testEmployeeID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─────────────────────────────────────────────
// Baja por vencimiento
// ─────────────────────────────────────────────

func TestWriteOffExpired_DaDeBajaSoloVencidos(t *testing.T) {
	runner := newFakeTxRunner()
	runner.st.addBatch(activeBatch("b-vencido", testDrugID, 30, dateIn(-3)))
	runner.st.addBatch(activeBatch("b-vigente", testDrugID, 50, dateIn(60)))
	runner.st.addBatch(activeBatch("b-sinfecha", testDrugID, 15, nil))
	uc := inventory.NewWriteOffExpiredUseCase(runner)

	written, err := uc.WriteOffExpired(context.Background(), testEmployeeID)
	require.NoError(t, err)

	require.Len(t, written, 1)
	assert.Equal(t, "b-vencido", written[0].BatchID)
	assert.Equal(t, 30, written[0].Quantity)

	expired := runner.st.batches["b-vencido"]
	assert.Equal(t, 0, expired.QuantityInStock)
	assert.False(t, expired.IsActive)

	assert.Equal(t, 50, runner.st.batches["b-vigente"].QuantityInStock)
	assert.True(t, runner.st.batches["b-vigente"].IsActive)
	assert.True(t, runner.st.batches["b-sinfecha"].IsActive)

	txns := runner.st.txnsOfType(entity.TransTypeEXPIRED)
	require.Len(t, txns, 1)
	assert.Equal(t, "b-vencido", txns[0].BatchID)
	assert.Equal(t, 30, txns[0].Quantity)
	assert.Equal(t, testEmployeeID, txns[0].EmployeeID)
}

func TestWriteOffExpired_SinVencidosDevuelveListaVacia(t *testing.T) {
	runner := newFakeTxRunner()
	runner.st.addBatch(activeBatch("b-vigente", testDrugID, 50, dateIn(60)))
	uc := inventory.NewWriteOffExpiredUseCase(runner)

	written, err := uc.WriteOffExpired(context.Background(), testEmployeeID)
	require.NoError(t, err)
	assert.Empty(t, written)
	assert.Empty(t, runner.st.txns)
}
