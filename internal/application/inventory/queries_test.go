package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

func TestGetAlerts_StockBajoYVencimientoProximo(t *testing.T) {
	runner := newFakeTxRunner()
	// Vence dentro de la ventana de 30 días → alerta.
	runner.st.addBatch(activeBatch("b-pronto", testDrugID, 12, dateIn(10)))
	// Vence lejos → sin alerta.
	runner.st.addBatch(activeBatch("b-lejos", testDrugID, 40, dateIn(180)))
	// Sin fecha de vencimiento → nunca alerta.
	runner.st.addBatch(activeBatch("b-sinfecha", testDrugID, 25, nil))

	meds := newFakeMedicineRepo(activeMedicine(testDrugID, "Amoxicilina 500mg"))
	meds.lowStock = []repository.LowStockResult{
		{DrugID: testDrugID, DrugName: "Amoxicilina 500mg", ReorderLevel: 20, CurrentStock: 12},
	}
	batchRepo := &fakeBatchRepo{st: runner.st}
	txnRepo := &fakeTxnRepo{st: runner.st}
	uc := inventory.NewQueryUseCase(batchRepo, txnRepo, meds)

	alerts, err := uc.GetAlerts()
	require.NoError(t, err)

	require.Len(t, alerts.LowStockAlerts, 1)
	assert.Equal(t, testDrugID, alerts.LowStockAlerts[0].DrugID)
	assert.Equal(t, 20, alerts.LowStockAlerts[0].ReorderLevel)
	assert.Equal(t, 12, alerts.LowStockAlerts[0].CurrentStock)

	require.Len(t, alerts.ExpiryAlerts, 1)
	assert.Equal(t, "b-pronto", alerts.ExpiryAlerts[0].BatchID)
	assert.Equal(t, 12, alerts.ExpiryAlerts[0].QuantityInStock)
	assert.LessOrEqual(t, alerts.ExpiryAlerts[0].DaysUntilExpiry, 10)
}

func TestGetBatch_InexistenteRetornaNotFound(t *testing.T) {
	runner := newFakeTxRunner()
	uc := inventory.NewQueryUseCase(&fakeBatchRepo{st: runner.st}, &fakeTxnRepo{st: runner.st}, newFakeMedicineRepo())

	_, err := uc.GetBatch("b-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBatch_MarcaVencimientoProximo(t *testing.T) {
	runner := newFakeTxRunner()
	runner.st.addBatch(activeBatch("b-pronto", testDrugID, 5, dateIn(7)))
	uc := inventory.NewQueryUseCase(&fakeBatchRepo{st: runner.st}, &fakeTxnRepo{st: runner.st},
		newFakeMedicineRepo(activeMedicine(testDrugID, "Amoxicilina 500mg")))

	resp, err := uc.GetBatch("b-pronto")
	require.NoError(t, err)
	assert.True(t, resp.IsExpiringSoon)
	assert.Equal(t, "Amoxicilina 500mg", resp.DrugName)
}
