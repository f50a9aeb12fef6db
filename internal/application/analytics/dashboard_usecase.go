// Package analytics contiene los casos de uso read-only del dashboard
// operativo de la farmacia.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

const (
	dashboardTopMedicines = 10 // número de medicamentos en el widget de más vendidos
	dashboardSalesMonths  = 12 // meses de historial de ventas en el gráfico
	expiringSoonDays      = 30
)

// DashboardUseCase genera el resumen operativo: conteos de inventario,
// transacciones de hoy, ventas mensuales y medicamentos más vendidos.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Seis llamadas en paralelo:
//  1. CountActiveMedicines          → TotalMedicines
//  2. CountLowStock                 → LowStockCount
//  3. CountExpiringSoon(30 días)    → ExpiringSoonCount
//  4. CountTransactions(hoy)        → TodayTransactions
//  5. MonthlySales(12 meses)        → MonthlySales
//  6. TopSellingMedicines(12 meses) → TopSelling
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	salesSince := monthStart.AddDate(0, -(dashboardSalesMonths - 1), 0)
	expiryLimit := now.AddDate(0, 0, expiringSoonDays)

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type countResult struct {
		n   int
		err error
	}
	type salesResult struct {
		rows []repository.MonthlySalesResult
		err  error
	}
	type topResult struct {
		rows []repository.TopMedicineResult
		err  error
	}

	medsCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	expCh := make(chan countResult, 1)
	txnCh := make(chan countResult, 1)
	salesCh := make(chan salesResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		n, err := uc.analyticsRepo.CountActiveMedicines(ctx)
		medsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountLowStock(ctx)
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountExpiringSoon(ctx, now, expiryLimit)
		expCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountTransactions(ctx, todayStart, todayEnd)
		txnCh <- countResult{n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.MonthlySales(ctx, salesSince)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.TopSellingMedicines(ctx, salesSince, dashboardTopMedicines)
		topCh <- topResult{rows, err}
	}()

	meds := <-medsCh
	low := <-lowCh
	exp := <-expCh
	txn := <-txnCh
	sales := <-salesCh
	top := <-topCh

	if meds.err != nil {
		return nil, fmt.Errorf("dashboard: medicamentos activos: %w", meds.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if exp.err != nil {
		return nil, fmt.Errorf("dashboard: próximos a vencer: %w", exp.err)
	}
	if txn.err != nil {
		return nil, fmt.Errorf("dashboard: transacciones de hoy: %w", txn.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas mensuales: %w", sales.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: más vendidos: %w", top.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	monthly := make([]dto.MonthlySalesDTO, 0, len(sales.rows))
	for _, r := range sales.rows {
		monthly = append(monthly, dto.MonthlySalesDTO{
			Year:        r.Year,
			Month:       r.Month,
			TotalAmount: r.TotalAmount.Round(2),
			OrderCount:  r.OrderCount,
		})
	}
	selling := make([]dto.TopMedicineDTO, 0, len(top.rows))
	for _, r := range top.rows {
		selling = append(selling, dto.TopMedicineDTO{
			DrugID:    r.DrugID,
			DrugName:  r.DrugName,
			UnitsSold: r.UnitsSold,
			Revenue:   r.Revenue.Round(2),
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalMedicines:    meds.n,
		LowStockCount:     low.n,
		ExpiringSoonCount: exp.n,
		TodayTransactions: txn.n,
		MonthlySales:      monthly,
		TopSelling:        selling,
	}, nil
}
