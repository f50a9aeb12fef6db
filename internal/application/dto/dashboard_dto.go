package dto

import "github.com/shopspring/decimal"

// MonthlySalesDTO ventas completadas de un mes calendario.
type MonthlySalesDTO struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderCount  int             `json:"order_count"`
}

// TopMedicineDTO medicamento más vendido del período.
type TopMedicineDTO struct {
	DrugID    string          `json:"drug_id"`
	DrugName  string          `json:"drug_name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO resumen del dashboard.
type DashboardSummaryDTO struct {
	TotalMedicines    int               `json:"total_medicines"`
	LowStockCount     int               `json:"low_stock_count"`
	ExpiringSoonCount int               `json:"expiring_soon_count"`
	TodayTransactions int               `json:"today_transactions"`
	MonthlySales      []MonthlySalesDTO `json:"monthly_sales"`
	TopSelling        []TopMedicineDTO  `json:"top_selling"`
}
