package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/sales"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DeductStock     *inventory.DeductStockUseCase
	StockIn         *inventory.StockInUseCase
	AdjustStock     *inventory.AdjustStockUseCase
	WriteOffExpired *inventory.WriteOffExpiredUseCase
	InventoryQuery  *inventory.QueryUseCase
	CreateOrder     *sales.CreateOrderUseCase
	OrderQuery      *sales.OrderQueryUseCase
	ReceiptPDF      *sales.ReceiptPDFUseCase
	MedicineUC      *usecase.MedicineUseCase
	CategoryUC      *usecase.CategoryUseCase
	SupplierUC      *usecase.SupplierUseCase
	EmployeeUC      *usecase.EmployeeUseCase
	DashboardUC     *analytics.DashboardUseCase
	JWTSecret       string
}

// Router registra las rutas de la API. Todo bajo /api requiere Bearer Token;
// /health queda público para probes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Cualquier rol autenticado
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleFarmaceuta, entity.RoleAuxiliar)
	// Farmaceuta o admin (ventas)
	pharmacistUp := RequireRole(entity.RoleAdmin, entity.RoleFarmaceuta)
	// Solo admin (ajustes, bajas, empleados)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Inventario
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(
		deps.DeductStock, deps.StockIn, deps.AdjustStock, deps.WriteOffExpired, deps.InventoryQuery,
	)
	inv.Post("/stock-in", anyRole, inventoryHandler.StockIn)
	inv.Post("/stock-out", anyRole, inventoryHandler.StockOut)
	inv.Post("/adjust", adminOnly, inventoryHandler.Adjust)
	inv.Post("/write-off-expired", adminOnly, inventoryHandler.WriteOffExpired)
	inv.Get("/alerts", anyRole, inventoryHandler.GetAlerts)
	inv.Get("/", anyRole, inventoryHandler.ListBatches)
	inv.Get("/:id", anyRole, inventoryHandler.GetBatch)

	// Libro de movimientos
	transactionHandler := NewTransactionHandler(deps.InventoryQuery)
	api.Get("/transactions", anyRole, transactionHandler.List)

	// Ventas
	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.CreateOrder, deps.OrderQuery, deps.ReceiptPDF)
	salesGroup.Post("/", pharmacistUp, salesHandler.Create)
	salesGroup.Get("/", anyRole, salesHandler.List)
	salesGroup.Get("/:id", anyRole, salesHandler.GetByID)
	salesGroup.Get("/:id/receipt", anyRole, salesHandler.GetReceiptPDF)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", anyRole, dashboardHandler.GetSummary)

	// Medicamentos
	medicines := api.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	medicines.Post("/", pharmacistUp, medicineHandler.Create)
	medicines.Get("/", anyRole, medicineHandler.List)
	medicines.Get("/:id", anyRole, medicineHandler.GetByID)
	medicines.Put("/:id", pharmacistUp, medicineHandler.Update)
	medicines.Delete("/:id", adminOnly, medicineHandler.Deactivate)

	// Categorías
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", pharmacistUp, categoryHandler.Create)
	categories.Get("/", anyRole, categoryHandler.List)
	categories.Get("/:id", anyRole, categoryHandler.GetByID)
	categories.Put("/:id", pharmacistUp, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Deactivate)

	// Proveedores
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", pharmacistUp, supplierHandler.Create)
	suppliers.Get("/", anyRole, supplierHandler.List)
	suppliers.Get("/:id", anyRole, supplierHandler.GetByID)
	suppliers.Put("/:id", pharmacistUp, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Deactivate)

	// Empleados (solo admin)
	employees := api.Group("/employees", adminOnly)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Deactivate)
}
