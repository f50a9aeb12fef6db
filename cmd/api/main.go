package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/sales"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (los casos de uso transaccionales reciben
	// además el TxRunner, que les pasa repos atados a la tx).
	medicineRepo := postgres.NewMedicineRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	txnRepo := postgres.NewStockTransactionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	orderRepo := postgres.NewSalesOrderRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de inventario
	deductStockUC := inventory.NewDeductStockUseCase(txRunner, medicineRepo)
	stockInUC := inventory.NewStockInUseCase(txRunner, medicineRepo, supplierRepo)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner)
	writeOffUC := inventory.NewWriteOffExpiredUseCase(txRunner)
	inventoryQueryUC := inventory.NewQueryUseCase(batchRepo, txnRepo, medicineRepo)

	// Ventas
	createOrderUC := sales.NewCreateOrderUseCase(txRunner, deductStockUC, medicineRepo)
	orderQueryUC := sales.NewOrderQueryUseCase(orderRepo)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	receiptPDFUC := sales.NewReceiptPDFUseCase(orderRepo, receiptGenerator)

	// Datos maestros
	medicineUC := usecase.NewMedicineUseCase(medicineRepo, batchRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)

	// Dashboard
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		DeductStock:     deductStockUC,
		StockIn:         stockInUC,
		AdjustStock:     adjustStockUC,
		WriteOffExpired: writeOffUC,
		InventoryQuery:  inventoryQueryUC,
		CreateOrder:     createOrderUC,
		OrderQuery:      orderQueryUC,
		ReceiptPDF:      receiptPDFUC,
		MedicineUC:      medicineUC,
		CategoryUC:      categoryUC,
		SupplierUC:      supplierUC,
		EmployeeUC:      employeeUC,
		DashboardUC:     dashboardUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
