package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/orders"
	"github.com/jhoicas/Almacen-api/internal/application/reports"
	"github.com/jhoicas/Almacen-api/internal/application/transfer"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC     *usecase.CategoryUseCase
	SupplierUC     *usecase.SupplierUseCase
	LocationUC     *usecase.LocationUseCase
	ProductUC      *usecase.ProductUseCase
	LedgerSvc      *ledger.Service
	SalesUC        *orders.SalesUseCase
	PurchaseUC     *orders.PurchaseUseCase
	TransferUC     *transfer.UseCase
	ReportsUC      *reports.UseCase
	AuthUC         *auth.UseCase
	JWTSecret      string
	MetricsHandler nethttp.Handler
}

// Router registra las rutas de la API.
// Escrituras de catálogo, compras, traslados y ajustes exigen ADMIN o
// MANAGER; CLERK puede leer y crear/cancelar órdenes de venta.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")
	writers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth: login público, registro solo ADMIN.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", writers, categoryHandler.Create)
	categories.Put("/:id", writers, categoryHandler.Update)
	categories.Post("/:id/set-status", writers, categoryHandler.SetStatus)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", writers, supplierHandler.Create)
	suppliers.Put("/:id", writers, supplierHandler.Update)
	suppliers.Post("/:id/set-status", writers, supplierHandler.SetStatus)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Post("/", writers, locationHandler.Create)
	locations.Put("/:id", writers, locationHandler.Update)
	locations.Post("/:id/set-status", writers, locationHandler.SetStatus)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writers, productHandler.Create)
	products.Put("/:id", writers, productHandler.Update)
	products.Post("/:id/set-status", writers, productHandler.SetStatus)

	// Inventario: niveles y movimientos visibles para todos los roles,
	// ajustes y reconstrucción solo ADMIN/MANAGER.
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerSvc)
	inv.Get("/levels", inventoryHandler.GetLevel)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Post("/adjustments", writers, inventoryHandler.RegisterAdjustment)
	inv.Post("/levels/rebuild", writers, inventoryHandler.RebuildLevel)

	// Órdenes de venta: cualquier rol autenticado (incluye CLERK).
	salesOrders := protected.Group("/sales-orders")
	salesHandler := NewSalesOrderHandler(deps.SalesUC)
	salesOrders.Get("/", salesHandler.List)
	salesOrders.Get("/:id", salesHandler.GetByID)
	salesOrders.Post("/", salesHandler.Create)
	salesOrders.Post("/:id/cancel", salesHandler.Cancel)

	// Órdenes de compra: solo ADMIN/MANAGER.
	purchaseOrders := protected.Group("/purchase-orders", writers)
	purchaseHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	purchaseOrders.Get("/", purchaseHandler.List)
	purchaseOrders.Get("/:id", purchaseHandler.GetByID)
	purchaseOrders.Post("/", purchaseHandler.Create)
	purchaseOrders.Post("/:id/receive-all", purchaseHandler.ReceiveAll)

	// Traslados: solo ADMIN/MANAGER.
	transfers := protected.Group("/transfers", writers)
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Get("/", transferHandler.List)
	transfers.Post("/", transferHandler.Create)

	// Reportes
	reportGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportGroup.Get("/overview", reportHandler.Overview)
	reportGroup.Get("/low-stock", reportHandler.LowStock)
	reportGroup.Get("/stock-per-location", reportHandler.StockPerLocation)
	reportGroup.Get("/top-selling", reportHandler.TopSelling)
}
