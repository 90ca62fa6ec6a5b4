package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/paintshop-api/internal/application/inventory"
	"github.com/jhoicas/paintshop-api/internal/application/picture"
	"github.com/jhoicas/paintshop-api/internal/application/usecase"
	"github.com/jhoicas/paintshop-api/pkg/jwt"
	"github.com/jhoicas/paintshop-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC         *inventory.StockUseCase
	MovementUC      *inventory.MovementUseCase
	PurchaseUC      *inventory.PurchaseUseCase
	PricingUC       *inventory.PricingUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	MaterialUC      *usecase.MaterialUseCase
	PictureUC       *picture.PictureUseCase
	BOMUC           *picture.BOMUseCase
	CostUC          *picture.CostUseCase
	MetricsHandler  http.Handler // nil = sin /metrics
	JWTSecret       string
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Todo /api requiere Bearer Token; las lecturas quedan abiertas a cualquier rol.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	operators := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	admins := RequireRole(jwt.RoleAdmin)

	// Almacén
	wh := protected.Group("/warehouse")
	warehouseHandler := NewWarehouseHandler(deps.StockUC, deps.MovementUC, deps.ReplenishmentUC, log.Component("http.warehouse"))
	wh.Get("/stock", warehouseHandler.GetStockList)
	wh.Get("/stock/low", warehouseHandler.ListLowStock)
	wh.Get("/stock/:materialId", warehouseHandler.GetStock)
	wh.Get("/stock/:materialId/reconcile", warehouseHandler.Reconcile)
	wh.Put("/stock/:materialId/min-level", operators, warehouseHandler.SetMinLevel)
	wh.Get("/stats", warehouseHandler.GetStats)
	wh.Get("/replenishment", warehouseHandler.GetReplenishmentList)
	wh.Post("/add", operators, warehouseHandler.AddMaterial)
	wh.Post("/remove", operators, warehouseHandler.RemoveMaterial)
	wh.Post("/adjust", operators, warehouseHandler.AdjustStock)
	wh.Get("/movements", warehouseHandler.ListAllMovements)
	wh.Get("/movements/:materialId", warehouseHandler.ListMovements)

	// Compras
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, log.Component("http.purchases"))
	purchases.Post("/", operators, purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)

	// Catálogo de materiales y formatos
	materialHandler := NewMaterialHandler(deps.MaterialUC, deps.PricingUC, deps.PictureUC, log.Component("http.materials"))
	materials := protected.Group("/materials")
	materials.Post("/", admins, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", admins, materialHandler.Update)
	materials.Delete("/:id", admins, materialHandler.Deactivate)
	materials.Get("/:id/average-price", materialHandler.AveragePrice)

	sizes := protected.Group("/picture-sizes")
	sizes.Post("/", admins, materialHandler.CreateSize)
	sizes.Get("/", materialHandler.ListSizes)

	// Cuadros
	pictures := protected.Group("/pictures")
	pictureHandler := NewPictureHandler(deps.PictureUC, deps.BOMUC, deps.CostUC, deps.MovementUC, log.Component("http.pictures"))
	pictures.Post("/", operators, pictureHandler.Create)
	pictures.Get("/:id", pictureHandler.GetByID)
	pictures.Post("/:id/bom", operators, pictureHandler.GenerateBOM)
	pictures.Get("/:id/materials", pictureHandler.ListLines)
	pictures.Post("/:id/materials", operators, pictureHandler.AddLine)
	pictures.Get("/:id/cost", pictureHandler.GetCost)
	pictures.Post("/:id/cost", operators, pictureHandler.PersistCost)
	pictures.Get("/:id/profit", pictureHandler.GetProfit)
	// El consumo lo dispara el flujo de pedidos, que también opera el vendedor.
	pictures.Post("/:id/consume", RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleVendedor), pictureHandler.Consume)
}
