package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/supply-chain-api/internal/application/usecase"
	"github.com/jhoicas/supply-chain-api/pkg/jwt"
	"github.com/jhoicas/supply-chain-api/pkg/metrics"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	SupplierUC      *usecase.SupplierUseCase
	DiscountUC      *usecase.DiscountUseCase
	OrderUC         *usecase.OrderUseCase
	ReplenishmentUC *usecase.ReplenishmentUseCase
	JWTSecret       string
	ServiceName     string
	Log             zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleComprador, jwt.RoleBodeguero)
	buyer := RequireRole(jwt.RoleAdmin, jwt.RoleComprador)
	warehouse := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)
	admin := RequireRole(jwt.RoleAdmin)

	productHandler := NewProductHandler(deps.ProductUC)
	replenishmentHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	discountHandler := NewDiscountHandler(deps.DiscountUC)
	orderHandler := NewOrderHandler(deps.OrderUC)

	// Products
	products := api.Group("/products")
	products.Post("/", admin, productHandler.Create)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:catalog", anyRole, productHandler.GetByCatalogNumber)
	products.Get("/:product/best-price", buyer, replenishmentHandler.BestPrice)
	products.Get("/:product/cheapest-offer", buyer, replenishmentHandler.CheapestOffer)
	products.Get("/:product/offers", buyer, supplierHandler.ListOffers)

	// Branches
	branches := api.Group("/branches")
	branches.Get("/:branch/stock", anyRole, productHandler.BranchStock)
	branches.Get("/:branch/shortages", anyRole, replenishmentHandler.Shortages)
	branches.Get("/:branch/store-discount", anyRole, discountHandler.StoreDiscount)

	// Suppliers, agreements, offers, discounts
	api.Put("/suppliers", buyer, supplierHandler.UpsertSupplier)
	api.Put("/agreements", buyer, supplierHandler.UpsertAgreement)
	api.Get("/agreements/:id", buyer, supplierHandler.GetAgreement)
	api.Put("/offers", buyer, supplierHandler.UpsertOffer)
	api.Get("/offers/:product/discounts", buyer, discountHandler.ListForOffer)
	api.Put("/discounts", buyer, discountHandler.Upsert)

	// Replenishment runs
	replenishment := api.Group("/replenishment", buyer)
	replenishment.Post("/:branch/periodic", replenishmentHandler.RunPeriodic)
	replenishment.Post("/:branch/shortage", replenishmentHandler.RunShortage)

	// Orders
	orders := api.Group("/orders", warehouse)
	orders.Patch("/shortage/:id/status", orderHandler.AdvanceShortage)
	orders.Patch("/on-the-way/:id/status", orderHandler.AdvanceOnTheWay)

	purchaseOrders := api.Group("/purchase-orders", buyer)
	purchaseOrders.Post("/", orderHandler.CreatePurchaseOrder)
	purchaseOrders.Get("/:id/pdf", orderHandler.PurchaseOrderPDF)
}
