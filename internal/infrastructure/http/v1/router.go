// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"inventory/internal/domain/audit"
	"inventory/internal/domain/auth"
	"inventory/internal/domain/category"
	"inventory/internal/domain/discount"
	"inventory/internal/domain/invoice"
	"inventory/internal/domain/product"
	"inventory/internal/domain/promotion"
	"inventory/internal/domain/reports"
	"inventory/internal/domain/stock"
	"inventory/internal/infrastructure/http/v1/handlers"
	"inventory/internal/infrastructure/http/v1/middleware"
	"inventory/pkg/logger"
)

// Services groups the domain services exposed over HTTP.
type Services struct {
	Auth       *auth.Service
	Categories *category.Service
	Products   *product.Service
	Stocks     *stock.Service
	Discounts  *discount.Service
	Promotions *promotion.Service
	Invoices   *invoice.Service
	Reports    *reports.Service
	Audit      audit.Recorder
}

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Services backing the endpoints
	Services Services

	// DB is pinged by the readiness probe
	DB handlers.Pinger

	// Cache is the optional report cache; nil when disabled
	Cache handlers.Pinger

	// CORSOrigins lists allowed browser origins; empty allows any
	CORSOrigins []string

	// Debug keeps gin in debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	// Patch DTOs enumerate the updatable fields; anything else is rejected.
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Cache)
	router.GET("/health", healthHandler.Live)
	router.GET("/ready", healthHandler.Ready)

	api := router.Group("/api/v1")
	base := handlers.NewBaseHandler()
	svc := cfg.Services

	registerAuthRoutes(api, base, svc)

	// Protected endpoints
	protected := api.Group("")
	protected.Use(middleware.Auth(svc.Auth))

	registerUserRoutes(protected, base, svc)
	registerCatalogRoutes(protected, base, svc)
	registerStockRoutes(protected, base, svc)
	registerInvoiceRoutes(protected, base, svc)
	registerReportRoutes(protected, base, svc)
	registerAuditRoutes(protected, base, svc)

	return router
}

// registerAuthRoutes registers the public authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc Services) {
	h := handlers.NewAuthHandler(base, svc.Auth)
	public := rg.Group("/auth")
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
}

func registerUserRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc Services) {
	h := handlers.NewAuthHandler(base, svc.Auth)
	users := rg.Group("/users")
	users.GET("", middleware.RequireRole(adminOnly...), h.ListUsers)
	users.GET("/:id", middleware.RequireRole(staff...), h.GetUser)
	users.PUT("/:id", middleware.RequireRole(adminOnly...), h.UpdateUser)
	users.DELETE("/:id", middleware.RequireRole(adminOnly...), h.DeleteUser)
}

// registerCatalogRoutes registers products, categories, discounts and promotions.
func registerCatalogRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc Services) {
	// --- PRODUCTS ---
	{
		h := handlers.NewProductHandler(base, svc.Products)
		group := rg.Group("/products")
		RegisterCRUDRoutes(group, h, RouteRoles{Read: staff, Write: staff, Delete: adminOnly})
		RegisterSpreadsheetRoutes(group, h, staff)
		group.GET("/category/:categoryId", middleware.RequireRole(staff...), h.ListByCategory)
	}

	// --- CATEGORIES ---
	{
		h := handlers.NewCategoryHandler(base, svc.Categories)
		RegisterCRUDRoutes(rg.Group("/categories"), h, RouteRoles{Read: staff, Write: adminOnly, Delete: adminOnly})
	}

	// --- DISCOUNTS ---
	{
		h := handlers.NewDiscountHandler(base, svc.Discounts)
		group := rg.Group("/discounts")
		RegisterCRUDRoutes(group, h, RouteRoles{Read: staff, Write: adminOnly, Delete: adminOnly})
		group.GET("/code/:code", middleware.RequireRole(staff...), h.GetByCode)
		group.GET("/validate/:code", middleware.RequireRole(staff...), h.Validate)
	}

	// --- PROMOTIONS ---
	{
		h := handlers.NewPromotionHandler(base, svc.Promotions)
		group := rg.Group("/promotions")
		RegisterCRUDRoutes(group, h, RouteRoles{Read: staff, Write: adminOnly, Delete: adminOnly})
		group.GET("/active", middleware.RequireRole(staff...), h.Active)
	}
}

func registerStockRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc Services) {
	h := handlers.NewStockHandler(base, svc.Stocks)
	group := rg.Group("/stocks")
	RegisterCRUDRoutes(group, h, RouteRoles{Read: staff, Write: staff, Delete: adminOnly})
	RegisterSpreadsheetRoutes(group, h, staff)
	group.GET("/product/:productId", middleware.RequireRole(staff...), h.ListByProduct)
	group.GET("/location/:locationId", middleware.RequireRole(staff...), h.ListByLocation)
	group.PUT("/:id/quantity/:delta", middleware.RequireRole(staff...), h.AdjustQuantity)
}

func registerInvoiceRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc Services) {
	h := handlers.NewInvoiceHandler(base, svc.Invoices)
	group := rg.Group("/invoices")
	RegisterCRUDRoutes(group, h, RouteRoles{Read: staff, Write: staff, Delete: adminOnly})
	group.GET("/customer/:customerId", middleware.RequireRole(staff...), h.ListByCustomer)
	group.GET("/recent/:limit", middleware.RequireRole(staff...), h.ListRecent)
	group.PUT("/:id/status/:status", middleware.RequireRole(staff...), h.UpdateStatus)
	group.POST("/:id/send", middleware.RequireRole(staff...), h.Send)
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc Services) {
	h := handlers.NewReportsHandler(base, svc.Reports)
	group := rg.Group("/reports")
	group.GET("/sales", middleware.RequireRole(staff...), h.Sales)
	group.GET("/returns", middleware.RequireRole(staff...), h.Returns)
	group.GET("/product-sales", middleware.RequireRole(staff...), h.ProductSales)
	group.GET("/stock", middleware.RequireRole(staff...), h.Stock)
	group.GET("/profit", middleware.RequireRole(adminOnly...), h.Profit)
}

func registerAuditRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, svc Services) {
	if svc.Audit == nil {
		return
	}
	h := handlers.NewAuditHandler(base, svc.Audit)
	rg.GET("/audit/:entityType/:entityId", middleware.RequireRole(adminOnly...), h.History)
}
