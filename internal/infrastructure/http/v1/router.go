package v1

import (
	"github.com/gin-gonic/gin"

	"almacen/internal/domain/auth"
	"almacen/internal/domain/catalogs/agreement"
	"almacen/internal/domain/catalogs/annex"
	"almacen/internal/domain/catalogs/currency"
	"almacen/internal/domain/catalogs/dependency"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/domain/catalogs/supplier"
	"almacen/internal/domain/movement"
	"almacen/internal/domain/stock"
	"almacen/internal/infrastructure/http/v1/handlers"
	"almacen/internal/infrastructure/http/v1/middleware"
	"almacen/internal/infrastructure/storage/postgres"
	"almacen/pkg/logger"
)

// RouterConfig holds everything the HTTP layer needs. Services are
// constructed once at startup and injected here.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Catalog services
	ProductService    *product.Service
	DependencyService *dependency.Service
	SupplierService   *supplier.Service
	AgreementService  *agreement.Service
	AnnexService      *annex.Service
	CurrencyService   *currency.Service

	// Movement workflow
	MovementService *movement.Service
	StockService    *stock.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	api := router.Group("/api/v1")
	{
		registerAuthRoutes(api, cfg)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerMovementRoutes(protected, cfg)
		registerRegisterRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- PRODUCTS ---
	{
		handler := handlers.NewProductHandler(baseHandler, cfg.ProductService)
		RegisterCatalogRoutes(catalogs.Group("/products"), handler)
	}

	// --- DEPENDENCIES ---
	{
		handler := handlers.NewDependencyHandler(baseHandler, cfg.DependencyService)
		group := catalogs.Group("/dependencies")
		group.GET("/central", handler.GetCentral)
		RegisterCatalogRoutes(group, handler)
	}

	// --- SUPPLIERS ---
	{
		handler := handlers.NewSupplierHandler(baseHandler, cfg.SupplierService)
		group := catalogs.Group("/suppliers")
		group.GET("/by-tax-id/:taxId", handler.GetByTaxID)
		RegisterCatalogRoutes(group, handler)
	}

	// --- AGREEMENTS ---
	{
		handler := handlers.NewAgreementHandler(baseHandler, cfg.AgreementService)
		group := catalogs.Group("/agreements")
		group.GET("/by-supplier/:supplierId", handler.ListBySupplier)
		RegisterCatalogRoutes(group, handler)
	}

	// --- ANNEXES ---
	{
		handler := handlers.NewAnnexHandler(baseHandler, cfg.AnnexService)
		group := catalogs.Group("/annexes")
		group.GET("/by-agreement/:agreementId", handler.ListByAgreement)
		RegisterCatalogRoutes(group, handler)
	}

	// --- CURRENCIES ---
	{
		handler := handlers.NewCurrencyHandler(baseHandler, cfg.CurrencyService)
		RegisterCatalogRoutes(catalogs.Group("/currencies"), handler)
	}
}

// registerMovementRoutes registers movement workflow endpoints.
func registerMovementRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewMovementHandler(baseHandler, cfg.MovementService)
	handler.RegisterRoutes(rg.Group("/movements"))
}

// registerRegisterRoutes registers accumulation register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewStockHandler(baseHandler, cfg.StockService)
	handler.RegisterRoutes(rg.Group("/registers/stock"))
}
