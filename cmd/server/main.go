// Package main is the entry point for the almacen API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"almacen/internal/domain"
	"almacen/internal/domain/audit"
	"almacen/internal/domain/auth"
	"almacen/internal/domain/catalogs"
	"almacen/internal/domain/catalogs/agreement"
	"almacen/internal/domain/catalogs/annex"
	"almacen/internal/domain/catalogs/currency"
	"almacen/internal/domain/catalogs/dependency"
	"almacen/internal/domain/catalogs/product"
	"almacen/internal/domain/catalogs/supplier"
	"almacen/internal/domain/movement"
	"almacen/internal/domain/stock"
	v1 "almacen/internal/infrastructure/http/v1"
	"almacen/internal/infrastructure/storage/postgres"
	"almacen/internal/infrastructure/storage/postgres/auth_repo"
	"almacen/internal/infrastructure/storage/postgres/catalog_repo"
	"almacen/internal/infrastructure/storage/postgres/movement_repo"
	"almacen/internal/infrastructure/storage/postgres/register_repo"
	"almacen/pkg/logger"
	"almacen/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting almacen server")

	// --- Database connection ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Numerator ---
	numeratorService := numerator.New(pool)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	dependencyRepo := catalog_repo.NewDependencyRepo(txManager)
	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	agreementRepo := catalog_repo.NewAgreementRepo(txManager)
	annexRepo := catalog_repo.NewAnnexRepo(txManager)
	currencyRepo := catalog_repo.NewCurrencyRepo(txManager)
	movementRepo := movement_repo.NewRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)

	// --- Catalog services ---
	productService := product.NewService(productRepo, numeratorService, txManager)
	dependencyService := dependency.NewService(dependencyRepo, numeratorService, txManager)
	supplierService := supplier.NewService(supplierRepo, numeratorService, txManager)
	agreementService := agreement.NewService(agreementRepo, numeratorService, txManager)
	annexService := annex.NewService(annexRepo, numeratorService, txManager)
	currencyService := currency.NewService(currencyRepo, numeratorService, txManager)

	// --- Movement workflow ---
	stockService := stock.NewService(stockRepo)
	catalogInfo := catalogs.NewInfo(productService, supplierService, agreementService, annexService)
	movementService := movement.NewService(movementRepo, stockService, catalogInfo, numeratorService, txManager)

	// --- Audit trail ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	movementService.Hooks().On(domain.BeforeCreate, func(ctx context.Context, m *movement.Movement) error {
		audit.EnrichCreatedByDirect(ctx, &m.CreatedBy, &m.UpdatedBy)
		return nil
	})
	movementService.Hooks().On(domain.AfterCreate, func(ctx context.Context, m *movement.Movement) error {
		return auditService.LogChange(ctx, "movement", m.ID, postgres.AuditActionCreate, map[string]any{
			"number":   m.Number,
			"type":     m.Type,
			"quantity": m.Quantity,
		})
	})
	movementService.Hooks().On(domain.AfterUpdate, func(ctx context.Context, m *movement.Movement) error {
		return auditService.LogChange(ctx, "movement", m.ID, postgres.AuditActionConfirm, map[string]any{
			"number": m.Number,
			"status": m.Status,
		})
	})
	movementService.Hooks().On(domain.BeforeDelete, func(ctx context.Context, m *movement.Movement) error {
		return auditService.LogChange(ctx, "movement", m.ID, postgres.AuditActionDelete, map[string]any{
			"number": m.Number,
		})
	})

	// --- Auth ---
	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))

	userRepo := auth_repo.NewUserRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)
	authService := auth.NewService(userRepo, tokenRepo, txManager, jwtService, auth.DefaultServiceConfig())

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:              pool,
		Logger:            log,
		JWTValidator:      jwtService,
		AuthService:       authService,
		ProductService:    productService,
		DependencyService: dependencyService,
		SupplierService:   supplierService,
		AgreementService:  agreementService,
		AnnexService:      annexService,
		CurrencyService:   currencyService,
		MovementService:   movementService,
		StockService:      stockService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
