// Package main is the entry point for the inventory API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory/internal/domain/auth"
	"inventory/internal/domain/category"
	"inventory/internal/domain/discount"
	"inventory/internal/domain/invoice"
	"inventory/internal/domain/product"
	"inventory/internal/domain/promotion"
	"inventory/internal/domain/reports"
	"inventory/internal/domain/stock"
	"inventory/internal/infrastructure/cache"
	v1 "inventory/internal/infrastructure/http/v1"
	"inventory/internal/infrastructure/http/v1/handlers"
	"inventory/internal/infrastructure/mail"
	"inventory/internal/infrastructure/numerator"
	"inventory/internal/infrastructure/pdf"
	"inventory/internal/infrastructure/storage/postgres"
	"inventory/internal/infrastructure/storage/postgres/auth_repo"
	"inventory/internal/infrastructure/storage/postgres/catalog_repo"
	"inventory/internal/infrastructure/storage/postgres/document_repo"
	"inventory/internal/infrastructure/storage/postgres/register_repo"
	"inventory/internal/infrastructure/storage/postgres/report_repo"
	"inventory/pkg/logger"
)

func main() {
	cfg := loadConfig()

	log, err := logger.New(logger.ConfigFromEnv(cfg.LogLevel, cfg.AppEnv))
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	ctx = logger.WithLogger(ctx, log)
	logger.SetDefault(log)
	log.Info("starting inventory server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = int32(cfg.DBMaxConns)
	poolCfg.MinConns = int32(cfg.DBMinConns)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)
	auditRecorder, err := postgres.NewAuditRecorder(txm)
	if err != nil {
		log.Fatalw("failed to initialize audit recorder", "error", err)
	}

	// --- Report cache (optional) ---
	var (
		reportCache reports.Cache
		cachePinger handlers.Pinger
	)
	if cfg.RedisAddress != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warnw("redis unavailable, reports will not be cached", "addr", cfg.RedisAddress, "error", err)
		} else {
			defer client.Close()
			rc := cache.NewReportCache(client)
			reportCache, cachePinger = rc, rc

			invalidator := cache.NewInvalidator(pool)
			invalidator.InvalidateReports(rc)
			invalidator.Start(ctx)
			defer invalidator.Stop()
			log.Infow("report cache enabled", "addr", cfg.RedisAddress, "ttl", cfg.ReportCacheTTL)
		}
	}

	// --- Repositories ---
	userRepo := auth_repo.NewUserRepo(txm)
	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	discountRepo := catalog_repo.NewDiscountRepo(txm)
	promotionRepo := catalog_repo.NewPromotionRepo(txm)
	stockRepo := register_repo.NewStockRepo(txm)
	invoiceRepo := document_repo.NewInvoiceRepo(txm)
	reportRepo := report_repo.NewReportRepo(txm)

	// --- Services ---
	mailer := mail.New(mail.Config{
		Host:     cfg.MailHost,
		Port:     cfg.MailPort,
		User:     cfg.MailUser,
		Password: cfg.MailPassword,
		From:     cfg.MailFrom,
	})

	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.AccessTokenTTL = cfg.JWTExpiresIn
	authService := auth.NewService(userRepo, auth.NewJWTService(jwtConfig), mailer, auth.DefaultServiceConfig())

	invoiceService := invoice.NewService(invoice.Deps{
		Repo:      invoiceRepo,
		Customers: userRepo,
		Stock:     stockRepo,
		Numerator: numerator.New(pool),
		Audit:     auditRecorder,
		Renderer:  pdf.NewInvoiceRenderer(),
		Mailer:    mailer,
	})

	services := v1.Services{
		Auth:       authService,
		Categories: category.NewService(categoryRepo),
		Products:   product.NewService(productRepo),
		Stocks:     stock.NewService(stockRepo, auditRecorder),
		Discounts:  discount.NewService(discountRepo),
		Promotions: promotion.NewService(promotionRepo),
		Invoices:   invoiceService,
		Reports:    reports.NewService(reportRepo, txm, reportCache, cfg.ReportCacheTTL),
		Audit:      auditRecorder,
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:      log,
		Services:    services,
		DB:          pool,
		Cache:       cachePinger,
		CORSOrigins: cfg.CORSOrigins,
		Debug:       cfg.AppEnv == "development",
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				postgres.LogPoolStats(ctx, pool)
			}
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
