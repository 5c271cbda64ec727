// Command server runs the POS backend API.
//
// @title        Inventory System API
// @version      1.0
// @description  Backend multi-sucursal de punto de venta e inventario.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/config"
	"github.com/leaox77/Inventory-System-Backend/internal/infra"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"
	"github.com/leaox77/Inventory-System-Backend/internal/router"
	"github.com/leaox77/Inventory-System-Backend/internal/service"
	"github.com/leaox77/Inventory-System-Backend/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("el servidor no pudo iniciar")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuracion: %w", err)
	}

	setupLogging(cfg.Env)

	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET es obligatorio")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.Env)
	if err != nil {
		return err
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		// Degraded mode: no receipt queue, no price cache.
		log.Warn().Err(err).Msg("redis no disponible, continuando sin cola ni cache")
		rdb = nil
	}

	mailer := infra.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	// Repositories
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseOrderRepository(db)
	clientRepo := repository.NewClientRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitTypeRepo := repository.NewUnitTypeRepository(db)
	paymentRepo := repository.NewPaymentMethodRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Background workers
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := worker.NewDispatcher(rdb)
	receiptWorker := worker.NewReceiptWorker(saleRepo, mailer, cfg.PDFStoragePath)
	worker.StartPool(ctx, rdb, cfg.WorkerPoolSize, receiptWorker.Handle)

	lowStockCron := worker.NewLowStockCron(inventoryRepo, mailer, rdb, cfg.AlertsEmail, time.Hour)
	go lowStockCron.Start(ctx)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationHours)*time.Hour,
		time.Duration(cfg.JWTRefreshHours)*time.Hour)

	deps := router.Deps{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Auth:      authSvc,
		Products:  service.NewProductService(productRepo, inventoryRepo, rdb),
		Inventory: service.NewInventoryService(inventoryRepo, productRepo, branchRepo),
		Sales:     service.NewSaleService(saleRepo, inventoryRepo, productRepo, clientRepo, branchRepo, paymentRepo, dispatcher),
		Purchases: service.NewPurchaseService(purchaseRepo, inventoryRepo, productRepo, supplierRepo, branchRepo),
		Clients:   service.NewClientService(clientRepo),
		Suppliers: service.NewSupplierService(supplierRepo),
		Catalog:   service.NewCatalogService(categoryRepo, unitTypeRepo, paymentRepo, branchRepo),
		Reports:   service.NewReportService(saleRepo, inventoryRepo),
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("servidor escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("servidor detenido con error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("apagando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}

func setupLogging(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
