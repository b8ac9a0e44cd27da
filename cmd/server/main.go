package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/gildedrose/internal/config"
	"github.com/mamadbah2/gildedrose/internal/domain/models"
	"github.com/mamadbah2/gildedrose/internal/repository/memory"
	"github.com/mamadbah2/gildedrose/internal/repository/mongodb"
	"github.com/mamadbah2/gildedrose/internal/repository/seed"
	"github.com/mamadbah2/gildedrose/internal/repository/sheets"
	"github.com/mamadbah2/gildedrose/internal/scheduler"
	"github.com/mamadbah2/gildedrose/internal/server/handlers"
	"github.com/mamadbah2/gildedrose/internal/server/router"
	commandsvc "github.com/mamadbah2/gildedrose/internal/service/commands"
	inventorysvc "github.com/mamadbah2/gildedrose/internal/service/inventory"
	reportingsvc "github.com/mamadbah2/gildedrose/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/gildedrose/internal/service/whatsapp"
	"github.com/mamadbah2/gildedrose/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/gildedrose/pkg/clients/whatsapp"
	"github.com/mamadbah2/gildedrose/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx := context.Background()

	var (
		store   inventorysvc.StockRepository
		archive inventorysvc.ReportRepository
	)
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store, archive = mongoRepo, mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI missing, stock is kept in memory only")
		memRepo := memory.NewRepository()
		store, archive = memRepo, memRepo
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
	}

	reportingSvc := reportingsvc.NewService(sheetsRepo, logger.Named(baseLogger, "svc.reporting"))

	var exporter inventorysvc.Exporter
	if sheetsRepo != nil {
		exporter = reportingSvc
	}
	inventorySvc := inventorysvc.NewService(store, archive, exporter, logger.Named(baseLogger, "svc.inventory"))

	seedItems, err := loadSeed(ctx, cfg, sheetsRepo)
	if err != nil {
		baseLogger.Fatal("failed to load seed stock", zap.Error(err))
	}
	if _, err := inventorySvc.Seed(ctx, seedItems); err != nil {
		baseLogger.Fatal("failed to seed stock", zap.Error(err))
	}

	commandDispatcher := commandsvc.NewService(inventorySvc, reportingSvc, logger.Named(baseLogger, "svc.commands"))

	var (
		messagingSvc   whatsappsvc.MessagingService
		webhookHandler *handlers.WebhookHandler
	)
	if cfg.WhatsApp.Enabled() {
		var aiClient anthropic.Client
		if cfg.AI.Enabled() {
			aiClient = anthropic.NewClient(cfg.AI.AnthropicKey, cfg.AI.Model)
			baseLogger.Info("anthropic ai client enabled")
		} else {
			baseLogger.Warn("anthropic api key missing, free-text commands disabled")
		}

		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		metaSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, aiClient, commandDispatcher, logger.Named(baseLogger, "svc.whatsapp"))
		messagingSvc = metaSvc
		webhookHandler = handlers.NewWebhookHandler(metaSvc, logger.Named(baseLogger, "handlers.whatsapp"))
	} else {
		baseLogger.Warn("whatsapp not configured, nightly summaries are only logged")
	}

	stockHandler := handlers.NewStockHandler(inventorySvc, logger.Named(baseLogger, "handlers.stock"))
	engine := router.New(stockHandler, webhookHandler, logger.Named(baseLogger, "router"))

	sched := scheduler.NewScheduler(*cfg, inventorySvc, reportingSvc, messagingSvc, logger.Named(baseLogger, "scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// loadSeed picks the opening stock: a sheet range, then a YAML file, then the default list.
func loadSeed(ctx context.Context, cfg *config.Config, sheetsRepo sheets.Repository) ([]*models.Item, error) {
	switch {
	case cfg.Inventory.SeedSheetRange != "" && sheetsRepo != nil:
		return seed.FromSheet(ctx, sheetsRepo, cfg.Inventory.SeedSheetRange)
	case cfg.Inventory.SeedFile != "":
		return seed.FromFile(cfg.Inventory.SeedFile)
	default:
		return seed.DefaultItems(), nil
	}
}
