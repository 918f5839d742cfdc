package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jith-01/Billing-Software-amd/config"
	"github.com/jith-01/Billing-Software-amd/internal/database"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/printer"
	"github.com/jith-01/Billing-Software-amd/internal/session"
	"github.com/jith-01/Billing-Software-amd/internal/terminal"

	billingRepoPkg "github.com/jith-01/Billing-Software-amd/internal/billing/repository"
	billingUCPkg "github.com/jith-01/Billing-Software-amd/internal/billing/usecase"
	salesRepoPkg "github.com/jith-01/Billing-Software-amd/internal/sales/repository"
	salesUCPkg "github.com/jith-01/Billing-Software-amd/internal/sales/usecase"
	stockRepoPkg "github.com/jith-01/Billing-Software-amd/internal/stock/repository"
	stockUCPkg "github.com/jith-01/Billing-Software-amd/internal/stock/usecase"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	// 1. Load Configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize Logger. Stdout belongs to the menu; outside development
	// only warnings reach stderr.
	logCfg := cfg.ZapLoggerConfig()
	if !cfg.IsDevelopment() {
		logCfg.Level = "warn"
	}
	appLogger := logger.NewZapLogger(logCfg)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the store
	storeCfg := cfg.StoreConfig()
	db, err := database.Open(storeCfg)
	if err != nil {
		appLogger.Fatal("Could not open store", zap.Error(err))
	}
	defer db.Close()

	ready := true
	if err := database.Ping(ctx, db, storeCfg.ConnectTimeout); err != nil {
		appLogger.Warn("Store unreachable at startup", zap.String("driver", storeCfg.Driver), zap.Error(err))
		ready = false
	} else if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			appLogger.Warn("Schema migration failed", zap.Error(err))
			ready = false
		}
	}
	// The schema is created once the store comes up.
	if !ready && cfg.Database.Migrate {
		go func() {
			err := database.MigrateWithRetry(ctx, db, database.RetrySchedule(), func(err error, next time.Duration) {
				appLogger.Warn("Schema migration pending", zap.Duration("retry_in", next), zap.Error(err))
			})
			if err != nil {
				appLogger.Warn("Schema migration abandoned", zap.Error(err))
				return
			}
			appLogger.Info("Schema migrated")
		}()
	}

	// 4. Initialize Printer
	receiptPrinter, err := printer.New(cfg.PrinterConfig())
	if err != nil {
		appLogger.Fatal("Invalid printer config", zap.Error(err))
	}

	// 5. Wire use cases
	stockUC := stockUCPkg.NewStockUseCase(stockRepoPkg.NewSQLRepository(db), appLogger)
	billingUC := billingUCPkg.NewBillingUseCase(billingRepoPkg.NewSQLRepository(db), stockUC, receiptPrinter, appLogger)
	salesUC := salesUCPkg.NewSalesUseCase(salesRepoPkg.NewSQLRepository(db), appLogger)

	// 6. Run the menu
	console := terminal.New(os.Stdin, os.Stdout, terminal.Deps{
		Stock:   stockUC,
		Billing: billingUC,
		Sales:   salesUC,
		Session: session.NewRegistry().Get("console"),
		Logger:  appLogger,
	})
	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		appLogger.Error("console stopped", zap.Error(err))
	}
}
