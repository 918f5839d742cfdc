package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jith-01/Billing-Software-amd/config"
	"github.com/jith-01/Billing-Software-amd/internal/database"
	"github.com/jith-01/Billing-Software-amd/internal/logger"
	"github.com/jith-01/Billing-Software-amd/internal/printer"
	"github.com/jith-01/Billing-Software-amd/internal/server"
	"github.com/jith-01/Billing-Software-amd/internal/session"

	billingH "github.com/jith-01/Billing-Software-amd/internal/billing/handler"
	billingRepoPkg "github.com/jith-01/Billing-Software-amd/internal/billing/repository"
	billingUCPkg "github.com/jith-01/Billing-Software-amd/internal/billing/usecase"

	salesH "github.com/jith-01/Billing-Software-amd/internal/sales/handler"
	salesRepoPkg "github.com/jith-01/Billing-Software-amd/internal/sales/repository"
	salesUCPkg "github.com/jith-01/Billing-Software-amd/internal/sales/usecase"

	stockH "github.com/jith-01/Billing-Software-amd/internal/stock/handler"
	stockRepoPkg "github.com/jith-01/Billing-Software-amd/internal/stock/repository"
	stockUCPkg "github.com/jith-01/Billing-Software-amd/internal/stock/usecase"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	flag.Parse()

	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.NewZapLogger(cfg.ZapLoggerConfig())
	defer appLogger.Sync()

	// 3. Open the store
	storeCfg := cfg.StoreConfig()
	db, err := database.Open(storeCfg)
	if err != nil {
		appLogger.Fatal("Could not open store", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An unreachable store is reported per operation, so startup goes on.
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
	if ready {
		appLogger.Info("Store ready", zap.String("driver", storeCfg.Driver), zap.String("db_name", storeCfg.DBName))
	}

	// 4. Initialize Printer
	receiptPrinter, err := printer.New(cfg.PrinterConfig())
	if err != nil {
		appLogger.Fatal("Invalid printer config", zap.Error(err))
	}

	// 5. Initialize Repositories
	stockRepo := stockRepoPkg.NewSQLRepository(db)
	billingRepo := billingRepoPkg.NewSQLRepository(db)
	salesRepo := salesRepoPkg.NewSQLRepository(db)

	// 6. Initialize UseCases
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, appLogger)
	billingUC := billingUCPkg.NewBillingUseCase(billingRepo, stockUC, receiptPrinter, appLogger)
	salesUC := salesUCPkg.NewSalesUseCase(salesRepo, appLogger)

	// 7. Initialize Handlers
	handlers := server.Handlers{
		Stock:   stockH.NewStockHandler(stockUC, appLogger),
		Billing: billingH.NewBillingHandler(billingUC, session.NewRegistry(), appLogger),
		Sales:   salesH.NewSalesHandler(salesUC, appLogger),
	}

	ginMode := gin.ReleaseMode
	if cfg.IsDevelopment() {
		ginMode = gin.DebugMode
	}

	// 8. Start HTTP Server
	srv := server.NewServer(server.Config{
		Port:           cfg.HTTP.Port,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		GinMode:        ginMode,
	}, db, handlers, appLogger)

	// Graceful Shutdown
	go func() {
		if err := srv.Run(); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
