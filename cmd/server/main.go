package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/leonid6372/portfolio-service/internal/common/clients/yahoo"
	"github.com/leonid6372/portfolio-service/internal/common/config"
	"github.com/leonid6372/portfolio-service/internal/common/repositories/postgres"
	"github.com/leonid6372/portfolio-service/internal/ledger"
	"github.com/leonid6372/portfolio-service/internal/server"
	"github.com/leonid6372/portfolio-service/internal/valuation"
	"github.com/leonid6372/portfolio-service/migrations"
	"github.com/leonid6372/portfolio-service/pkg/goosemigrate"
	"github.com/leonid6372/portfolio-service/pkg/log"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "prod.yaml", "service config path")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())

	// Local development overrides; missing file is fine.
	_ = godotenv.Load()

	cfg := config.GetConfig(configPath)

	if err := log.Init(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		log.Fatal("log init failed", zap.Error(err))
	}

	log.Info("service starting...")

	log.Info("init postgres...")
	pool, err := pgxpool.New(ctx, cfg.GetPostgresURL())
	if err != nil {
		log.Fatal("postgres init failed", zap.Error(err))
	}

	if err := goosemigrate.NewMigrator(cfg.GetPostgresURL(), migrations.FS, ".", cfg.Postgres.Schema).Up(); err != nil {
		log.Fatal("migrations up failed", zap.Error(err))
	}

	ledgerRepository := postgres.NewLedgerRepository(pool)
	transactionsRepository := postgres.NewTransactionsRepository(pool)
	positionsRepository := postgres.NewPositionsRepository(pool)
	salesRepository := postgres.NewSalesRepository(pool)

	log.Info("init quotes client...")
	quotes := yahoo.NewClient(cfg.Quotes.BaseURL, cfg.Quotes.Timeout, cfg.Quotes.CacheTTL, cfg.Quotes.Retries)

	ledgerService := ledger.NewService(ledgerRepository)
	valuationService := valuation.NewService(positionsRepository, quotes)

	log.Info("init http server...")
	srv := server.New(cfg, server.Deps{
		Ledger:       ledgerService,
		Valuation:    valuationService,
		Transactions: transactionsRepository,
		Positions:    positionsRepository,
		Sales:        salesRepository,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	log.Info("service starting complete", zap.Int64("port", cfg.Server.Port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-done
	log.Info("service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	pool.Close()

	if err := log.Sync(); err != nil {
		log.Error("log sync failed", zap.Error(err))
	}

	cancel()

	log.Info("service shut down complete")
}
