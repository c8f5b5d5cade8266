// Package main is the entry point for the enercore API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"enercore/internal/config"
	"enercore/internal/domain/resources/affiliate"
	"enercore/internal/domain/resources/bond"
	"enercore/internal/domain/resources/donation"
	"enercore/internal/domain/resources/installation"
	"enercore/internal/domain/resources/mainttask"
	"enercore/internal/domain/resources/saleorder"
	v1 "enercore/internal/infrastructure/http/v1"
	"enercore/internal/infrastructure/storage/postgres"
	"enercore/internal/infrastructure/storage/postgres/resource_repo"
	"enercore/internal/metadata"
	"enercore/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting enercore server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.DSN)
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}
	if cfg.Database.MinConns > 0 {
		poolCfg.MinConns = cfg.Database.MinConns
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(ctx, cfg.Database.DSN, cfg.Database.MigrationsPath); err != nil {
			log.Fatalw("failed to run migrations", "error", err)
		}
	}

	txManager := postgres.NewTxManager(pool)

	auditLog, err := postgres.NewTransitionLog(txManager)
	if err != nil {
		log.Fatalw("failed to initialize transition log", "error", err)
	}
	defer auditLog.Close()

	nums := postgres.NewSequenceNumerator(txManager)

	// --- Repositories and services ---
	affiliates := affiliate.NewService(resource_repo.NewAffiliateRepo(txManager), txManager, auditLog, nums)
	bonds := bond.NewService(resource_repo.NewBondRepo(txManager), txManager, auditLog, nums)
	donations := donation.NewService(resource_repo.NewDonationRepo(txManager), txManager, auditLog, nums)
	installations := installation.NewService(resource_repo.NewInstallationRepo(txManager), txManager, auditLog, nums)
	saleOrders := saleorder.NewService(resource_repo.NewSaleOrderRepo(txManager), txManager, auditLog, nums)
	maintenanceTasks := mainttask.NewService(resource_repo.NewMaintenanceTaskRepo(txManager), txManager, auditLog, nums)

	// --- Metadata registry ---
	registry := metadata.NewRegistry()
	registry.Register(metadata.Describe(affiliate.QueryConfig(), affiliate.Transitions(), enumStrings(affiliate.Types())))
	registry.Register(metadata.Describe(bond.QueryConfig(), bond.Transitions(), enumStrings(bond.Types())))
	registry.Register(metadata.Describe(donation.QueryConfig(), donation.Transitions(), enumStrings(donation.Types())))
	registry.Register(metadata.Describe(installation.QueryConfig(), installation.Transitions(), enumStrings(installation.Types())))
	registry.Register(metadata.Describe(saleorder.QueryConfig(), saleorder.Transitions(), nil))
	registry.Register(metadata.Describe(mainttask.QueryConfig(), mainttask.Transitions(), enumStrings(mainttask.Priorities())))
	log.Info("metadata registry initialized")

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:             pool,
		Logger:           log,
		MetadataRegistry: registry,
		Affiliates:       affiliates,
		Bonds:            bonds,
		Donations:        donations,
		Installations:    installations,
		SaleOrders:       saleOrders,
		MaintenanceTasks: maintenanceTasks,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// enumStrings converts a typed enumeration slice to plain strings for the
// metadata registry.
func enumStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
