package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"vending-sim/internal/cache"
	"vending-sim/internal/config"
	"vending-sim/internal/logger"
	"vending-sim/internal/menu"
	"vending-sim/internal/model"
	"vending-sim/internal/repository"
	"vending-sim/internal/seed"
	"vending-sim/internal/service"
	"vending-sim/pkg/uid"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	if err := logger.Init(cfg.App.Name, cfg.App.Debug); err != nil {
		os.Exit(1)
	}
	log := logger.WithSession(uid.New())
	defer log.Sync()
	log.Info("starting simulator", zap.String("environment", cfg.App.Environment))

	// Seed data is recreated at every startup; nothing persists across runs.
	entries := seed.Entries(seed.Default())

	// Initialize drink repository based on config
	var repo repository.DrinkRepository
	switch cfg.Inventory.Store {
	case "sqlite":
		sqliteRepo, err := repository.NewSQLiteDrinkRepository(cfg.Inventory.SQLiteDSN, entries)
		if err != nil {
			log.Fatal("failed to initialize SQLite repository", zap.Error(err))
		}
		repo = sqliteRepo
		log.Info("SQLite drink repository initialized", zap.String("dsn", cfg.Inventory.SQLiteDSN))
	default: // memory
		repo = repository.NewMemoryDrinkRepository(entries)
		log.Info("memory drink repository initialized")
	}
	defer repo.Close()

	prices := cache.NewMemoryPriceCache()
	account := model.NewAccount(cfg.Account.InitialBalance, cfg.Account.MinCharge, cfg.Account.MaxBalance)
	vm := service.NewVendingMachine(repo, prices, cfg.Cache.TTL, log)

	m := menu.New(vm, account, os.Stdin, os.Stdout, log)
	if err := m.Run(context.Background()); err != nil {
		log.Fatal("menu loop failed", zap.Error(err))
	}

	log.Info("simulator stopped")
}
