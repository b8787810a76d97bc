package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"backoffice/internal/config"
	"backoffice/internal/infrastructure/mysql"
	orderrepo "backoffice/internal/order/repository"
	orderservice "backoffice/internal/order/service"
	productrepo "backoffice/internal/product/repository"
	productservice "backoffice/internal/product/service"
	"backoffice/internal/server"
)

type stores struct {
	products productservice.Repository
	orders   orderservice.OrderRepository
	// pinger is nil for the memory driver.
	pinger server.Pinger
	close  func() error
}

// openStores builds the repositories for the configured driver.
func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		logger.Warn("in-memory order store starts empty and orders cannot be created, /api/orders answers 404 for every id")
		return &stores{
			products: productrepo.NewMemoryRepository(),
			orders:   orderrepo.NewMemoryOrderRepository(),
			close:    func() error { return nil },
		}, nil
	case config.StoreDriverMySQL:
		db, err := mysql.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("database connected")
		return &stores{
			products: productrepo.NewMySQLRepository(db),
			orders:   orderrepo.NewMySQLOrderRepository(db),
			pinger:   db,
			close:    db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
