package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"backoffice/internal/config"
	"backoffice/internal/infrastructure/logger"
	"backoffice/internal/infrastructure/metrics"
	"backoffice/internal/order"
	"backoffice/internal/product"
	"backoffice/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	st, err := openStores(context.Background(), cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("opening stores", zap.Error(err))
	}
	defer st.close()

	m := metrics.New(cfg.Metrics.Namespace)

	productCtrl := product.NewModule(st.products, m, cfg.Inventory, zapLogger)
	orderCtrl := order.NewModule(st.orders, zapLogger)

	router := server.NewRouter(productCtrl, orderCtrl, m, st.pinger, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
