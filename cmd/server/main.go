// Command server runs the estimation HTTP API.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"print-cost/adapters/remote"
	"print-cost/adapters/warehouse"
	"print-cost/api"
	"print-cost/core/engine"
	"print-cost/core/product"
	"print-cost/core/types"
	"print-cost/internal/config"
	"print-cost/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "config file path")
	flag.Parse()

	cfg := config.Get()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logging.Fatal("cannot load config", zap.String("path", *cfgPath), zap.Error(err))
		}
		cfg = loaded
		config.Set(cfg)
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("cannot initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	catalog := warehouse.NewSnapshotCache(cfg.Catalog.Path,
		time.Duration(cfg.Catalog.TTLSeconds)*time.Second, logging.Logger)
	if _, _, err := catalog.Refresh(); err != nil {
		logging.Fatal("cannot load stock catalog",
			zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}

	var remotePricer engine.RemotePricer
	if cfg.Pricing.RemoteURL != "" {
		remotePricer = remote.NewClient(cfg.Pricing.RemoteURL,
			time.Duration(cfg.Pricing.TimeoutSeconds)*time.Second, logging.Logger)
		logging.Info("remote pricing enabled", zap.String("url", cfg.Pricing.RemoteURL))
	}

	estimator := engine.New(product.Default(), types.SheetSRA3())
	server := api.NewServer(estimator, catalog, remotePricer, version, logging.Logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logging.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
}
