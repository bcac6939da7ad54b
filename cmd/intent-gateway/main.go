// cmd/intent-gateway/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"eweb-intent-gateway/internal/api"
	"eweb-intent-gateway/internal/common/config"
	commonhttp "eweb-intent-gateway/internal/common/http"
	"eweb-intent-gateway/internal/common/logger"
	"eweb-intent-gateway/internal/common/observability"
	"eweb-intent-gateway/internal/eweb"
	"eweb-intent-gateway/internal/intent"
	"eweb-intent-gateway/internal/orchestrator"
)

func main() {
	// Config is not loaded yet, so bootstrap logging uses fixed settings.
	bootLog := logger.New("info", "console")
	bootLog.Info("Starting intent gateway...")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Core Wiring ---
	resolverConfig := intent.DefaultConfig()
	resolverConfig.DefaultSupplierID = cfg.EWeb.DefaultSupplierID
	resolverConfig.DefaultWindowDays = cfg.Intent.DefaultWindowDays
	resolver := intent.NewResolver(resolverConfig, log)

	// One outbound client shared by all requests.
	httpClient := commonhttp.NewClient(config.GetDuration(cfg.EWeb.Timeout))

	clientConfig := eweb.DefaultConfig()
	clientConfig.MaxAttempts = cfg.EWeb.MaxAttempts
	clientConfig.BackoffBase = config.GetDuration(cfg.EWeb.BackoffBase)
	clientConfig.PageSize = cfg.EWeb.PageSize

	upstream := eweb.NewClient(eweb.Credentials{
		BaseURL:   cfg.EWeb.BaseURL,
		APIKey:    cfg.EWeb.APIKey,
		AccountID: cfg.EWeb.AccountID,
	}, clientConfig, httpClient, log)

	orch := orchestrator.New(resolver, upstream, obs, log)

	// --- HTTP Server ---
	server, err := api.NewServer(cfg, orch, log)
	if err != nil {
		zapLog.Fatal("server init failed", zap.Error(err))
	}

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     server.Router(),
		ReadTimeout: config.GetDuration(cfg.Server.ReadTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening on " + addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Intent gateway stopped gracefully")
}
