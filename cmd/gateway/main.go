// Command gateway проксирует /api/v1 в сервисы user, audition и media.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audition_backend/internal/config"
	"audition_backend/internal/gateway"
	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	gw, err := gateway.New(cfg.Gateway, metrics.New())
	if err != nil {
		logger.Fatal("Failed to configure gateway", "error", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Gateway.Host, cfg.Gateway.Port),
		Handler:           gw,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for _, route := range gateway.Routes(cfg.Gateway) {
			logger.Info("Gateway route", "prefix", route.Prefix, "upstream", route.Upstream, "target", route.Target)
		}
		logger.Info("Gateway starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Gateway startup error", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Gateway shutdown failed", "error", err)
	}
	logger.Info("Gateway stopped")
}
