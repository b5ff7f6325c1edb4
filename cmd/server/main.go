package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/goalpulse/config"
	"github.com/spacesedan/goalpulse/internal/clients"
	"github.com/spacesedan/goalpulse/internal/logging"
	"github.com/spacesedan/goalpulse/internal/monitoring"
	"github.com/spacesedan/goalpulse/internal/server"
	"github.com/spacesedan/goalpulse/internal/store"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPath := os.Getenv("GOALPULSE_DB_PATH")
	if dbPath == "" {
		dbPath = "goalpulse.db"
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		slog.Error("[Main] Failed to open entry store",
			slog.String("path", dbPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.Close()
	slog.Info("[Main] Entry store ready", slog.String("path", st.Path()))

	// The analysis cache is optional; run without it when unconfigured.
	var cache *clients.ValkeyClient
	cacheHealthy := &atomic.Bool{}
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		cache = clients.InitValkey()
		defer clients.CloseValkey()
		cacheHealthy.Store(true)
		go monitoring.MonitorCacheHealth(ctx, cache, cacheHealthy)
	} else {
		slog.Info("[Main] VALKEY_INIT_ADDRESS not set, analysis cache disabled")
	}

	router := server.SetupRouter(server.New(st, cache, cacheHealthy))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		slog.Info("[Main] Listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			cancel()
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stopChan:
		slog.Info("Shutting down server gracefully...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Shutdown failed", slog.String("error", err.Error()))
	}
}
