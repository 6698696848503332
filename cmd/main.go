package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pct-cclausen/huntkeeper/internal/config"
	"github.com/pct-cclausen/huntkeeper/internal/handler"
	"github.com/pct-cclausen/huntkeeper/internal/service"
	"github.com/pct-cclausen/huntkeeper/internal/store"
	"github.com/pct-cclausen/huntkeeper/pkg/token"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Initialize snapshot store (file or bolt)
	var snapStore store.SnapshotStore
	switch cfg.Store.Backend {
	case "file":
		snapStore = store.NewFileStore(cfg.Store.Path)
		logger.Info("using file snapshot store", zap.String("path", cfg.Store.Path))
	case "bolt":
		snapStore, err = store.NewBoltStore(cfg.Store.Path)
		if err != nil {
			logger.Fatal("failed to open bolt store", zap.Error(err))
		}
		logger.Info("using bolt snapshot store", zap.String("path", cfg.Store.Path))
	default:
		logger.Fatal("unknown store backend", zap.String("backend", cfg.Store.Backend))
	}

	// 4. Initialize token manager
	tokenManager := token.NewManager(cfg.Token.SigningKey)

	// 5. Initialize game service (restores the snapshot)
	gameService, err := service.NewGameService(context.Background(), snapStore, tokenManager, cfg.Auth.PasswordHash)
	if err != nil {
		logger.Fatal("failed to restore game state", zap.Error(err))
	}
	codes, events := gameService.Counts()
	logger.Info("game state restored",
		zap.Int("known_qr_codes", codes),
		zap.Int("scan_events", events),
	)

	// 6. Initialize handlers and router
	gameHandler := handler.NewGameHandler(gameService)
	router := handler.SetupRouter(cfg, logger, gameHandler)

	// 7. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 8. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	if closer, ok := snapStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close snapshot store", zap.Error(err))
		}
	}
	logger.Info("server exited gracefully")
}
