package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mujakkirdv/portfolio/internal/assets"
	"github.com/mujakkirdv/portfolio/internal/config"
	"github.com/mujakkirdv/portfolio/internal/content"
	"github.com/mujakkirdv/portfolio/internal/logging"
	"github.com/mujakkirdv/portfolio/internal/render"
	"github.com/mujakkirdv/portfolio/internal/server"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// GIN_MODE may come from .env, which loads after gin reads the environment.
	if mode := os.Getenv(gin.EnvGinMode); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	registry, err := loadContent(cfg)
	if err != nil {
		logger.Fatal("failed to load content", zap.Error(err))
	}

	srv, err := server.New(server.Options{
		Registry:   registry,
		Resolver:   assets.NewResolver(cfg.AssetDir),
		Renderer:   render.New(),
		Logger:     logger,
		Stylesheet: cfg.Stylesheet,
	})
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()
	logger.Info("portfolio listening",
		zap.String("addr", cfg.Addr()),
		zap.String("asset_dir", cfg.AssetDir),
		zap.String("content_file", cfg.ContentFile),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func loadContent(cfg config.Config) (*content.Registry, error) {
	if cfg.ContentFile != "" {
		return content.LoadFile(cfg.ContentFile)
	}
	return content.Default()
}
