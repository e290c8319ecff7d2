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

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/VasKaleev/internetmag-comp/internal/app"
	"github.com/VasKaleev/internetmag-comp/internal/config"
	api "github.com/VasKaleev/internetmag-comp/internal/http"
	"github.com/VasKaleev/internetmag-comp/internal/http/handlers"
	rl "github.com/VasKaleev/internetmag-comp/internal/http/rate_limiter"
	"github.com/VasKaleev/internetmag-comp/internal/logging"
)

// @title Storefront API
// @version 1.0
// @description Product catalog browsing and a persistent shopping cart.
// @host localhost:8080
// @BasePath /
func main() {
	flags := pflag.NewFlagSet("storefront-api", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a config file (default ./storefront.yaml)")
	flags.String("log-level", "info", "log level")
	flags.String("catalog", "db.json", "catalog file for the file source")
	flags.String("cart-backend", "file", "cart storage backend")
	flags.String("cart-dir", ".storefront", "directory for the file cart backend")
	_ = flags.Parse(os.Args[1:])

	if err := run(*configPath, flags); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func run(configPath string, flags *pflag.FlagSet) error {
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storefront, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storefront.Close()

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)
	srv := handlers.NewServer(storefront.Catalog, storefront.Cart, handlers.Options{
		Currency: cfg.Catalog.Currency,
		PageSize: cfg.Catalog.PageSize,
		Logger:   logger.Named("http"),
	})
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewRouter(srv, limiter, logger.Named("http")),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// The catalog loads in the background; until then listings are empty.
	g.Go(func() error {
		if _, err := storefront.LoadCatalog(gctx); err != nil {
			logger.Error("catalog unavailable, serving an empty catalog", zap.Error(err))
		}
		return nil
	})

	g.Go(func() error {
		limiter.Run(gctx, time.Minute)
		return nil
	})

	g.Go(func() error {
		logger.Info("✅ server running", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
