// Package app assembles the storefront from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/VasKaleev/internetmag-comp/internal/cart"
	"github.com/VasKaleev/internetmag-comp/internal/catalog"
	"github.com/VasKaleev/internetmag-comp/internal/config"
	"github.com/VasKaleev/internetmag-comp/internal/db"
	"github.com/VasKaleev/internetmag-comp/internal/storage"
)

// App holds the stores and the resources behind them.
type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Catalog *catalog.Store
	Cart    *cart.Store

	loader  *catalog.Loader
	closers []func() error
}

// New opens cart storage, restores the cart and prepares the catalog loader.
// The catalog itself stays empty until LoadCatalog is called.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	locale, err := language.Parse(cfg.Catalog.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog locale %q: %w", cfg.Catalog.Locale, err)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog.NewStore(locale),
	}

	source, err := a.catalogSource(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.loader = catalog.NewLoader(source, logger.Named("catalog"))

	kv, err := storage.Open(ctx, storage.Options{
		Backend:       cfg.Cart.Backend,
		Dir:           cfg.Cart.Dir,
		MaxBytes:      cfg.Cart.MaxBytes,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   cfg.Redis.Prefix,
		DatabaseURL:   cfg.Database.URL,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open cart storage: %w", err)
	}
	a.closers = append(a.closers, kv.Close)

	a.Cart = cart.NewStore(a.Catalog, kv,
		cart.WithKey(cfg.Cart.Key),
		cart.WithLogger(logger.Named("cart")))
	a.Cart.Initialize(ctx)

	logger.Info("storefront ready",
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("cart_backend", cfg.Cart.Backend))
	return a, nil
}

func (a *App) catalogSource(ctx context.Context) (catalog.Source, error) {
	cfg := a.Config.Catalog
	switch cfg.Source {
	case "file":
		return catalog.FileSource{Path: cfg.Path}, nil
	case "http":
		return catalog.HTTPSource{URL: cfg.URL, Client: &http.Client{Timeout: cfg.FetchTimeout}}, nil
	case "postgres", "mysql", "sqlite":
		database, err := db.Connect(ctx, cfg.Source, a.Config.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		return catalog.SQLSource{DB: database}, nil
	}
	return nil, fmt.Errorf("unsupported catalog source %q", cfg.Source)
}

// LoadCatalog performs the one-shot catalog fetch. On failure the catalog
// stays empty and the returned error wraps catalog.ErrCatalogUnavailable.
func (a *App) LoadCatalog(ctx context.Context) (catalog.LoadReport, error) {
	if a.Config.Catalog.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.Catalog.FetchTimeout)
		defer cancel()
	}
	return a.loader.Load(ctx, a.Catalog)
}

// Close releases storage and database handles.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
