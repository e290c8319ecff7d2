package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VasKaleev/internetmag-comp/internal/app"
	"github.com/VasKaleev/internetmag-comp/internal/catalog"
	"github.com/VasKaleev/internetmag-comp/internal/config"
	"github.com/VasKaleev/internetmag-comp/internal/logging"
)

// cli carries the state shared by every subcommand.
type cli struct {
	root       *cobra.Command
	configPath string
	app        *app.App
}

func newCLI() *cli {
	c := &cli{}

	c.root = &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the catalog and manage the shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := c.root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a config file (default ./storefront.yaml)")
	flags.String("log-level", "info", "log level")
	flags.String("catalog", "db.json", "catalog file for the file source")
	flags.String("cart-backend", "file", "cart storage backend")
	flags.String("cart-dir", ".storefront", "directory for the file cart backend")

	c.root.AddCommand(
		c.productsCmd(),
		c.productCmd(),
		c.categoriesCmd(),
		c.cartCmd(),
	)
	return c
}

// open builds the storefront and loads the catalog synchronously. A catalog
// that cannot be fetched is reported and leaves an empty catalog.
func (c *cli) open(cmd *cobra.Command) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if _, err := a.LoadCatalog(ctx); err != nil {
		if !errors.Is(err, catalog.ErrCatalogUnavailable) {
			a.Close()
			return nil, err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Каталог недоступен:", err)
	}
	c.app = a
	return a, nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}
