package handlers

import (
	"go.uber.org/zap"

	"github.com/VasKaleev/internetmag-comp/internal/cart"
	"github.com/VasKaleev/internetmag-comp/internal/catalog"
)

// Server serves the storefront API from the catalog and cart stores.
type Server struct {
	catalog  *catalog.Store
	cart     *cart.Store
	logger   *zap.Logger
	currency string
	pageSize int
}

type Options struct {
	Currency string
	PageSize int
	Logger   *zap.Logger
}

func NewServer(catalogStore *catalog.Store, cartStore *cart.Store, opts Options) *Server {
	s := &Server{
		catalog:  catalogStore,
		cart:     cartStore,
		logger:   opts.Logger,
		currency: opts.Currency,
		pageSize: opts.PageSize,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.pageSize <= 0 {
		s.pageSize = catalog.DefaultPageSize
	}
	return s
}
