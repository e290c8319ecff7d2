package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/VasKaleev/internetmag-comp/internal/models"
)

var (
	// ErrCatalogUnavailable is returned when the catalog could not be fetched.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrInvalidProduct is returned for catalog records that fail validation.
	ErrInvalidProduct = errors.New("invalid product record")
)

// RawProduct is a catalog record as read from a source, before validation.
type RawProduct struct {
	ID          *int     `json:"id" yaml:"id"`
	Name        *string  `json:"name" yaml:"name"`
	Price       *float64 `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"`
	Rating      *float64 `json:"rating" yaml:"rating"`
	Date        string   `json:"date" yaml:"date"`
	Image       string   `json:"image" yaml:"image"`
	Description string   `json:"description" yaml:"description"`

	decodeErr error
}

// Product validates the record and converts it into a models.Product.
func (r RawProduct) Product() (models.Product, error) {
	if r.decodeErr != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrInvalidProduct, r.decodeErr)
	}
	if r.ID == nil || *r.ID <= 0 {
		return models.Product{}, fmt.Errorf("%w: id must be a positive integer", ErrInvalidProduct)
	}
	if r.Name == nil || strings.TrimSpace(*r.Name) == "" {
		return models.Product{}, fmt.Errorf("%w: product %d: name is required", ErrInvalidProduct, *r.ID)
	}
	if r.Price == nil || *r.Price < 0 || math.IsNaN(*r.Price) || math.IsInf(*r.Price, 0) {
		return models.Product{}, fmt.Errorf("%w: product %d: price must be a non-negative number", ErrInvalidProduct, *r.ID)
	}

	p := models.Product{
		ID:          *r.ID,
		Name:        *r.Name,
		Price:       *r.Price,
		Category:    r.Category,
		Image:       r.Image,
		Description: r.Description,
	}
	if r.Rating != nil {
		if math.IsNaN(*r.Rating) || math.IsInf(*r.Rating, 0) {
			return models.Product{}, fmt.Errorf("%w: product %d: rating must be finite", ErrInvalidProduct, *r.ID)
		}
		p.Rating = *r.Rating
	}
	if r.Date != "" {
		d, err := models.ParseDate(r.Date)
		if err != nil {
			return models.Product{}, fmt.Errorf("%w: product %d: %v", ErrInvalidProduct, *r.ID, err)
		}
		p.Date = d
	}
	return p, nil
}

// decodeJSON decodes a JSON array element by element so one bad record does
// not spoil the rest.
func decodeJSON(data []byte) ([]RawProduct, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("catalog must be a JSON array: %w", err)
	}
	records := make([]RawProduct, len(elems))
	for i, elem := range elems {
		if err := json.Unmarshal(elem, &records[i]); err != nil {
			records[i] = RawProduct{decodeErr: err}
		}
	}
	return records, nil
}

func decodeYAML(data []byte) ([]RawProduct, error) {
	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("catalog must be a YAML sequence: %w", err)
	}
	records := make([]RawProduct, len(nodes))
	for i := range nodes {
		if err := nodes[i].Decode(&records[i]); err != nil {
			records[i] = RawProduct{decodeErr: err}
		}
	}
	return records, nil
}

// Source fetches the raw catalog.
type Source interface {
	Fetch(ctx context.Context) ([]RawProduct, error)
}

// LoadReport summarizes one catalog load.
type LoadReport struct {
	Accepted int
	Dropped  int
}

// Loader performs the one-shot catalog fetch into a Store.
type Loader struct {
	source Source
	logger *zap.Logger
}

func NewLoader(source Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, logger: logger}
}

// Load fetches and validates the catalog and hands it to store. On a fetch
// failure the store is left untouched and the error wraps ErrCatalogUnavailable.
func (l *Loader) Load(ctx context.Context, store *Store) (LoadReport, error) {
	records, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.Error("catalog fetch failed", zap.Error(err))
		return LoadReport{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	var report LoadReport
	products := make([]models.Product, 0, len(records))
	seen := make(map[int]bool, len(records))
	for i, rec := range records {
		p, err := rec.Product()
		if err != nil {
			report.Dropped++
			l.logger.Warn("dropping catalog record", zap.Int("index", i), zap.Error(err))
			continue
		}
		if seen[p.ID] {
			report.Dropped++
			l.logger.Warn("dropping duplicate catalog record", zap.Int("index", i), zap.Int("id", p.ID))
			continue
		}
		seen[p.ID] = true
		products = append(products, p)
	}
	report.Accepted = len(products)

	store.Load(products)
	l.logger.Info("catalog loaded", zap.Int("accepted", report.Accepted), zap.Int("dropped", report.Dropped))
	return report, nil
}
