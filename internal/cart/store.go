package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/VasKaleev/internetmag-comp/internal/models"
	"github.com/VasKaleev/internetmag-comp/internal/storage"
)

// DefaultKey is the storage key the cart snapshot lives under.
const DefaultKey = "cart"

var (
	// ErrUnknownProduct is returned by AddItem when the catalog has no product
	// with the given id. The cart is left unchanged.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrPersistence wraps storage write failures. The in-memory change has
	// already been applied when it is returned.
	ErrPersistence = errors.New("cart not persisted")
	// ErrInvalidQuantity is returned when a change would push a line past
	// math.MaxInt. The cart is left unchanged.
	ErrInvalidQuantity = errors.New("quantity out of range")
	// ErrEmptyCart is returned when placing an order for an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// errMalformedSnapshot marks a stored cart that cannot be used.
	errMalformedSnapshot = errors.New("malformed cart snapshot")
)

// ProductLookup resolves catalog products by id.
type ProductLookup interface {
	GetByID(id int) (models.Product, bool)
}

// Confirmation describes a placed order.
type Confirmation struct {
	Reference uuid.UUID         `json:"reference"`
	ItemCount int               `json:"item_count"`
	LineCount int               `json:"line_count"`
	Lines     []models.CartLine `json:"lines"`
	PlacedAt  time.Time         `json:"placed_at"`
}

// Store owns the cart. Every successful mutation writes the whole cart to
// storage before returning.
type Store struct {
	mu      sync.Mutex
	lines   []models.CartLine
	catalog ProductLookup
	kv      storage.KV
	key     string
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func NewStore(catalog ProductLookup, kv storage.KV, opts ...Option) *Store {
	s := &Store{
		lines:   []models.CartLine{},
		catalog: catalog,
		kv:      kv,
		key:     DefaultKey,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize replaces the in-memory cart with the stored snapshot. A missing,
// unreadable or malformed snapshot leaves the cart empty.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []models.CartLine{}

	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("could not read stored cart, starting empty", zap.String("key", s.key), zap.Error(err))
		return
	}

	lines, err := decodeSnapshot(data)
	if err != nil {
		s.logger.Warn("stored cart is malformed, starting empty", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.lines = lines
	s.logger.Debug("cart restored", zap.Int("lines", len(lines)))
}

func decodeSnapshot(data []byte) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedSnapshot, err)
	}
	seen := make(map[int]bool, len(lines))
	for _, l := range lines {
		if l.ID <= 0 || l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d has quantity %d", errMalformedSnapshot, l.ID, l.Quantity)
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("%w: duplicate line %d", errMalformedSnapshot, l.ID)
		}
		seen[l.ID] = true
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return lines, nil
}

// persist writes the current lines. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.lines)
	if err == nil {
		err = s.kv.Set(ctx, s.key, data)
	}
	if err != nil {
		s.logger.Error("failed to persist cart", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *Store) indexOf(productID int) int {
	return slices.IndexFunc(s.lines, func(l models.CartLine) bool { return l.ID == productID })
}

// AddItem puts one unit of the product into the cart.
func (s *Store) AddItem(ctx context.Context, productID int) error {
	product, ok := s.catalog.GetByID(productID)
	if !ok {
		s.logger.Debug("add to cart ignored for unknown product", zap.Int("product_id", productID))
		return fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		if s.lines[i].Quantity == math.MaxInt {
			return fmt.Errorf("%w: product %d", ErrInvalidQuantity, productID)
		}
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, models.NewCartLine(product))
	}
	return s.persist(ctx)
}

// ChangeQuantity adjusts a line by delta and removes it once the quantity
// drops to zero or below. Without a matching line it does nothing.
func (s *Store) ChangeQuantity(ctx context.Context, productID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	if delta > 0 && s.lines[i].Quantity > math.MaxInt-delta {
		return fmt.Errorf("%w: product %d", ErrInvalidQuantity, productID)
	}
	s.lines[i].Quantity += delta
	if s.lines[i].Quantity <= 0 {
		s.lines = slices.Delete(s.lines, i, i+1)
	}
	return s.persist(ctx)
}

// RemoveItem deletes the line for productID if there is one.
func (s *Store) RemoveItem(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = slices.DeleteFunc(s.lines, func(l models.CartLine) bool { return l.ID == productID })
	return s.persist(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []models.CartLine{}
	return s.persist(ctx)
}

// PlaceOrder empties the cart and returns a confirmation for what it held.
// Nothing is sent anywhere.
func (s *Store) PlaceOrder(ctx context.Context) (Confirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	c := Confirmation{
		Reference: uuid.New(),
		LineCount: len(s.lines),
		ItemCount: totalQuantity(s.lines),
		Lines:     s.lines,
		PlacedAt:  s.now().UTC(),
	}
	s.lines = []models.CartLine{}
	s.logger.Info("order placed",
		zap.String("reference", c.Reference.String()),
		zap.Int("items", c.ItemCount))

	return c, s.persist(ctx)
}

// TotalCount is the sum of all line quantities.
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalQuantity(s.lines)
}

func totalQuantity(lines []models.CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// Line returns the cart line for productID.
func (s *Store) Line(productID int) (models.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(productID); i >= 0 {
		return s.lines[i], true
	}
	return models.CartLine{}, false
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// LineItems yields the current lines in insertion order. Each iteration
// starts from a fresh snapshot, so the sequence can be ranged over again.
func (s *Store) LineItems() iter.Seq[models.CartLine] {
	return func(yield func(models.CartLine) bool) {
		for _, l := range s.Lines() {
			if !yield(l) {
				return
			}
		}
	}
}
