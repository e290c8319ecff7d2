package catalog

import (
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/VasKaleev/internetmag-comp/internal/models"
)

// Store holds the loaded catalog and derives views from it. It is empty until
// Load is called; every query on an empty store returns an empty result.
type Store struct {
	mu       sync.RWMutex
	products []models.Product
	byID     map[int]int
	loaded   bool
	locale   language.Tag
}

// NewStore creates an empty Store that sorts names using the rules of locale.
func NewStore(locale language.Tag) *Store {
	return &Store{
		products: []models.Product{},
		byID:     map[int]int{},
		locale:   locale,
	}
}

// Load replaces the held product list wholesale.
func (s *Store) Load(products []models.Product) {
	held := slices.Clone(products)
	if held == nil {
		held = []models.Product{}
	}
	index := make(map[int]int, len(held))
	for i, p := range held {
		if _, dup := index[p.ID]; !dup {
			index[p.ID] = i
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = held
	s.byID = index
	s.loaded = true
}

// Loaded reports whether a catalog has been loaded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Len returns the number of held products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Products returns a copy of the held list in catalog order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

// GetByID looks up a product by its identifier.
func (s *Store) GetByID(id int) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return s.products[i], true
}

// Categories returns the distinct categories in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range s.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories
}

func (s *Store) FilterByCategory(category string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ByCategory(s.products, category)
}

func (s *Store) FilterBySearchAndPrice(text string, bounds PriceBounds) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BySearchAndPrice(s.products, text, bounds)
}

func (s *Store) Sort(criterion SortCriterion) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SortProducts(s.products, criterion, s.locale)
}

// Query describes a combined catalog view. A nil Bounds matches any price and
// an empty Category matches every category.
type Query struct {
	Category string
	Search   string
	Bounds   *PriceBounds
	Sort     SortCriterion
	Page     int
	PageSize int
}

// Query filters by category, then by search text and price, sorts and
// paginates the result.
func (s *Store) Query(q Query) Page[models.Product] {
	s.mu.RLock()
	seq := s.products
	if q.Category != "" {
		seq = ByCategory(seq, q.Category)
	}
	bounds := AnyPrice()
	if q.Bounds != nil {
		bounds = *q.Bounds
	}
	seq = BySearchAndPrice(seq, q.Search, bounds)
	s.mu.RUnlock()

	seq = SortProducts(seq, q.Sort, s.locale)

	page := q.Page
	if page == 0 {
		page = 1
	}
	return Paginate(seq, page, q.PageSize)
}
