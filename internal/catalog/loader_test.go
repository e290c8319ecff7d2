package catalog

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const catalogJSON = `[
  {"id": 1, "name": "Apple", "price": 10, "category": "fruit", "rating": 4.5, "date": "2024-02-01", "image": "apple.png", "description": "Green apple"},
  {"id": 2, "name": "Bread", "price": 5, "category": "bakery", "rating": 3.9, "date": "2023-11-20", "image": "bread.png", "description": "Rye bread"},
  {"id": 3, "name": "", "price": 1},
  {"id": 4, "name": "Broken", "price": "free"},
  {"name": "No id", "price": 2},
  {"id": 5, "name": "Negative", "price": -1},
  {"id": 6, "name": "Bad date", "price": 1, "date": "yesterday"},
  {"id": 1, "name": "Apple again", "price": 11},
  "not an object",
  {"id": 7, "name": "Tea", "price": 3.5, "category": "drinks"}
]`

const catalogYAML = `
- id: 1
  name: Apple
  price: 10
  category: fruit
  date: "2024-02-01"
- id: 2
  name: Bread
  price: 5
  category: bakery
- id: three
  name: Broken
  price: 1
`

type failingSource struct{}

func (failingSource) Fetch(ctx context.Context) ([]RawProduct, error) {
	return nil, errors.New("connection refused")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_FileJSONDropsMalformedRecords(t *testing.T) {
	store := NewStore(language.Und)
	loader := NewLoader(FileSource{Path: writeFile(t, "db.json", catalogJSON)}, zap.NewNop())

	report, err := loader.Load(context.Background(), store)
	require.NoError(t, err)

	assert.Equal(t, LoadReport{Accepted: 3, Dropped: 7}, report)
	assert.Equal(t, []int{1, 2, 7}, ids(store.Products()))

	apple, ok := store.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, "Apple", apple.Name)
	assert.Equal(t, "2024-02-01", apple.Date.String())
	assert.Equal(t, "Green apple", apple.Description)
}

func TestLoader_FileYAML(t *testing.T) {
	store := NewStore(language.Und)
	loader := NewLoader(FileSource{Path: writeFile(t, "catalog.yaml", catalogYAML)}, nil)

	report, err := loader.Load(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Accepted: 2, Dropped: 1}, report)
	assert.Equal(t, []string{"fruit", "bakery"}, store.Categories())
}

func TestLoader_NotAnArray(t *testing.T) {
	store := NewStore(language.Und)
	loader := NewLoader(FileSource{Path: writeFile(t, "db.json", `{"id": 1}`)}, nil)

	_, err := loader.Load(context.Background(), store)
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.False(t, store.Loaded())
}

func TestLoader_FetchFailureLeavesStoreUntouched(t *testing.T) {
	store := NewStore(language.Und)
	store.Load(sampleProducts(t))

	_, err := NewLoader(failingSource{}, nil).Load(context.Background(), store)
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Equal(t, 5, store.Len())
}

func TestLoader_MissingFile(t *testing.T) {
	store := NewStore(language.Und)
	_, err := NewLoader(FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}, nil).Load(context.Background(), store)
	require.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Empty(t, store.Products())
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/db.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(catalogJSON))
		case "/catalog":
			w.Header().Set("Content-Type", "application/yaml")
			w.Write([]byte(catalogYAML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	t.Run("json", func(t *testing.T) {
		records, err := HTTPSource{URL: srv.URL + "/db.json", Client: srv.Client()}.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 10)
	})

	t.Run("yaml by content type", func(t *testing.T) {
		records, err := HTTPSource{URL: srv.URL + "/catalog", Client: srv.Client()}.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("non-2xx", func(t *testing.T) {
		_, err := HTTPSource{URL: srv.URL + "/missing", Client: srv.Client()}.Fetch(context.Background())
		assert.Error(t, err)
	})
}

func TestRawProduct_Validation(t *testing.T) {
	id, name, price, inf := 1, "Tea", 2.0, math.Inf(1)

	_, err := RawProduct{ID: &id, Name: &name, Price: &price}.Product()
	assert.NoError(t, err)

	_, err = RawProduct{ID: &id, Name: &name}.Product()
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = RawProduct{ID: &id, Name: &name, Price: &price, Rating: &inf}.Product()
	assert.ErrorIs(t, err, ErrInvalidProduct)
}
