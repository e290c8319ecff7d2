package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"golang.org/x/text/language"

	"github.com/VasKaleev/internetmag-comp/internal/cart"
	"github.com/VasKaleev/internetmag-comp/internal/catalog"
	api "github.com/VasKaleev/internetmag-comp/internal/http"
	handler "github.com/VasKaleev/internetmag-comp/internal/http/handlers"
	rl "github.com/VasKaleev/internetmag-comp/internal/http/rate_limiter"
	"github.com/VasKaleev/internetmag-comp/internal/models"
	"github.com/VasKaleev/internetmag-comp/internal/storage"
)

const currency = "руб."

var fixtureProducts = []models.Product{
	{ID: 1, Name: "Ноутбук", Price: 55000, Category: "Электроника", Rating: 4.5, Date: mustDate("2024-03-01"), Image: "laptop.png"},
	{ID: 2, Name: "Мышь", Price: 1200.5, Category: "Электроника", Rating: 4.1, Date: mustDate("2024-01-15"), Image: "mouse.png"},
	{ID: 3, Name: "Кружка", Price: 350, Category: "Посуда", Rating: 4.8, Date: mustDate("2023-11-20"), Image: "mug.png"},
	{ID: 4, Name: "Арбуз", Price: 0, Category: "Продукты", Rating: 3.9, Date: mustDate("2024-07-30")},
	{ID: 5, Name: "Электрочайник", Price: 2990, Category: "Посуда", Rating: 4.3, Date: mustDate("2024-05-05"), Image: "kettle.png"},
}

func mustDate(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type testEnv struct {
	router  http.Handler
	catalog *catalog.Store
	cart    *cart.Store
	kv      storage.KV
}

// newTestEnv builds a router over the fixture catalog and an in-memory cart.
// maxBytes limits the cart storage, 0 means unlimited.
func newTestEnv(maxBytes int, limiter *rl.Limiter) *testEnv {
	catalogStore := catalog.NewStore(language.Russian)
	catalogStore.Load(fixtureProducts)

	kv := storage.NewMemoryKV(maxBytes)
	cartStore := cart.NewStore(catalogStore, kv)
	cartStore.Initialize(context.Background())

	srv := handler.NewServer(catalogStore, cartStore, handler.Options{Currency: currency})
	return &testEnv{
		router:  api.NewRouter(srv, limiter, nil),
		catalog: catalogStore,
		cart:    cartStore,
		kv:      kv,
	}
}

func (e *testEnv) do(method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) addToCart(productID int) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, fmt.Sprintf("/cart/items/%d", productID), nil)
}

func (e *testEnv) changeQuantity(productID, delta int) *httptest.ResponseRecorder {
	return e.do(http.MethodPatch, fmt.Sprintf("/cart/items/%d", productID), handler.QuantityAdjustmentRequest{Delta: delta})
}

func decode[T any](w *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.NewDecoder(w.Body).Decode(&v)
	return v, err
}
