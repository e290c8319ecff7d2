package handlers_test_suite

import (
	"net/http"
	"slices"
	"strings"
	"testing"

	handler "github.com/VasKaleev/internetmag-comp/internal/http/handlers"
)

func productIDs(products []handler.ProductResponse) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.Id
	}
	return ids
}

func TestGetProductsHandler_Default(t *testing.T) {
	env := newTestEnv(0, nil)

	w := env.do(http.MethodGet, "/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	resp, err := decode[handler.ProductsSearchResult](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got := productIDs(resp.Data); !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("expected catalog order, got %v", got)
	}
	if resp.Meta.Page != 1 || resp.Meta.PageSize != 21 || resp.Meta.TotalPages != 1 || resp.Meta.TotalCount != 5 {
		t.Errorf("unexpected meta %+v", resp.Meta)
	}
	if resp.Data[1].PriceDisplay != "1200.5 руб." {
		t.Errorf("expected price display '1200.5 руб.', got %q", resp.Data[1].PriceDisplay)
	}
}

func TestGetProductsHandler_Filters(t *testing.T) {
	env := newTestEnv(0, nil)

	tests := []struct {
		name     string
		query    string
		expected []int
	}{
		{"Category", "/products?category=Посуда", []int{3, 5}},
		{"Unknown category", "/products?category=Книги", []int{}},
		{"Search is case-insensitive", "/products?search=ЭЛЕКТРО", []int{5}},
		{"Search within category", "/products?category=Электроника&search=мы", []int{2}},
		{"Price range", "/products?minPrice=300&maxPrice=3000", []int{2, 3, 5}},
		{"Zero max price", "/products?maxPrice=0", []int{4}},
		{"Invalid price falls back to defaults", "/products?minPrice=abc&maxPrice=", []int{1, 2, 3, 4, 5}},
		{"Price ascending", "/products?sort=price_asc", []int{4, 3, 2, 5, 1}},
		{"Rating descending", "/products?sort=rating_desc", []int{3, 1, 5, 2, 4}},
		{"Date ascending", "/products?sort=date_asc", []int{3, 2, 1, 5, 4}},
		{"Name ascending uses collation", "/products?sort=name_asc", []int{4, 3, 2, 1, 5}},
		{"Unknown sort keeps order", "/products?sort=popularity", []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodGet, tt.query, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			resp, err := decode[handler.ProductsSearchResult](w)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if got := productIDs(resp.Data); !slices.Equal(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGetProductsHandler_Pagination(t *testing.T) {
	env := newTestEnv(0, nil)

	w := env.do(http.MethodGet, "/products?sort=price_desc&page=2&pageSize=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[handler.ProductsSearchResult](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got := productIDs(resp.Data); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("expected [2 3], got %v", got)
	}
	if resp.Meta.TotalPages != 3 || resp.Meta.TotalCount != 5 {
		t.Errorf("unexpected meta %+v", resp.Meta)
	}

	w = env.do(http.MethodGet, "/products?page=9&pageSize=2", nil)
	resp, err = decode[handler.ProductsSearchResult](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected empty page past the end, got %v", productIDs(resp.Data))
	}
}

func TestGetProductsHandler_InvalidPaging(t *testing.T) {
	env := newTestEnv(0, nil)

	w := env.do(http.MethodGet, "/products?page=0&pageSize=500", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	errs, err := decode[[]handler.QueryValidationError](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	if !fields["page"] || !fields["pageSize"] {
		t.Errorf("expected errors for page and pageSize, got %+v", errs)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	env := newTestEnv(0, nil)

	w := env.do(http.MethodGet, "/products/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[handler.ProductResponse](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Name != "Кружка" || resp.Date != "2023-11-20" {
		t.Errorf("unexpected product %+v", resp)
	}

	if w := env.do(http.MethodGet, "/products/99", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
	if w := env.do(http.MethodGet, "/products/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestGetCategoriesHandler(t *testing.T) {
	env := newTestEnv(0, nil)

	w := env.do(http.MethodGet, "/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[handler.CategoriesResult](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	expected := []string{"Электроника", "Посуда", "Продукты"}
	if !slices.Equal(resp.Data, expected) {
		t.Errorf("expected %v, got %v", expected, resp.Data)
	}
}

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(0, nil)

	w := env.do(http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, err := decode[handler.HealthResponse](w)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.CatalogLoaded || resp.Products != 5 {
		t.Errorf("unexpected health %+v", resp)
	}
}

func TestSwaggerDocument(t *testing.T) {
	env := newTestEnv(0, nil)

	w := env.do(http.MethodGet, "/swagger/doc.json", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	for _, path := range []string{`"/products"`, `"/cart/items/{id}"`, `"/cart/order"`, "quantity out of range"} {
		if !strings.Contains(body, path) {
			t.Errorf("expected swagger document to mention %s", path)
		}
	}
}
