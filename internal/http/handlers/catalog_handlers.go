package handlers

import (
	"net/http"
)

// ListProducts godoc
// @Summary Filter, sort and paginate the catalog
// @Tags products
// @Produce json
// @Param category query string false "Exact category"
// @Param search query string false "Case-insensitive name substring"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Param sort query string false "name_asc|name_desc|price_asc|price_desc|rating_asc|rating_desc|date_asc|date_desc"
// @Param page query int false "1-indexed page"
// @Param pageSize query int false "Items per page"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {array} QueryValidationError
// @Router /products [get]
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	query, validationErrors := s.parseProductQuery(r.URL.Query())
	if len(validationErrors) > 0 {
		s.respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	page := s.catalog.Query(query)
	resp := ProductsSearchResult{
		Data: make([]ProductResponse, len(page.Items)),
		Meta: Meta{
			Page:       page.Page,
			PageSize:   page.PageSize,
			TotalPages: page.TotalPages,
			TotalCount: page.TotalItems,
		},
	}
	for i, p := range page.Items {
		resp.Data[i] = s.productResponse(p)
	}
	s.respond(w, http.StatusOK, resp)
}

// GetProduct godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /products/{id} [get]
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	product, ok := s.catalog.GetByID(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	s.respond(w, http.StatusOK, s.productResponse(product))
}

// ListCategories godoc
// @Summary List catalog categories
// @Tags products
// @Produce json
// @Success 200 {object} CategoriesResult
// @Router /categories [get]
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, CategoriesResult{Data: s.catalog.Categories()})
}
