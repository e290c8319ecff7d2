package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/VasKaleev/internetmag-comp/internal/catalog"
)

const maxPageSize = 100

type QueryValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// parseProductQuery turns query parameters into a catalog query. Price bounds
// fall back to their defaults when missing or non-numeric, and an unknown
// sort keeps catalog order.
func (s *Server) parseProductQuery(q url.Values) (catalog.Query, []QueryValidationError) {
	errs := []QueryValidationError{}
	bounds := catalog.ParsePriceBounds(q.Get("minPrice"), q.Get("maxPrice"))

	query := catalog.Query{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Bounds:   &bounds,
		Sort:     catalog.SortCriterion(q.Get("sort")),
		Page:     1,
		PageSize: s.pageSize,
	}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs = append(errs, QueryValidationError{Field: "page", Description: "page must be a positive integer"})
		} else {
			query.Page = page
		}
	}
	if raw := strings.TrimSpace(q.Get("pageSize")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxPageSize {
			errs = append(errs, QueryValidationError{Field: "pageSize", Description: "pageSize must be between 1 and 100"})
		} else {
			query.PageSize = size
		}
	}
	return query, errs
}
