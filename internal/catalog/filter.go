package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/VasKaleev/internetmag-comp/internal/models"
)

// PriceBounds is an inclusive price range.
type PriceBounds struct {
	Min float64
	Max float64
}

// AnyPrice matches every non-negative price.
func AnyPrice() PriceBounds {
	return PriceBounds{Min: 0, Max: math.Inf(1)}
}

// ParsePriceBounds turns raw user input into bounds. Absent or non-numeric
// values fall back to 0 for the minimum and +Inf for the maximum.
func ParsePriceBounds(minRaw, maxRaw string) PriceBounds {
	b := AnyPrice()
	if v, ok := parsePrice(minRaw); ok {
		b.Min = v
	}
	if v, ok := parsePrice(maxRaw); ok {
		b.Max = v
	}
	return b
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Contains reports whether price falls within the bounds.
func (b PriceBounds) Contains(price float64) bool {
	return price >= b.Min && price <= b.Max
}

// ByCategory returns the products whose category equals category, in order.
func ByCategory(products []models.Product, category string) []models.Product {
	filtered := []models.Product{}
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// BySearchAndPrice returns the products whose name contains text
// (case-insensitive) and whose price is within bounds, in order.
func BySearchAndPrice(products []models.Product, text string, bounds PriceBounds) []models.Product {
	needle := strings.ToLower(text)
	filtered := []models.Product{}
	for _, p := range products {
		if matchesFilter(p, needle, bounds) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesFilter(p models.Product, needle string, bounds PriceBounds) bool {
	if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
		return false
	}
	return bounds.Contains(p.Price)
}
