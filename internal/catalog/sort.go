package catalog

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/VasKaleev/internetmag-comp/internal/models"
)

// SortCriterion names one of the supported product orderings.
type SortCriterion string

const (
	SortNameAsc    SortCriterion = "name_asc"
	SortNameDesc   SortCriterion = "name_desc"
	SortPriceAsc   SortCriterion = "price_asc"
	SortPriceDesc  SortCriterion = "price_desc"
	SortRatingAsc  SortCriterion = "rating_asc"
	SortRatingDesc SortCriterion = "rating_desc"
	SortDateAsc    SortCriterion = "date_asc"
	SortDateDesc   SortCriterion = "date_desc"
)

// SortCriteria lists the recognized criteria.
var SortCriteria = []SortCriterion{
	SortNameAsc, SortNameDesc,
	SortPriceAsc, SortPriceDesc,
	SortRatingAsc, SortRatingDesc,
	SortDateAsc, SortDateDesc,
}

// Valid reports whether c is a recognized criterion.
func (c SortCriterion) Valid() bool {
	return slices.Contains(SortCriteria, c)
}

// SortProducts returns a stably sorted copy of products. Names are compared
// with the collation rules of locale. An unrecognized criterion returns an
// unmodified copy.
func SortProducts(products []models.Product, criterion SortCriterion, locale language.Tag) []models.Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []models.Product{}
	}

	compare := comparator(criterion, locale)
	if compare == nil {
		return sorted
	}
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(criterion SortCriterion, locale language.Tag) func(a, b models.Product) int {
	switch criterion {
	case SortNameAsc, SortNameDesc:
		// collate.Collator keeps internal buffers, so each sort gets its own.
		coll := collate.New(locale)
		if criterion == SortNameAsc {
			return func(a, b models.Product) int { return coll.CompareString(a.Name, b.Name) }
		}
		return func(a, b models.Product) int { return coll.CompareString(b.Name, a.Name) }
	case SortPriceAsc:
		return func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		return func(a, b models.Product) int { return cmp.Compare(b.Price, a.Price) }
	case SortRatingAsc:
		return func(a, b models.Product) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortRatingDesc:
		return func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortDateAsc:
		return func(a, b models.Product) int { return a.Date.Compare(b.Date.Time) }
	case SortDateDesc:
		return func(a, b models.Product) int { return b.Date.Compare(a.Date.Time) }
	}
	return nil
}
