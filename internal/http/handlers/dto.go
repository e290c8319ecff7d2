package handlers

import (
	"time"

	"github.com/VasKaleev/internetmag-comp/internal/models"
)

type ProductResponse struct {
	Id           int     `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Category     string  `json:"category"`
	Rating       float64 `json:"rating"`
	Date         string  `json:"date,omitempty"`
	Image        string  `json:"image"`
	Description  string  `json:"description,omitempty"`
}

type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

type CategoriesResult struct {
	Data []string `json:"data"`
}

type CartLineResponse struct {
	Id           int     `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Category     string  `json:"category,omitempty"`
	Image        string  `json:"image,omitempty"`
	Quantity     int     `json:"quantity"`
}

type CartResponse struct {
	Items      []CartLineResponse `json:"items"`
	TotalCount int                `json:"total_count"`
	Notice     string             `json:"notice,omitempty"`
}

type CartCountResponse struct {
	TotalCount int `json:"total_count"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type OrderResponse struct {
	Reference string             `json:"reference"`
	Message   string             `json:"message"`
	ItemCount int                `json:"item_count"`
	LineCount int                `json:"line_count"`
	Lines     []CartLineResponse `json:"lines"`
	PlacedAt  time.Time          `json:"placed_at"`
	Notice    string             `json:"notice,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	CatalogLoaded bool   `json:"catalog_loaded"`
	Products      int    `json:"products"`
}

func (s *Server) productResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: models.FormatPrice(p.Price, s.currency),
		Category:     p.Category,
		Rating:       p.Rating,
		Date:         p.Date.String(),
		Image:        p.Image,
		Description:  p.Description,
	}
}

func (s *Server) cartLineResponses(lines []models.CartLine) []CartLineResponse {
	resp := make([]CartLineResponse, len(lines))
	for i, l := range lines {
		resp[i] = CartLineResponse{
			Id:           l.ID,
			Name:         l.Name,
			Price:        l.Price,
			PriceDisplay: models.FormatPrice(l.Price, s.currency),
			Category:     l.Category,
			Image:        l.Image,
			Quantity:     l.Quantity,
		}
	}
	return resp
}
