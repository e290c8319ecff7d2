package models

// CartLine is one product's entry in the cart.
type CartLine struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
	Image    string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
}

// NewCartLine copies the display fields of p into a line with quantity 1.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Image:    p.Image,
		Quantity: 1,
	}
}
