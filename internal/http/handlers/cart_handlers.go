package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/VasKaleev/internetmag-comp/internal/cart"
)

const (
	persistenceNotice  = "your cart could not be saved and may be lost after a restart"
	orderPlacedMessage = "Заказ оформлен!"
)

func (s *Server) cartResponse(notice string) CartResponse {
	lines := s.cart.Lines()
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return CartResponse{
		Items:      s.cartLineResponses(lines),
		TotalCount: total,
		Notice:     notice,
	}
}

// mutationNotice maps a cart command error to a passive notice. It reports
// false when the error is not one a client should just be told about.
func (s *Server) mutationNotice(err error) (string, bool) {
	if err == nil {
		return "", true
	}
	if errors.Is(err, cart.ErrPersistence) {
		s.logger.Warn("cart change kept in memory only", zap.Error(err))
		return persistenceNotice, true
	}
	return "", false
}

// GetCart godoc
// @Summary Show the cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /cart [get]
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.cartResponse(""))
}

// GetCartCount godoc
// @Summary Total number of items in the cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartCountResponse
// @Router /cart/count [get]
func (s *Server) GetCartCount(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, CartCountResponse{TotalCount: s.cart.TotalCount()})
}

// AddCartItem godoc
// @Summary Add one unit of a product to the cart
// @Tags cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid ID or quantity out of range"
// @Failure 404 {string} string "Unknown product"
// @Router /cart/items/{id} [post]
func (s *Server) AddCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = s.cart.AddItem(r.Context(), id)
	if errors.Is(err, cart.ErrUnknownProduct) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, cart.ErrInvalidQuantity) {
		http.Error(w, "quantity out of range", http.StatusBadRequest)
		return
	}
	notice, ok := s.mutationNotice(err)
	if !ok {
		http.Error(w, "could not add product to cart", http.StatusInternalServerError)
		return
	}
	s.respond(w, http.StatusOK, s.cartResponse(notice))
}

// ChangeCartItem godoc
// @Summary Change the quantity of a cart line
// @Description Adds delta to the line's quantity; the line is removed once it reaches zero.
// @Tags cart
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Quantity change"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid input or quantity out of range"
// @Router /cart/items/{id} [patch]
func (s *Server) ChangeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req QuantityAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	err = s.cart.ChangeQuantity(r.Context(), id, req.Delta)
	if errors.Is(err, cart.ErrInvalidQuantity) {
		http.Error(w, "quantity out of range", http.StatusBadRequest)
		return
	}
	notice, ok := s.mutationNotice(err)
	if !ok {
		http.Error(w, "could not update quantity", http.StatusInternalServerError)
		return
	}
	s.respond(w, http.StatusOK, s.cartResponse(notice))
}

// RemoveCartItem godoc
// @Summary Remove a line from the cart
// @Tags cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid ID"
// @Router /cart/items/{id} [delete]
func (s *Server) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	notice, ok := s.mutationNotice(s.cart.RemoveItem(r.Context(), id))
	if !ok {
		http.Error(w, "could not remove product from cart", http.StatusInternalServerError)
		return
	}
	s.respond(w, http.StatusOK, s.cartResponse(notice))
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Router /cart [delete]
func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	notice, ok := s.mutationNotice(s.cart.Clear(r.Context()))
	if !ok {
		http.Error(w, "could not clear cart", http.StatusInternalServerError)
		return
	}
	s.respond(w, http.StatusOK, s.cartResponse(notice))
}

// PlaceOrder godoc
// @Summary Place an order
// @Description Empties the cart and returns a confirmation. No order is sent anywhere.
// @Tags cart
// @Produce json
// @Success 201 {object} OrderResponse
// @Failure 409 {string} string "Cart is empty"
// @Router /cart/order [post]
func (s *Server) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	confirmation, err := s.cart.PlaceOrder(r.Context())
	if errors.Is(err, cart.ErrEmptyCart) {
		http.Error(w, "cart is empty", http.StatusConflict)
		return
	}
	notice, ok := s.mutationNotice(err)
	if !ok {
		http.Error(w, "could not place order", http.StatusInternalServerError)
		return
	}

	s.respond(w, http.StatusCreated, OrderResponse{
		Reference: confirmation.Reference.String(),
		Message:   orderPlacedMessage,
		ItemCount: confirmation.ItemCount,
		LineCount: confirmation.LineCount,
		Lines:     s.cartLineResponses(confirmation.Lines),
		PlacedAt:  confirmation.PlacedAt,
		Notice:    notice,
	})
}
