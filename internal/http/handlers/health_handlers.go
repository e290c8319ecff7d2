package handlers

import "net/http"

// Health godoc
// @Summary Liveness and catalog state
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		CatalogLoaded: s.catalog.Loaded(),
		Products:      s.catalog.Len(),
	})
}
