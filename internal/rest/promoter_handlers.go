package rest

import (
	"net/http"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/search"

	"github.com/go-chi/chi/v5"
)

// handleListPromoters — GET /promoters?page=&limit=.
func (s *Server) handleListPromoters(w http.ResponseWriter, r *http.Request) {
	page := search.BuildPage(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	result, err := s.promoters.List(r.Context(), page)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// handleGetPromoter — GET /promoters/{id}: профиль с пересчитанными
// на лету агрегатами.
func (s *Server) handleGetPromoter(w http.ResponseWriter, r *http.Request) {
	p, err := s.promoters.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}
