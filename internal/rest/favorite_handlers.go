package rest

import (
	"net/http"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/favorites"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/search"

	"github.com/go-chi/chi/v5"
)

// handleListFavorites — GET /me/favorites?page=&limit=.
// Страница может быть короче лимита из-за висячих ссылок — это норма.
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	page := search.BuildPage(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))

	result, err := s.favorites.List(r.Context(), claims.UserID, page)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type addFavoriteRequest struct {
	ListingID string `json:"listingId"`
}

type favoriteStatusResponse struct {
	Status favorites.Status `json:"status"`
}

// handleAddFavorite — POST /me/favorites. Повторное добавление —
// успешный ответ со статусом already_favorited.
func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	var req addFavoriteRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.ListingID == "" {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "listingId is required"})
		return
	}

	status, err := s.favorites.Add(r.Context(), claims.UserID, req.ListingID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	code := http.StatusCreated
	if status == favorites.StatusAlreadyFavorited {
		code = http.StatusOK
	}
	s.respondJSON(w, code, favoriteStatusResponse{Status: status})
}

// handleRemoveFavorite — DELETE /me/favorites/{id}. Удаление
// отсутствующего id — успешный ответ со статусом not_favorited.
func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())

	status, err := s.favorites.Remove(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, favoriteStatusResponse{Status: status})
}
