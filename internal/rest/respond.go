package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/lib/logger/sl"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/favorites"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/listing"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/promoter"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("failed to encode response", sl.Err(err))
	}
}

// respondError переводит ошибки ядра в HTTP-статусы. Всё, что не
// распознано как доменная ошибка, уходит наружу непрозрачной 500-кой.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listing.ErrListingNotFound),
		errors.Is(err, favorites.ErrListingNotFound),
		errors.Is(err, favorites.ErrUserNotFound),
		errors.Is(err, promoter.ErrPromoterNotFound),
		errors.Is(err, user.ErrUserNotFound):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, user.ErrInvalidInput):
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input"})
	case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrInvalidToken):
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, user.ErrEmailTaken):
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: "email already registered"})
	case errors.Is(err, user.ErrPhoneTaken):
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: "phone already registered"})
	default:
		s.log.Error("request failed", sl.Err(err))
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.log.Warn("bad request body", slog.String("path", r.URL.Path), sl.Err(err))
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
