package rest

import (
	"net/http"
	"strconv"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/search"

	"github.com/go-chi/chi/v5"
)

// handleSearch — GET /listings: поиск с фильтрами, сортировкой
// и пагинацией. Параметры передаются в ядро как есть: разбор там
// намеренно снисходительный.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := search.Params{
		City:           q.Get("city"),
		Type:           q.Get("type"),
		PriceMin:       q.Get("priceMin"),
		PriceMax:       q.Get("priceMax"),
		SurfaceMin:     q.Get("surfaceMin"),
		SurfaceMax:     q.Get("surfaceMax"),
		Rooms:          q.Get("rooms"),
		Features:       q["features"],
		IsVefa:         q.Get("isVefa"),
		DeliveryBefore: q.Get("deliveryBefore"),
		Query:          q.Get("q"),
		Lat:            q.Get("lat"),
		Lng:            q.Get("lng"),
		RadiusKm:       q.Get("radius"),
		Sort:           q.Get("sort"),
		Page:           q.Get("page"),
		Limit:          q.Get("limit"),
	}

	result, err := s.search.Search(r.Context(), params, currentUserID(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// handleGetListing — GET /listings/{id}: карточка объявления,
// просмотр учитывается в счётчике.
func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	l, err := s.listings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, l)
}

// handleSimilar — GET /listings/{id}/similar?limit=N.
func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	similar, err := s.listings.Similar(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"items": similar})
}

// handleStats — GET /stats: сводка по валидированным объявлениям.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.listings.Stats(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

type updateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Surface     *float64 `json:"surface"`
	Validated   *bool    `json:"validated"`
	Sold        *bool    `json:"sold"`
}

// handleUpdateListing — PATCH /listings/{id} (только админ).
func (s *Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	var req updateListingRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	l, err := s.listings.Update(r.Context(), chi.URLParam(r, "id"), domainUpdate(req))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, l)
}

func domainUpdate(req updateListingRequest) domain.ListingUpdate {
	return domain.ListingUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Surface:     req.Surface,
		Validated:   req.Validated,
		Sold:        req.Sold,
	}
}

// handlePhotoUpload — POST /listings/{id}/photos (только админ):
// подписанная ссылка на загрузку файла.
func (s *Server) handlePhotoUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Filename == "" {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "filename is required"})
		return
	}

	url, err := s.photos.UploadURL(r.Context(), chi.URLParam(r, "id"), req.Filename)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"uploadUrl": url})
}

// handlePhotoURL — GET /listings/{id}/photos/{filename}.
func (s *Server) handlePhotoURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.photos.DownloadURL(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "filename"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"url": url})
}
