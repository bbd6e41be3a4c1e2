package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/favorites"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/search"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// SearchService — поиск объявлений.
type SearchService interface {
	Search(ctx context.Context, params search.Params, userID *uuid.UUID) (*domain.PaginatedResult[search.Result], error)
}

// ListingService — карточка, похожие объявления, статистика и
// админские правки.
type ListingService interface {
	Get(ctx context.Context, id string) (domain.Listing, error)
	Similar(ctx context.Context, id string, limit int) ([]domain.Listing, error)
	Update(ctx context.Context, id string, update domain.ListingUpdate) (domain.Listing, error)
	Stats(ctx context.Context) (domain.ListingStats, error)
}

// FavoritesService — избранное пользователя.
type FavoritesService interface {
	Add(ctx context.Context, userID uuid.UUID, listingID string) (favorites.Status, error)
	Remove(ctx context.Context, userID uuid.UUID, listingID string) (favorites.Status, error)
	List(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (*domain.PaginatedResult[domain.Listing], error)
}

// UserService — аккаунты и токены.
type UserService interface {
	Register(ctx context.Context, in user.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	ParseToken(tokenStr string) (user.Claims, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in user.ProfileUpdate) (domain.User, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.Preferences) (domain.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// PromoterService — профили застройщиков.
type PromoterService interface {
	Get(ctx context.Context, id string) (domain.Promoter, error)
	List(ctx context.Context, page domain.PageRequest) (*domain.PaginatedResult[domain.Promoter], error)
}

// PhotoStore — подписанные ссылки на фотографии объявлений.
type PhotoStore interface {
	UploadURL(ctx context.Context, listingID, filename string) (string, error)
	DownloadURL(ctx context.Context, listingID, filename string) (string, error)
}

// Server — HTTP-обвязка ядра.
type Server struct {
	log       *slog.Logger
	search    SearchService
	listings  ListingService
	favorites FavoritesService
	users     UserService
	promoters PromoterService
	photos    PhotoStore
}

func NewServer(
	log *slog.Logger,
	searchSvc SearchService,
	listingSvc ListingService,
	favoritesSvc FavoritesService,
	userSvc UserService,
	promoterSvc PromoterService,
	photos PhotoStore,
) *Server {
	return &Server{
		log:       log,
		search:    searchSvc,
		listings:  listingSvc,
		favorites: favoritesSvc,
		users:     userSvc,
		promoters: promoterSvc,
		photos:    photos,
	}
}

// Router собирает маршруты API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.authenticate)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/listings", s.handleSearch)
		r.Get("/listings/{id}", s.handleGetListing)
		r.Get("/listings/{id}/similar", s.handleSimilar)
		r.Get("/listings/{id}/photos/{filename}", s.handlePhotoURL)
		r.Get("/stats", s.handleStats)

		r.Get("/promoters", s.handleListPromoters)
		r.Get("/promoters/{id}", s.handleGetPromoter)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/me", s.handleGetProfile)
			r.Put("/me", s.handleUpdateProfile)
			r.Put("/me/preferences", s.handleUpdatePreferences)
			r.Put("/me/password", s.handleChangePassword)
			r.Delete("/me", s.handleDeactivate)

			r.Get("/me/favorites", s.handleListFavorites)
			r.Post("/me/favorites", s.handleAddFavorite)
			r.Delete("/me/favorites/{id}", s.handleRemoveFavorite)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAdmin)

			r.Patch("/listings/{id}", s.handleUpdateListing)
			r.Post("/listings/{id}/photos", s.handlePhotoUpload)
		})
	})

	return r
}
