package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/config"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/lib/photostore"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository/listingrepo"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository/promoterrepo"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository/userrepo"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/rest"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/favorites"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/listing"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/promoter"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/search"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/services/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// App — собранное приложение: два пула к хранилищам и HTTP-сервер.
type App struct {
	log             *slog.Logger
	httpServer      *http.Server
	pgPool          *pgxpool.Pool
	mongoClose      func(context.Context) error
	shutdownTimeout time.Duration
}

// New поднимает соединения с обоими хранилищами и собирает сервисы.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: postgres: %w", op, err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: mongo: %w", op, err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	listingRepository := listingrepo.NewListingRepository(db, log)
	promoterRepository := promoterrepo.NewPromoterRepository(db, log)
	userRepository := userrepo.NewUserRepository(pool, log)

	userService := user.New(log, userRepository, cfg.TokenTTL, cfg.Secret)
	searchService := search.New(log, listingRepository, userRepository)
	listingService := listing.New(log, listingRepository)
	favoritesService := favorites.New(log, userRepository, listingRepository)
	promoterService := promoter.New(log, promoterRepository, listingRepository)

	var photos rest.PhotoStore = disabledPhotoStore{}
	if cfg.Minio.Enabled {
		store, err := photostore.New(photostore.Config{
			Endpoint:  cfg.Minio.Endpoint,
			Bucket:    cfg.Minio.Bucket,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			URLTTL:    cfg.Minio.URLTTL,
		}, log)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		photos = store
	}

	server := rest.NewServer(log, searchService, listingService, favoritesService, userService, promoterService, photos)

	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(server.Router())

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		log:             log,
		httpServer:      httpServer,
		pgPool:          pool,
		mongoClose:      mongoClient.Disconnect,
		shutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, nil
}

// Run блокируется до остановки HTTP-сервера.
func (a *App) Run() error {
	const op = "app.Run"

	a.log.Info("http server started", slog.String("addr", a.httpServer.Addr))
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Stop аккуратно гасит сервер и закрывает пулы хранилищ.
func (a *App) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("http shutdown failed", slog.String("error", err.Error()))
	}
	if err := a.mongoClose(ctx); err != nil {
		a.log.Error("mongo disconnect failed", slog.String("error", err.Error()))
	}
	a.pgPool.Close()
	a.log.Info("application stopped")
}

// disabledPhotoStore — заглушка при выключенном объектном хранилище.
type disabledPhotoStore struct{}

var errPhotosDisabled = errors.New("photo storage is disabled")

func (disabledPhotoStore) UploadURL(context.Context, string, string) (string, error) {
	return "", errPhotosDisabled
}

func (disabledPhotoStore) DownloadURL(context.Context, string, string) (string, error) {
	return "", errPhotosDisabled
}
