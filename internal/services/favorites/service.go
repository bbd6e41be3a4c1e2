package favorites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrUserNotFound    = errors.New("user not found")
)

// Status — исход идемпотентной операции над избранным.
// Повтор операции — не ошибка, а успешный no-op с отличимым статусом.
type Status string

const (
	StatusAdded            Status = "added"
	StatusAlreadyFavorited Status = "already_favorited"
	StatusRemoved          Status = "removed"
	StatusNotFavorited     Status = "not_favorited"
)

// UserStore — аккаунтное (реляционное) хранилище.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	SaveFavorites(ctx context.Context, id uuid.UUID, favorites []string) error
}

// ListingStore — документное хранилище объявлений.
type ListingStore interface {
	GetByID(ctx context.Context, id string) (domain.Listing, error)
	FindByIDs(ctx context.Context, ids []string, validatedOnly bool) ([]domain.Listing, error)
}

// Service — резолвер избранного между двумя хранилищами. Список id
// живёт в реляционном хранилище, сами объявления — в документном;
// никакого join на уровне хранилищ нет.
type Service struct {
	log      *slog.Logger
	users    UserStore
	listings ListingStore
}

func New(log *slog.Logger, users UserStore, listings ListingStore) *Service {
	return &Service{log: log, users: users, listings: listings}
}

// Add добавляет объявление в избранное. Повторное добавление —
// успешный no-op со статусом StatusAlreadyFavorited.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, listingID string) (Status, error) {
	const op = "favorites.Service.Add"
	log := s.log.With(slog.String("op", op), slog.String("listing_id", listingID))

	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrListingNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !user.AddFavorite(listingID) {
		return StatusAlreadyFavorited, nil
	}

	if err := s.users.SaveFavorites(ctx, userID, user.Favorites); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("favorite added")
	return StatusAdded, nil
}

// Remove убирает объявление из избранного. Отсутствующий id —
// успешный no-op со статусом StatusNotFavorited.
func (s *Service) Remove(ctx context.Context, userID uuid.UUID, listingID string) (Status, error) {
	const op = "favorites.Service.Remove"

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !user.RemoveFavorite(listingID) {
		return StatusNotFavorited, nil
	}

	if err := s.users.SaveFavorites(ctx, userID, user.Favorites); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return StatusRemoved, nil
}

// List — страница избранного. Сначала режется сам список id, затем
// срез резолвится в документном хранилище и переупорядочивается обратно
// в порядок пользователя. Висячие ссылки (удалённые или невалидированные
// объявления) молча выпадают: страница может быть короче лимита, это
// нормальный исход, а не ошибка. Total — полная длина списка избранного.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page domain.PageRequest) (*domain.PaginatedResult[domain.Listing], error) {
	const op = "favorites.Service.List"

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	total := int64(len(user.Favorites))
	info := domain.NewPageInfo(total, page)

	start := int(page.Offset())
	if start >= len(user.Favorites) {
		return &domain.PaginatedResult[domain.Listing]{Items: []domain.Listing{}, PageInfo: info}, nil
	}
	end := min(start+page.Size, len(user.Favorites))
	ids := user.Favorites[start:end]

	fetched, err := s.listings.FindByIDs(ctx, ids, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[string]domain.Listing, len(fetched))
	for _, l := range fetched {
		byID[l.ID] = l
	}

	items := make([]domain.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			items = append(items, l)
		}
	}

	return &domain.PaginatedResult[domain.Listing]{Items: items, PageInfo: info}, nil
}
