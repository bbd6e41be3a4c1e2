package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/lib/logger/sl"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository"
)

const (
	// DefaultSimilarLimit — размер блока похожих объявлений по умолчанию.
	DefaultSimilarLimit = 6
	// MaxSimilarLimit — жёсткий потолок блока похожих.
	MaxSimilarLimit = 20
	// similarTolerance — допуск по цене и площади при поиске похожих.
	similarTolerance = 0.20
)

var ErrListingNotFound = errors.New("listing not found")

// ListingStore — операции документного хранилища объявлений.
type ListingStore interface {
	GetByID(ctx context.Context, id string) (domain.Listing, error)
	Search(ctx context.Context, p domain.Predicate, ord domain.Ordering, offset, limit int64) ([]domain.Listing, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	Save(ctx context.Context, l domain.Listing) error
	ForEachValidated(ctx context.Context, fn func(domain.Listing) error) error
}

type Service struct {
	log      *slog.Logger
	listings ListingStore
}

func New(log *slog.Logger, listings ListingStore) *Service {
	return &Service{log: log, listings: listings}
}

// Get — публичная карточка объявления. Невалидированные объявления
// наружу не отдаются. Просмотр увеличивает счётчик.
func (s *Service) Get(ctx context.Context, id string) (domain.Listing, error) {
	const op = "listing.Service.Get"

	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return domain.Listing{}, fmt.Errorf("%s: %w", op, ErrListingNotFound)
		}
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}
	if !l.Validated {
		return domain.Listing{}, fmt.Errorf("%s: %w", op, ErrListingNotFound)
	}

	// Счётчик просмотров консультативный: сбой инкремента не валит запрос.
	views, err := s.listings.IncrementViews(ctx, id)
	if err != nil {
		s.log.Warn("failed to increment views", slog.String("listing_id", id), sl.Err(err))
	} else {
		l.Views = views
	}

	return l, nil
}

// Similar подбирает до limit похожих объявлений: тот же тип, тот же
// город, цена и площадь в пределах ±20% от исходных. Ранжирование —
// по убыванию просмотров. Отсутствующий источник — пустой результат.
func (s *Service) Similar(ctx context.Context, id string, limit int) ([]domain.Listing, error) {
	const op = "listing.Service.Similar"

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}

	src, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return []domain.Listing{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !src.Validated {
		return []domain.Listing{}, nil
	}

	p := domain.Predicate{
		ValidatedOnly: true,
		ExcludeID:     src.ID,
		Equals: []domain.EqualsCondition{
			{Field: domain.FieldType, Value: src.PropertyType},
			{Field: domain.FieldCity, Value: src.Location.City, Fold: true},
		},
		Ranges: []domain.RangeCondition{
			toleranceBand(domain.FieldPrice, src.Price),
			toleranceBand(domain.FieldSurface, src.Surface),
		},
	}
	ord := domain.Ordering{Field: domain.FieldViews, Direction: domain.OrderDesc}

	similar, err := s.listings.Search(ctx, p, ord, 0, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if similar == nil {
		similar = []domain.Listing{}
	}
	return similar, nil
}

// Update — частичное обновление объявления (админский путь).
// Производная цена за метр пересчитывается при изменении цены или площади.
func (s *Service) Update(ctx context.Context, id string, update domain.ListingUpdate) (domain.Listing, error) {
	const op = "listing.Service.Update"
	log := s.log.With(slog.String("op", op), slog.String("listing_id", id))

	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return domain.Listing{}, fmt.Errorf("%s: %w", op, ErrListingNotFound)
		}
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	if update.Title != nil {
		l.Title = *update.Title
	}
	if update.Description != nil {
		l.Description = *update.Description
	}
	if update.Price != nil {
		l.Price = *update.Price
	}
	if update.Surface != nil {
		l.Surface = *update.Surface
	}
	if update.Validated != nil {
		l.Validated = *update.Validated
	}
	if update.Sold != nil {
		l.Sold = *update.Sold
	}
	l.RecalcPricePerArea()

	if err := s.listings.Save(ctx, l); err != nil {
		log.Error("failed to save listing", sl.Err(err))
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("listing updated")
	return l, nil
}

// Stats — сводная статистика по валидированным объявлениям,
// однопроходная свёртка по коллекции.
func (s *Service) Stats(ctx context.Context) (domain.ListingStats, error) {
	const op = "listing.Service.Stats"

	acc := domain.NewStatsAccumulator()
	err := s.listings.ForEachValidated(ctx, func(l domain.Listing) error {
		acc.Add(l)
		return nil
	})
	if err != nil {
		return domain.ListingStats{}, fmt.Errorf("%s: %w", op, err)
	}
	return acc.Result(), nil
}

func toleranceBand(field string, value float64) domain.RangeCondition {
	lo := value * (1 - similarTolerance)
	hi := value * (1 + similarTolerance)
	return domain.RangeCondition{Field: field, Min: &lo, Max: &hi}
}
