package promoter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/lib/logger/sl"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository"
)

var ErrPromoterNotFound = errors.New("promoter not found")

// PromoterStore — документное хранилище застройщиков.
type PromoterStore interface {
	GetByID(ctx context.Context, id string) (domain.Promoter, error)
	List(ctx context.Context, offset, limit int64) ([]domain.Promoter, int64, error)
	UpdateStatistics(ctx context.Context, id string, stats domain.PromoterStatistics) error
}

// ListingCounter — счётчики объявлений застройщика из хранилища объявлений.
type ListingCounter interface {
	PromoterCounts(ctx context.Context, promoterID string) (domain.PromoterStatistics, error)
}

type Service struct {
	log       *slog.Logger
	promoters PromoterStore
	listings  ListingCounter
}

func New(log *slog.Logger, promoters PromoterStore, listings ListingCounter) *Service {
	return &Service{log: log, promoters: promoters, listings: listings}
}

// Get — профиль застройщика. Агрегаты пересчитываются на лету
// сканированием объявлений; сохранённое значение — лишь кеш.
func (s *Service) Get(ctx context.Context, id string) (domain.Promoter, error) {
	const op = "promoter.Service.Get"

	p, err := s.promoters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPromoterNotFound) {
			return domain.Promoter{}, fmt.Errorf("%s: %w", op, ErrPromoterNotFound)
		}
		return domain.Promoter{}, fmt.Errorf("%s: %w", op, err)
	}

	stats, err := s.listings.PromoterCounts(ctx, id)
	if err != nil {
		return domain.Promoter{}, fmt.Errorf("%s: %w", op, err)
	}
	p.Statistics = stats

	if err := s.promoters.UpdateStatistics(ctx, id, stats); err != nil {
		s.log.Warn("failed to cache promoter statistics", slog.String("promoter_id", id), sl.Err(err))
	}

	return p, nil
}

// List — страница застройщиков.
func (s *Service) List(ctx context.Context, page domain.PageRequest) (*domain.PaginatedResult[domain.Promoter], error) {
	const op = "promoter.Service.List"

	promoters, total, err := s.promoters.List(ctx, page.Offset(), page.Limit())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if promoters == nil {
		promoters = []domain.Promoter{}
	}

	return &domain.PaginatedResult[domain.Promoter]{
		Items:    promoters,
		PageInfo: domain.NewPageInfo(total, page),
	}, nil
}
