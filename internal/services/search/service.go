package search

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/lib/logger/sl"

	"github.com/google/uuid"
)

// ListingStore — операции документного хранилища, нужные поиску.
type ListingStore interface {
	Search(ctx context.Context, p domain.Predicate, ord domain.Ordering, offset, limit int64) ([]domain.Listing, error)
	Count(ctx context.Context, p domain.Predicate) (int64, error)
}

// UserStore — операции аккаунтного хранилища: избранное для аннотации
// выдачи и история поиска.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	SaveSearchHistory(ctx context.Context, id uuid.UUID, history []string) error
}

type Service struct {
	log      *slog.Logger
	listings ListingStore
	users    UserStore
}

func New(log *slog.Logger, listings ListingStore, users UserStore) *Service {
	return &Service{log: log, listings: listings, users: users}
}

// Params — сырые параметры фильтрации, как они пришли в запросе.
// Числовые значения остаются строками: некорректное значение — это
// отсутствие фильтра, а не ошибка.
type Params struct {
	City           string
	Type           string
	PriceMin       string
	PriceMax       string
	SurfaceMin     string
	SurfaceMax     string
	Rooms          string
	Features       []string
	IsVefa         string
	DeliveryBefore string
	Query          string
	Lat            string
	Lng            string
	RadiusKm       string
	Sort           string
	Page           string
	Limit          string
}

// Result — объявление в выдаче с флагом избранного для
// аутентифицированного пользователя.
type Result struct {
	domain.Listing
	Favorited bool `json:"favorited"`
}

// BuildPredicate — чистая функция из набора параметров в предикат.
// Неявно добавляет validated=true; некорректные значения молча опускаются.
func BuildPredicate(params Params) domain.Predicate {
	p := domain.Predicate{ValidatedOnly: true}

	if city := strings.TrimSpace(params.City); city != "" {
		p.Substrings = append(p.Substrings, domain.SubstringCondition{
			Field: domain.FieldCity,
			Value: city,
		})
	}

	if t := domain.ParsePropertyType(params.Type); t != domain.PropertyTypeUnspecified {
		p.Equals = append(p.Equals, domain.EqualsCondition{
			Field: domain.FieldType,
			Value: t,
		})
	}

	if rng, ok := rangeCondition(domain.FieldPrice, params.PriceMin, params.PriceMax); ok {
		p.Ranges = append(p.Ranges, rng)
	}
	if rng, ok := rangeCondition(domain.FieldSurface, params.SurfaceMin, params.SurfaceMax); ok {
		p.Ranges = append(p.Ranges, rng)
	}

	if rooms := parseFloat(params.Rooms); rooms != nil {
		p.Ranges = append(p.Ranges, domain.RangeCondition{
			Field: domain.FieldRooms,
			Min:   rooms,
			Max:   rooms,
		})
	}

	if features := normalizeFeatures(params.Features); len(features) > 0 {
		p.ContainsAll = append(p.ContainsAll, domain.ContainsAllCondition{
			Field:  domain.FieldFeatures,
			Values: features,
		})
	}

	switch params.IsVefa {
	case "true":
		p.Equals = append(p.Equals, domain.EqualsCondition{Field: domain.FieldIsVefa, Value: true})
	case "false":
		p.Equals = append(p.Equals, domain.EqualsCondition{Field: domain.FieldIsVefa, Value: false})
	}

	if params.DeliveryBefore != "" {
		if cutoff, err := domain.ParseDeliveryDate(params.DeliveryBefore); err == nil {
			p.DeliveryBefore = &cutoff
		}
	}

	if q := strings.TrimSpace(params.Query); q != "" {
		p.Text = &domain.TextCondition{Query: q}
	}

	// Геофильтр активен только при полном и корректном наборе
	// центра и радиуса.
	lat, lng, radius := parseFloat(params.Lat), parseFloat(params.Lng), parseFloat(params.RadiusKm)
	if lat != nil && lng != nil && radius != nil && *radius > 0 {
		p.Geo = &domain.GeoRadiusCondition{Lat: *lat, Lng: *lng, RadiusKm: *radius}
	}

	return p
}

// BuildPage нормализует параметры страницы: нечисловые значения
// откатываются к умолчаниям, выход за диапазон прижимается.
func BuildPage(page, limit string) domain.PageRequest {
	p, _ := strconv.Atoi(page)
	l, _ := strconv.Atoi(limit)
	return domain.NewPageRequest(p, l)
}

// Search — публичный поиск объявлений. Для аутентифицированного
// пользователя выдача аннотируется флагами избранного, а текстовый
// запрос попадает в историю поиска.
func (s *Service) Search(ctx context.Context, params Params, userID *uuid.UUID) (*domain.PaginatedResult[Result], error) {
	const op = "search.Service.Search"
	log := s.log.With(slog.String("op", op))

	p := BuildPredicate(params)
	ord := domain.ParseSortKey(params.Sort).Ordering()
	page := BuildPage(params.Page, params.Limit)

	total, err := s.listings.Count(ctx, p)
	if err != nil {
		log.Error("count failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	listings, err := s.listings.Search(ctx, p, ord, page.Offset(), page.Limit())
	if err != nil {
		log.Error("search failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	favorites := map[string]struct{}{}
	if userID != nil {
		user, err := s.users.GetByID(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, id := range user.Favorites {
			favorites[id] = struct{}{}
		}

		if params.Query != "" {
			user.RecordSearch(params.Query)
			// История поиска консультативна: сбой записи не валит запрос.
			if err := s.users.SaveSearchHistory(ctx, *userID, user.SearchHistory); err != nil {
				log.Warn("failed to save search history", sl.Err(err))
			}
		}
	}

	results := make([]Result, 0, len(listings))
	for _, l := range listings {
		_, fav := favorites[l.ID]
		results = append(results, Result{Listing: l, Favorited: fav})
	}

	return &domain.PaginatedResult[Result]{
		Items:    results,
		PageInfo: domain.NewPageInfo(total, page),
	}, nil
}

func rangeCondition(field, minRaw, maxRaw string) (domain.RangeCondition, bool) {
	rng := domain.RangeCondition{Field: field, Min: parseFloat(minRaw), Max: parseFloat(maxRaw)}
	return rng, rng.Min != nil || rng.Max != nil
}

// parseFloat возвращает nil для пустого или некорректного значения —
// фильтр просто не применяется.
func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func normalizeFeatures(raw []string) []string {
	var features []string
	for _, f := range raw {
		for _, part := range strings.Split(f, ",") {
			if part = strings.TrimSpace(part); part != "" {
				features = append(features, strings.ToLower(part))
			}
		}
	}
	return features
}
