package listingrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName — коллекция объявлений в документном хранилище.
const CollectionName = "listings"

type ListingRepository struct {
	col *mongo.Collection
	log *slog.Logger
}

func NewListingRepository(db *mongo.Database, log *slog.Logger) *ListingRepository {
	return &ListingRepository{col: db.Collection(CollectionName), log: log}
}

// predicateToFilter транслирует предикат в фильтр документного хранилища.
// Семантика обязана совпадать с domain.Predicate.Matches.
func predicateToFilter(p domain.Predicate) bson.M {
	filter := bson.M{}

	if p.ValidatedOnly {
		filter["validated"] = true
	}
	if p.ExcludeID != "" {
		filter["_id"] = bson.M{"$ne": p.ExcludeID}
	}

	for _, c := range p.Ranges {
		rng := bson.M{}
		if c.Min != nil {
			rng["$gte"] = *c.Min
		}
		if c.Max != nil {
			rng["$lte"] = *c.Max
		}
		if len(rng) > 0 {
			filter[c.Field] = rng
		}
	}

	for _, c := range p.Equals {
		if c.Fold {
			if s, ok := stringValue(c.Value); ok {
				filter[c.Field] = bson.M{
					"$regex":   "^" + regexp.QuoteMeta(s) + "$",
					"$options": "i",
				}
				continue
			}
		}
		filter[c.Field] = c.Value
	}

	for _, c := range p.Substrings {
		filter[c.Field] = bson.M{
			"$regex":   regexp.QuoteMeta(c.Value),
			"$options": "i",
		}
	}

	for _, c := range p.ContainsAll {
		filter[c.Field] = bson.M{"$all": c.Values}
	}

	if p.Geo != nil {
		// $centerSphere принимает legacy-пару (lng, lat) и радиус в радианах.
		filter["location.coordinates"] = bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{
					bson.A{p.Geo.Lng, p.Geo.Lat},
					p.Geo.RadiusKm / domain.EarthRadiusKm,
				},
			},
		}
	}

	if p.DeliveryBefore != nil {
		filter["vefa.deliveryBy"] = bson.M{"$lte": *p.DeliveryBefore}
	}

	if p.Text != nil {
		filter["$text"] = bson.M{"$search": p.Text.Query}
	}

	return filter
}

// Search — выборка объявлений по предикату с сортировкой и границами.
// При текстовом запросе сортировка запроса заменяется релевантностью.
func (r *ListingRepository) Search(ctx context.Context, p domain.Predicate, ord domain.Ordering, offset, limit int64) ([]domain.Listing, error) {
	const op = "ListingRepository.Search"

	opts := options.Find().SetSkip(offset).SetLimit(limit)
	if p.Text != nil {
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
		opts.SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	} else {
		dir := -1
		if ord.Direction == domain.OrderAsc {
			dir = 1
		}
		opts.SetSort(bson.D{{Key: mongoField(ord.Field), Value: dir}})
	}

	cursor, err := r.col.Find(ctx, predicateToFilter(p), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	var listings []domain.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("%s: decode failed: %w", op, err)
	}
	return listings, nil
}

// Count — число объявлений, удовлетворяющих предикату.
func (r *ListingRepository) Count(ctx context.Context, p domain.Predicate) (int64, error) {
	const op = "ListingRepository.Count"

	n, err := r.col.CountDocuments(ctx, predicateToFilter(p))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// GetByID — объявление по идентификатору.
func (r *ListingRepository) GetByID(ctx context.Context, id string) (domain.Listing, error) {
	const op = "ListingRepository.GetByID"

	var l domain.Listing
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Listing{}, fmt.Errorf("%s: %w", op, repository.ErrListingNotFound)
		}
		return domain.Listing{}, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// FindByIDs — объявления по списку идентификаторов. Порядок выдачи
// хранилища не специфицирован; отсутствующие id молча пропускаются.
func (r *ListingRepository) FindByIDs(ctx context.Context, ids []string, validatedOnly bool) ([]domain.Listing, error) {
	const op = "ListingRepository.FindByIDs"

	if len(ids) == 0 {
		return nil, nil
	}

	filter := bson.M{"_id": bson.M{"$in": ids}}
	if validatedOnly {
		filter["validated"] = true
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	var listings []domain.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("%s: decode failed: %w", op, err)
	}
	return listings, nil
}

// IncrementViews атомарно увеличивает счётчик просмотров
// и возвращает новое значение.
func (r *ListingRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	const op = "ListingRepository.IncrementViews"

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l domain.Listing
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrListingNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return l.Views, nil
}

// Save перезаписывает документ объявления целиком (read-modify-write).
func (r *ListingRepository) Save(ctx context.Context, l domain.Listing) error {
	const op = "ListingRepository.Save"

	l.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrListingNotFound)
	}
	return nil
}

// ForEachValidated прогоняет fn по всем валидированным объявлениям.
// Используется однопроходными свёртками (статистика).
func (r *ListingRepository) ForEachValidated(ctx context.Context, fn func(domain.Listing) error) error {
	const op = "ListingRepository.ForEachValidated"

	cursor, err := r.col.Find(ctx, bson.M{"validated": true})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var l domain.Listing
		if err := cursor.Decode(&l); err != nil {
			return fmt.Errorf("%s: decode failed: %w", op, err)
		}
		if err := fn(l); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// PromoterCounts — счётчики объявлений застройщика: все, проданные,
// активные (валидированные и непроданные).
func (r *ListingRepository) PromoterCounts(ctx context.Context, promoterID string) (domain.PromoterStatistics, error) {
	const op = "ListingRepository.PromoterCounts"

	var stats domain.PromoterStatistics
	var err error

	stats.TotalProperties, err = r.col.CountDocuments(ctx, bson.M{"promoterId": promoterID})
	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	stats.SoldProperties, err = r.col.CountDocuments(ctx, bson.M{"promoterId": promoterID, "sold": true})
	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	stats.ActiveProperties, err = r.col.CountDocuments(ctx, bson.M{"promoterId": promoterID, "validated": true, "sold": false})
	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// mongoField отображает доменное имя поля в путь документа.
// Имена совпадают, отображение оставлено точкой расширения.
func mongoField(field string) string {
	return field
}

func stringValue(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case domain.PropertyType:
		return s.String(), true
	}
	return "", false
}
