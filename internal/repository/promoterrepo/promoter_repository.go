package promoterrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName — коллекция застройщиков в документном хранилище.
const CollectionName = "promoters"

type PromoterRepository struct {
	col *mongo.Collection
	log *slog.Logger
}

func NewPromoterRepository(db *mongo.Database, log *slog.Logger) *PromoterRepository {
	return &PromoterRepository{col: db.Collection(CollectionName), log: log}
}

// GetByID — застройщик по идентификатору.
func (r *PromoterRepository) GetByID(ctx context.Context, id string) (domain.Promoter, error) {
	const op = "PromoterRepository.GetByID"

	var p domain.Promoter
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Promoter{}, fmt.Errorf("%s: %w", op, repository.ErrPromoterNotFound)
		}
		return domain.Promoter{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// List — страница застройщиков, отсортированных по имени.
func (r *PromoterRepository) List(ctx context.Context, offset, limit int64) ([]domain.Promoter, int64, error) {
	const op = "PromoterRepository.List"

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count failed: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	var promoters []domain.Promoter
	if err := cursor.All(ctx, &promoters); err != nil {
		return nil, 0, fmt.Errorf("%s: decode failed: %w", op, err)
	}
	return promoters, total, nil
}

// UpdateStatistics сохраняет пересчитанные агрегаты застройщика.
func (r *PromoterRepository) UpdateStatistics(ctx context.Context, id string, stats domain.PromoterStatistics) error {
	const op = "PromoterRepository.UpdateStatistics"

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"statistics": stats}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPromoterNotFound)
	}
	return nil
}
