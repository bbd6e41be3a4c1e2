package listingrepo

import (
	"testing"
	"time"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPredicateToFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, predicateToFilter(domain.Predicate{}))
}

func TestPredicateToFilterValidatedOnly(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{ValidatedOnly: true})
	assert.Equal(t, bson.M{"validated": true}, filter)
}

func TestPredicateToFilterExcludeID(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{ExcludeID: "a1"})
	assert.Equal(t, bson.M{"_id": bson.M{"$ne": "a1"}}, filter)
}

func TestPredicateToFilterRanges(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{
		Ranges: []domain.RangeCondition{
			{Field: domain.FieldPrice, Min: lo.ToPtr(100000.0), Max: lo.ToPtr(400000.0)},
			{Field: domain.FieldSurface, Min: lo.ToPtr(80.0)},
		},
	})

	assert.Equal(t, bson.M{"$gte": 100000.0, "$lte": 400000.0}, filter["price"])
	assert.Equal(t, bson.M{"$gte": 80.0}, filter["surface"])
}

func TestPredicateToFilterEqualsFold(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{
		Equals: []domain.EqualsCondition{
			{Field: domain.FieldCity, Value: "Tunis", Fold: true},
		},
	})

	assert.Equal(t, bson.M{"$regex": "^Tunis$", "$options": "i"}, filter["location.city"])
}

func TestPredicateToFilterEqualsFoldQuoting(t *testing.T) {
	// Спецсимволы пользовательского ввода не должны попасть в регулярку.
	filter := predicateToFilter(domain.Predicate{
		Equals: []domain.EqualsCondition{
			{Field: domain.FieldCity, Value: "T.u(n)is", Fold: true},
		},
	})

	re, ok := filter["location.city"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, `^T\.u\(n\)is$`, re["$regex"])
}

func TestPredicateToFilterEqualsExact(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{
		Equals: []domain.EqualsCondition{
			{Field: domain.FieldType, Value: domain.PropertyTypeVilla},
			{Field: domain.FieldIsVefa, Value: true},
		},
	})

	assert.Equal(t, domain.PropertyTypeVilla, filter["type"])
	assert.Equal(t, true, filter["vefa.isVefa"])
}

func TestPredicateToFilterSubstring(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{
		Substrings: []domain.SubstringCondition{{Field: domain.FieldCity, Value: "tun"}},
	})

	assert.Equal(t, bson.M{"$regex": "tun", "$options": "i"}, filter["location.city"])
}

func TestPredicateToFilterContainsAll(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{
		ContainsAll: []domain.ContainsAllCondition{
			{Field: domain.FieldFeatures, Values: []string{"terrasse", "piscine"}},
		},
	})

	assert.Equal(t, bson.M{"$all": []string{"terrasse", "piscine"}}, filter["apartment.features"])
}

func TestPredicateToFilterGeo(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{
		Geo: &domain.GeoRadiusCondition{Lat: 36.8, Lng: 10.18, RadiusKm: 12.742},
	})

	geo, ok := filter["location.coordinates"].(bson.M)
	require.True(t, ok)
	within, ok := geo["$geoWithin"].(bson.M)
	require.True(t, ok)
	sphere, ok := within["$centerSphere"].(bson.A)
	require.True(t, ok)
	require.Len(t, sphere, 2)

	// Центр — legacy-пара (lng, lat), радиус — в радианах.
	assert.Equal(t, bson.A{10.18, 36.8}, sphere[0])
	assert.InDelta(t, 12.742/domain.EarthRadiusKm, sphere[1].(float64), 1e-12)
}

func TestPredicateToFilterDeliveryBefore(t *testing.T) {
	cutoff := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
	filter := predicateToFilter(domain.Predicate{DeliveryBefore: &cutoff})

	assert.Equal(t, bson.M{"$lte": cutoff}, filter["vefa.deliveryBy"])
}

func TestPredicateToFilterText(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{
		Text: &domain.TextCondition{Query: "villa piscine"},
	})

	assert.Equal(t, bson.M{"$search": "villa piscine"}, filter["$text"])
}

func TestPredicateToFilterCombined(t *testing.T) {
	filter := predicateToFilter(domain.Predicate{
		ValidatedOnly: true,
		Ranges:        []domain.RangeCondition{{Field: domain.FieldPrice, Max: lo.ToPtr(500000.0)}},
		Substrings:    []domain.SubstringCondition{{Field: domain.FieldCity, Value: "sousse"}},
	})

	assert.Len(t, filter, 3)
	assert.Equal(t, true, filter["validated"])
}
