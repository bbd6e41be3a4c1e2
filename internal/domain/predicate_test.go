package domain

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func validListing(id string) Listing {
	return Listing{
		ID:           id,
		Title:        "Appartement S+2 centre ville",
		Description:  "Bel appartement avec terrasse",
		Price:        300000,
		Surface:      120,
		PropertyType: PropertyTypeApartment,
		Location: Location{
			City:    "Tunis",
			Country: DefaultCountry,
		},
		Apartment: &ApartmentDetails{
			Rooms:    3,
			Features: []string{"terrasse", "parking"},
		},
		Validated: true,
		CreatedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestPredicateValidatedOnly(t *testing.T) {
	p := Predicate{ValidatedOnly: true}

	l := validListing("a1")
	assert.True(t, p.Matches(l))

	l.Validated = false
	assert.False(t, p.Matches(l))
}

func TestPredicateExcludeID(t *testing.T) {
	p := Predicate{ExcludeID: "a1"}

	assert.False(t, p.Matches(validListing("a1")))
	assert.True(t, p.Matches(validListing("a2")))
}

func TestPredicateRanges(t *testing.T) {
	tests := []struct {
		name  string
		min   *float64
		max   *float64
		price float64
		want  bool
	}{
		{"внутри диапазона", lo.ToPtr(200000.0), lo.ToPtr(400000.0), 300000, true},
		{"граница включительно", lo.ToPtr(300000.0), lo.ToPtr(300000.0), 300000, true},
		{"ниже минимума", lo.ToPtr(350000.0), nil, 300000, false},
		{"выше максимума", nil, lo.ToPtr(250000.0), 300000, false},
		{"без границ", nil, nil, 300000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Predicate{Ranges: []RangeCondition{{Field: FieldPrice, Min: tt.min, Max: tt.max}}}
			l := validListing("a1")
			l.Price = tt.price
			assert.Equal(t, tt.want, p.Matches(l))
		})
	}
}

func TestPredicateRangeOnMissingField(t *testing.T) {
	// Диапазон по полю, которого у объявления нет, не проходит.
	p := Predicate{Ranges: []RangeCondition{{Field: FieldRooms, Min: lo.ToPtr(2.0)}}}
	l := validListing("a1")
	l.Apartment = nil
	assert.False(t, p.Matches(l))
}

func TestPredicateEqualsFold(t *testing.T) {
	p := Predicate{Equals: []EqualsCondition{{Field: FieldCity, Value: "TUNIS", Fold: true}}}
	assert.True(t, p.Matches(validListing("a1")))

	exact := Predicate{Equals: []EqualsCondition{{Field: FieldCity, Value: "TUNIS"}}}
	assert.False(t, exact.Matches(validListing("a1")))
}

func TestPredicateEqualsPropertyType(t *testing.T) {
	p := Predicate{Equals: []EqualsCondition{{Field: FieldType, Value: PropertyTypeApartment}}}
	assert.True(t, p.Matches(validListing("a1")))

	l := validListing("a2")
	l.PropertyType = PropertyTypeVilla
	assert.False(t, p.Matches(l))
}

func TestPredicateSubstring(t *testing.T) {
	p := Predicate{Substrings: []SubstringCondition{{Field: FieldCity, Value: "tun"}}}
	assert.True(t, p.Matches(validListing("a1")))

	l := validListing("a2")
	l.Location.City = "Sousse"
	assert.False(t, p.Matches(l))
}

func TestPredicateContainsAll(t *testing.T) {
	l := validListing("a1")

	one := Predicate{ContainsAll: []ContainsAllCondition{{Field: FieldFeatures, Values: []string{"terrasse"}}}}
	both := Predicate{ContainsAll: []ContainsAllCondition{{Field: FieldFeatures, Values: []string{"Terrasse", "PARKING"}}}}
	extra := Predicate{ContainsAll: []ContainsAllCondition{{Field: FieldFeatures, Values: []string{"terrasse", "piscine"}}}}

	assert.True(t, one.Matches(l))
	assert.True(t, both.Matches(l), "сравнение характеристик без учёта регистра")
	assert.False(t, extra.Matches(l), "каждая дополнительная характеристика только сужает выдачу")
}

func TestPredicateGeoRadius(t *testing.T) {
	// Тунис — Ла-Марса: порядка 15 км.
	tunis := GeoPoint{Lng: 10.1815, Lat: 36.8065}
	laMarsa := GeoPoint{Lng: 10.3250, Lat: 36.8781}

	l := validListing("a1")
	l.Location.Coordinates = &laMarsa

	in := Predicate{Geo: &GeoRadiusCondition{Lat: tunis.Lat, Lng: tunis.Lng, RadiusKm: 20}}
	out := Predicate{Geo: &GeoRadiusCondition{Lat: tunis.Lat, Lng: tunis.Lng, RadiusKm: 5}}

	assert.True(t, in.Matches(l))
	assert.False(t, out.Matches(l))
}

func TestPredicateGeoWithoutCoordinates(t *testing.T) {
	p := Predicate{Geo: &GeoRadiusCondition{Lat: 36.8, Lng: 10.18, RadiusKm: 1000}}
	l := validListing("a1")
	l.Location.Coordinates = nil
	assert.False(t, p.Matches(l), "объявление без координат не проходит геофильтр")
}

func TestPredicateDeliveryBefore(t *testing.T) {
	cutoff := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	p := Predicate{DeliveryBefore: &cutoff}

	l := validListing("a1")
	l.Vefa = &VefaDetails{IsVefa: true, DeliveryDate: "Juin 2026"}
	assert.True(t, p.Matches(l), "сдача в июне проходит срез до июля включительно")

	l.Vefa.DeliveryDate = "Septembre 2026"
	assert.False(t, p.Matches(l))

	l.Vefa = nil
	assert.False(t, p.Matches(l), "объявление без VEFA-блока не проходит срез по сдаче")
}

func TestTextScore(t *testing.T) {
	l := validListing("a1")

	assert.Equal(t, 2, TextScore(l, "appartement terrasse"))
	assert.Equal(t, 1, TextScore(l, "APPARTEMENT piscine"))
	assert.Equal(t, 0, TextScore(l, "villa jardin"))
}

func TestPredicateText(t *testing.T) {
	p := Predicate{Text: &TextCondition{Query: "terrasse"}}
	assert.True(t, p.Matches(validListing("a1")))

	miss := Predicate{Text: &TextCondition{Query: "piscine"}}
	assert.False(t, miss.Matches(validListing("a1")))
}

func TestHaversineKm(t *testing.T) {
	// Расстояние точки до самой себя нулевое.
	assert.InDelta(t, 0, HaversineKm(36.8, 10.18, 36.8, 10.18), 1e-9)

	// Тунис — Сфакс: примерно 230 км по прямой.
	d := HaversineKm(36.8065, 10.1815, 34.7406, 10.7603)
	assert.InDelta(t, 236, d, 10)
}
