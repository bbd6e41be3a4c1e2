package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsAccumulatorEmpty(t *testing.T) {
	stats := NewStatsAccumulator().Result()

	assert.Equal(t, int64(0), stats.Total)
	assert.Zero(t, stats.AvgPrice)
	assert.Zero(t, stats.AvgSurface)
	assert.Equal(t, int64(0), stats.TotalViews)
	assert.NotNil(t, stats.ByType)
	assert.NotNil(t, stats.TopCities)
	assert.Empty(t, stats.ByType)
	assert.Empty(t, stats.TopCities)
}

func TestStatsAccumulatorAverages(t *testing.T) {
	acc := NewStatsAccumulator()

	a := validListing("a1")
	a.Price, a.Surface, a.Views = 200000, 100, 10
	b := validListing("a2")
	b.Price, b.Surface, b.Views = 400000, 200, 30

	acc.Add(a)
	acc.Add(b)
	stats := acc.Result()

	assert.Equal(t, int64(2), stats.Total)
	assert.InDelta(t, 300000, stats.AvgPrice, 1e-9)
	assert.InDelta(t, 150, stats.AvgSurface, 1e-9)
	assert.Equal(t, int64(40), stats.TotalViews)
}

func TestStatsAccumulatorByType(t *testing.T) {
	acc := NewStatsAccumulator()
	for i := 0; i < 3; i++ {
		l := validListing(fmt.Sprintf("apt-%d", i))
		acc.Add(l)
	}
	v := validListing("villa-1")
	v.PropertyType = PropertyTypeVilla
	acc.Add(v)

	stats := acc.Result()
	assert.Equal(t, []TypeCount{
		{Type: PropertyTypeApartment, Count: 3},
		{Type: PropertyTypeVilla, Count: 1},
	}, stats.ByType)
}

func TestStatsAccumulatorTopCities(t *testing.T) {
	acc := NewStatsAccumulator()

	// 12 городов, у i-го города i объявлений: в топ попадают 10 крупнейших.
	cities := []string{
		"Tunis", "Sfax", "Sousse", "Bizerte", "Monastir", "Nabeul",
		"Hammamet", "Mahdia", "Gafsa", "Tozeur", "Siliana", "Zaghouan",
	}
	for i, city := range cities {
		for j := 0; j <= i; j++ {
			l := validListing(fmt.Sprintf("%s-%d", city, j))
			l.Location.City = city
			acc.Add(l)
		}
	}

	stats := acc.Result()
	assert.Len(t, stats.TopCities, TopCitiesLimit)
	assert.Equal(t, CityCount{City: "Zaghouan", Count: 12}, stats.TopCities[0])
	assert.NotContains(t, stats.TopCities, CityCount{City: "Tunis", Count: 1})
}

func TestStatsAccumulatorNormalizesCities(t *testing.T) {
	acc := NewStatsAccumulator()

	variants := []string{"Tunis", "tunis", "TUNIS", "grand tunis"}
	for i, city := range variants {
		l := validListing(fmt.Sprintf("t-%d", i))
		l.Location.City = city
		acc.Add(l)
	}

	stats := acc.Result()
	assert.Equal(t, []CityCount{{City: "Tunis", Count: 4}}, stats.TopCities)
}

func TestStatsAccumulatorTieBreakAlphabetical(t *testing.T) {
	acc := NewStatsAccumulator()
	for _, city := range []string{"Sousse", "Bizerte"} {
		l := validListing(city)
		l.Location.City = city
		acc.Add(l)
	}

	stats := acc.Result()
	assert.Equal(t, "Bizerte", stats.TopCities[0].City)
	assert.Equal(t, "Sousse", stats.TopCities[1].City)
}
