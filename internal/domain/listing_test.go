package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecalcPricePerArea(t *testing.T) {
	l := Listing{Price: 300000, Surface: 142}
	l.RecalcPricePerArea()

	assert.NotNil(t, l.PricePerArea)
	assert.Equal(t, int64(2113), *l.PricePerArea)
}

func TestRecalcPricePerAreaRounds(t *testing.T) {
	l := Listing{Price: 100, Surface: 3}
	l.RecalcPricePerArea()

	assert.Equal(t, int64(33), *l.PricePerArea)

	l.Price = 200
	l.RecalcPricePerArea()
	assert.Equal(t, int64(67), *l.PricePerArea)
}

func TestRecalcPricePerAreaZeroSurface(t *testing.T) {
	l := Listing{Price: 300000, Surface: 0}
	l.RecalcPricePerArea()

	assert.Nil(t, l.PricePerArea)
}

func TestParsePropertyType(t *testing.T) {
	assert.Equal(t, PropertyTypeVilla, ParsePropertyType("VILLA"))
	assert.Equal(t, PropertyTypeUnspecified, ParsePropertyType("villa"))
	assert.Equal(t, PropertyTypeUnspecified, ParsePropertyType("CASTLE"))
	assert.Equal(t, PropertyTypeUnspecified, ParsePropertyType(""))
}

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tunis", "Tunis"},
		{"TUNIS", "Tunis"},
		{"grand tunis", "Tunis"},
		{"gabes", "Gabès"},
		{"jerba", "Djerba"},
		{"le kef", "El Kef"},
		{"kelibia", "Kelibia"},
		{"  Sousse  ", "Sousse"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCity(tt.in))
		})
	}
}

func TestCitiesMatch(t *testing.T) {
	assert.True(t, CitiesMatch("tunis", "TUNIS"))
	assert.True(t, CitiesMatch("grand tunis", "Tunis"))
	assert.False(t, CitiesMatch("Tunis", "Sousse"))
	assert.False(t, CitiesMatch("", "Tunis"))
}
