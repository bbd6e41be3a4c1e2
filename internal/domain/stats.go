package domain

import "sort"

// TopCitiesLimit — размер топа городов в сводной статистике.
const TopCitiesLimit = 10

// TypeCount — счётчик объявлений одного типа.
type TypeCount struct {
	Type  PropertyType `json:"type"`
	Count int64        `json:"count"`
}

// CityCount — счётчик объявлений одного города.
type CityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

// ListingStats — сводная статистика по валидированным объявлениям.
// На пустой коллекции все числовые поля нулевые, разбивки пустые.
type ListingStats struct {
	Total      int64       `json:"total"`
	AvgPrice   float64     `json:"avgPrice"`
	AvgSurface float64     `json:"avgSurface"`
	TotalViews int64       `json:"totalViews"`
	ByType     []TypeCount `json:"byType"`
	TopCities  []CityCount `json:"topCities"`
}

// StatsAccumulator — однопроходная свёртка статистики.
type StatsAccumulator struct {
	total      int64
	priceSum   float64
	surfaceSum float64
	viewsSum   int64
	byType     map[PropertyType]int64
	byCity     map[string]int64
}

func NewStatsAccumulator() *StatsAccumulator {
	return &StatsAccumulator{
		byType: make(map[PropertyType]int64),
		byCity: make(map[string]int64),
	}
}

// Add учитывает одно объявление.
func (a *StatsAccumulator) Add(l Listing) {
	a.total++
	a.priceSum += l.Price
	a.surfaceSum += l.Surface
	a.viewsSum += l.Views
	a.byType[l.PropertyType]++
	if city := NormalizeCity(l.Location.City); city != "" {
		a.byCity[city]++
	}
}

// Result собирает итог. Разбивка по городам — топ-10 по убыванию счётчика,
// при равенстве — по алфавиту, чтобы выдача была детерминированной.
func (a *StatsAccumulator) Result() ListingStats {
	stats := ListingStats{
		Total:      a.total,
		TotalViews: a.viewsSum,
		ByType:     []TypeCount{},
		TopCities:  []CityCount{},
	}
	if a.total > 0 {
		stats.AvgPrice = a.priceSum / float64(a.total)
		stats.AvgSurface = a.surfaceSum / float64(a.total)
	}

	for t, n := range a.byType {
		stats.ByType = append(stats.ByType, TypeCount{Type: t, Count: n})
	}
	sort.Slice(stats.ByType, func(i, j int) bool {
		if stats.ByType[i].Count != stats.ByType[j].Count {
			return stats.ByType[i].Count > stats.ByType[j].Count
		}
		return stats.ByType[i].Type < stats.ByType[j].Type
	})

	for c, n := range a.byCity {
		stats.TopCities = append(stats.TopCities, CityCount{City: c, Count: n})
	}
	sort.Slice(stats.TopCities, func(i, j int) bool {
		if stats.TopCities[i].Count != stats.TopCities[j].Count {
			return stats.TopCities[i].Count > stats.TopCities[j].Count
		}
		return stats.TopCities[i].City < stats.TopCities[j].City
	})
	if len(stats.TopCities) > TopCitiesLimit {
		stats.TopCities = stats.TopCities[:TopCitiesLimit]
	}

	return stats
}
