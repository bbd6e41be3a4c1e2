package domain

import (
	"strings"
	"time"
)

// Имена полей, по которым строятся условия фильтрации.
// Совпадают с путями в документе объявления.
const (
	FieldPrice        = "price"
	FieldSurface      = "surface"
	FieldPricePerArea = "pricePerArea"
	FieldViews        = "views"
	FieldType         = "type"
	FieldCity         = "location.city"
	FieldRegion       = "location.region"
	FieldPromoterID   = "promoterId"
	FieldRooms        = "apartment.rooms"
	FieldFeatures     = "apartment.features"
	FieldIsVefa       = "vefa.isVefa"
	FieldCreatedAt    = "createdAt"
)

// Predicate — структурное представление поискового фильтра:
// набор типизированных условий, соединённых логическим AND.
// Построение предиката не имеет побочных эффектов; вычислить его можно
// как в документном хранилище, так и в памяти через Matches.
type Predicate struct {
	// ValidatedOnly — неявное условие validated=true для всех
	// публичных выборок.
	ValidatedOnly bool
	Ranges        []RangeCondition
	Equals        []EqualsCondition
	Substrings    []SubstringCondition
	ContainsAll   []ContainsAllCondition
	Geo           *GeoRadiusCondition
	Text          *TextCondition
	// DeliveryBefore — срез по дате сдачи VEFA-объекта.
	DeliveryBefore *time.Time
	// ExcludeID — исключить конкретное объявление (поиск похожих).
	ExcludeID string
}

// RangeCondition — диапазон по числовому полю, границы включительные.
// Отсутствующая граница означает отсутствие ограничения.
type RangeCondition struct {
	Field string
	Min   *float64
	Max   *float64
}

// EqualsCondition — точное совпадение значения поля.
// Fold включает сравнение без учёта регистра (для строк).
type EqualsCondition struct {
	Field string
	Value any
	Fold  bool
}

// SubstringCondition — вхождение подстроки без учёта регистра.
type SubstringCondition struct {
	Field string
	Value string
}

// ContainsAllCondition — поле-множество содержит все перечисленные значения.
type ContainsAllCondition struct {
	Field  string
	Values []string
}

// GeoRadiusCondition — попадание координат объявления в круг радиусом
// RadiusKm вокруг центра. Объявления без координат не проходят.
type GeoRadiusCondition struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// TextCondition — полнотекстовый запрос по заголовку и описанию.
type TextCondition struct {
	Query string
}

// Matches вычисляет предикат над объявлением в памяти. Это эталонная
// семантика фильтра; трансляция в запрос хранилища обязана ей соответствовать.
func (p Predicate) Matches(l Listing) bool {
	if p.ValidatedOnly && !l.Validated {
		return false
	}
	if p.ExcludeID != "" && l.ID == p.ExcludeID {
		return false
	}
	for _, c := range p.Ranges {
		v, ok := numericField(l, c.Field)
		if !ok {
			return false
		}
		if c.Min != nil && v < *c.Min {
			return false
		}
		if c.Max != nil && v > *c.Max {
			return false
		}
	}
	for _, c := range p.Equals {
		if !equalsField(l, c) {
			return false
		}
	}
	for _, c := range p.Substrings {
		s, ok := stringField(l, c.Field)
		if !ok || !strings.Contains(strings.ToLower(s), strings.ToLower(c.Value)) {
			return false
		}
	}
	for _, c := range p.ContainsAll {
		set, ok := setField(l, c.Field)
		if !ok {
			return false
		}
		for _, want := range c.Values {
			if !containsFold(set, want) {
				return false
			}
		}
	}
	if p.Geo != nil {
		coords := l.Location.Coordinates
		if coords == nil {
			return false
		}
		if HaversineKm(p.Geo.Lat, p.Geo.Lng, coords.Lat, coords.Lng) > p.Geo.RadiusKm {
			return false
		}
	}
	if p.DeliveryBefore != nil {
		if l.Vefa == nil {
			return false
		}
		by := l.Vefa.DeliveryBy
		if by == nil {
			if parsed, err := ParseDeliveryDate(l.Vefa.DeliveryDate); err == nil {
				by = &parsed
			}
		}
		if by == nil || by.After(*p.DeliveryBefore) {
			return false
		}
	}
	if p.Text != nil && TextScore(l, p.Text.Query) == 0 {
		return false
	}
	return true
}

// TextScore — число терминов запроса, встречающихся в заголовке или
// описании. Приближение релевантности хранилища для вычисления в памяти.
func TextScore(l Listing, query string) int {
	haystack := strings.ToLower(l.Title + " " + l.Description)
	score := 0
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(haystack, term) {
			score++
		}
	}
	return score
}

func numericField(l Listing, field string) (float64, bool) {
	switch field {
	case FieldPrice:
		return l.Price, true
	case FieldSurface:
		return l.Surface, true
	case FieldViews:
		return float64(l.Views), true
	case FieldPricePerArea:
		if l.PricePerArea == nil {
			return 0, false
		}
		return float64(*l.PricePerArea), true
	case FieldRooms:
		if l.Apartment == nil {
			return 0, false
		}
		return float64(l.Apartment.Rooms), true
	}
	return 0, false
}

func stringField(l Listing, field string) (string, bool) {
	switch field {
	case FieldCity:
		return l.Location.City, true
	case FieldRegion:
		return l.Location.Region, true
	case FieldType:
		return l.PropertyType.String(), true
	case FieldPromoterID:
		return l.PromoterID, true
	}
	return "", false
}

func setField(l Listing, field string) ([]string, bool) {
	if field != FieldFeatures {
		return nil, false
	}
	if l.Apartment == nil {
		return nil, false
	}
	return l.Apartment.Features, true
}

func equalsField(l Listing, c EqualsCondition) bool {
	if c.Field == FieldIsVefa {
		want, ok := c.Value.(bool)
		if !ok {
			return false
		}
		return (l.Vefa != nil && l.Vefa.IsVefa) == want
	}
	s, ok := stringField(l, c.Field)
	if !ok {
		return false
	}
	want, ok := c.Value.(string)
	if !ok {
		if t, isType := c.Value.(PropertyType); isType {
			want = t.String()
		} else {
			return false
		}
	}
	if c.Fold {
		return strings.EqualFold(s, want)
	}
	return s == want
}

func containsFold(set []string, want string) bool {
	for _, s := range set {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
