package domain

import "sort"

// OrderDirection — направление сортировки.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// SortKey — ключ сортировки публичной выдачи.
type SortKey string

const (
	SortNewest      SortKey = "newest"
	SortPriceAsc    SortKey = "price_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortSurfaceAsc  SortKey = "surface_asc"
	SortSurfaceDesc SortKey = "surface_desc"
	SortViews       SortKey = "views"
)

// ParseSortKey нормализует ключ сортировки.
// Неизвестное значение откатывается к newest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortSurfaceAsc, SortSurfaceDesc, SortViews, SortNewest:
		return SortKey(s)
	}
	return SortNewest
}

// Ordering — одно поле сортировки с направлением. Вторичного ключа нет:
// равные значения отдаются в порядке хранилища.
type Ordering struct {
	Field     string
	Direction OrderDirection
}

// Ordering отображает ключ сортировки в поле и направление.
func (k SortKey) Ordering() Ordering {
	switch k {
	case SortPriceAsc:
		return Ordering{Field: FieldPrice, Direction: OrderAsc}
	case SortPriceDesc:
		return Ordering{Field: FieldPrice, Direction: OrderDesc}
	case SortSurfaceAsc:
		return Ordering{Field: FieldSurface, Direction: OrderAsc}
	case SortSurfaceDesc:
		return Ordering{Field: FieldSurface, Direction: OrderDesc}
	case SortViews:
		return Ordering{Field: FieldViews, Direction: OrderDesc}
	default:
		return Ordering{Field: FieldCreatedAt, Direction: OrderDesc}
	}
}

// SortListings сортирует срез объявлений in-memory по заданному ключу.
// Эталонная семантика сортировки хранилища; сортировка стабильная,
// чтобы равные значения сохраняли исходный порядок.
func SortListings(ls []Listing, ord Ordering) {
	less := func(a, b Listing) bool {
		switch ord.Field {
		case FieldCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			av, _ := numericField(a, ord.Field)
			bv, _ := numericField(b, ord.Field)
			return av < bv
		}
	}
	sort.SliceStable(ls, func(i, j int) bool {
		if ord.Direction == OrderDesc {
			return less(ls[j], ls[i])
		}
		return less(ls[i], ls[j])
	})
}

// SortByTextScore ранжирует выдачу по релевантности текстового запроса.
func SortByTextScore(ls []Listing, query string) {
	sort.SliceStable(ls, func(i, j int) bool {
		return TextScore(ls[i], query) > TextScore(ls[j], query)
	})
}
