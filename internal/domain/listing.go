package domain

import (
	"math"
	"time"
)

// Listing — доменная сущность объявления о недвижимости.
// Идентификатор присваивается на этапе инжеста и хранится как есть,
// внутри ядра он никогда не генерируется и не разбирается.
type Listing struct {
	ID           string            `bson:"_id" json:"id"`
	URL          string            `bson:"url" json:"url"`
	Title        string            `bson:"title" json:"title"`
	Description  string            `bson:"description" json:"description"`
	Price        float64           `bson:"price" json:"price"`
	Surface      float64           `bson:"surface" json:"surface"`
	// PricePerArea — производное поле: round(price/surface) при surface > 0,
	// иначе отсутствует. Пересчитывается при любом изменении цены или площади.
	PricePerArea *int64            `bson:"pricePerArea,omitempty" json:"pricePerArea,omitempty"`
	PropertyType PropertyType      `bson:"type" json:"type"`
	Location     Location          `bson:"location" json:"location"`
	Vefa         *VefaDetails      `bson:"vefa,omitempty" json:"vefa,omitempty"`
	Apartment    *ApartmentDetails `bson:"apartment,omitempty" json:"apartment,omitempty"`
	Views        int64             `bson:"views" json:"views"`
	// Validated — флаг модерации: невалидированные объявления не видны
	// ни в одной публичной выборке.
	Validated  bool      `bson:"validated" json:"validated"`
	Sold       bool      `bson:"sold" json:"sold"`
	PromoterID string    `bson:"promoterId" json:"promoterId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RecalcPricePerArea пересчитывает производную цену за квадратный метр.
// Инвариант: pricePerArea == round(price/surface) при surface > 0.
func (l *Listing) RecalcPricePerArea() {
	if l.Surface > 0 {
		v := int64(math.Round(l.Price / l.Surface))
		l.PricePerArea = &v
		return
	}
	l.PricePerArea = nil
}

// PropertyType — тип недвижимости.
type PropertyType string

const (
	PropertyTypeUnspecified PropertyType = ""
	PropertyTypeApartment   PropertyType = "APARTMENT"
	PropertyTypeHouse       PropertyType = "HOUSE"
	PropertyTypeVilla       PropertyType = "VILLA"
	PropertyTypeLand        PropertyType = "LAND"
	PropertyTypeCommercial  PropertyType = "COMMERCIAL"
	PropertyTypeOffice      PropertyType = "OFFICE"
)

func (t PropertyType) String() string {
	return string(t)
}

// ParsePropertyType разбирает тип из строки запроса.
// Неизвестное значение трактуется как отсутствие фильтра.
func ParsePropertyType(s string) PropertyType {
	switch PropertyType(s) {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeVilla,
		PropertyTypeLand, PropertyTypeCommercial, PropertyTypeOffice:
		return PropertyType(s)
	}
	return PropertyTypeUnspecified
}

// DefaultCountry — страна по умолчанию для адресов объявлений.
const DefaultCountry = "Tunisie"

// Location — адрес объявления. Обязателен только город.
type Location struct {
	City     string    `bson:"city" json:"city"`
	District string    `bson:"district,omitempty" json:"district,omitempty"`
	Region   string    `bson:"region,omitempty" json:"region,omitempty"`
	Country  string    `bson:"country" json:"country"`
	// Coordinates — опциональные геокоординаты. Без них объявление
	// исключается из любых геозапросов.
	Coordinates *GeoPoint `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// GeoPoint — пара координат. Lng идёт первым полем: mongo трактует
// вложенный документ как legacy-пару (x, y) при geo-запросах.
type GeoPoint struct {
	Lng float64 `bson:"lng" json:"lng"`
	Lat float64 `bson:"lat" json:"lat"`
}

// ConstructionProgress — стадия строительства для VEFA-объектов.
type ConstructionProgress string

const (
	ProgressNotStarted ConstructionProgress = "NOT_STARTED"
	ProgressInProgress ConstructionProgress = "IN_PROGRESS"
	ProgressCompleted  ConstructionProgress = "COMPLETED"
)

// VefaDetails — детали продажи на этапе строительства (VEFA).
type VefaDetails struct {
	IsVefa bool `bson:"isVefa" json:"isVefa"`
	// DeliveryDate — свободный текст вида "Juin 2026" (месяц и год,
	// французская локаль), как он приходит с площадок-источников.
	DeliveryDate string               `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	// DeliveryBy — разобранная дата сдачи, заполняется на инжесте
	// из DeliveryDate. Используется только для фильтрации.
	DeliveryBy      *time.Time           `bson:"deliveryBy,omitempty" json:"-"`
	Progress        ConstructionProgress `bson:"progress,omitempty" json:"progress,omitempty"`
	PaymentSchedule []PaymentMilestone   `bson:"paymentSchedule,omitempty" json:"paymentSchedule,omitempty"`
}

// PaymentMilestone — этап графика платежей VEFA-сделки.
type PaymentMilestone struct {
	Percentage  float64 `bson:"percentage" json:"percentage"`
	Description string  `bson:"description" json:"description"`
	DueDate     string  `bson:"dueDate" json:"dueDate"`
}

// KnownFeatures — фиксированный словарь характеристик квартиры.
var KnownFeatures = []string{
	"terrasse", "balcon", "jardin", "piscine", "ascenseur",
	"parking", "garage", "climatisation", "chauffage central",
	"cuisine equipee", "vue mer", "securite", "concierge",
}

// ApartmentDetails — характеристики квартиры.
type ApartmentDetails struct {
	Rooms     int  `bson:"rooms" json:"rooms"`
	Bedrooms  int  `bson:"bedrooms" json:"bedrooms"`
	Bathrooms int  `bson:"bathrooms" json:"bathrooms"`
	Floor     int  `bson:"floor" json:"floor"`
	Floors    int  `bson:"floors" json:"floors"`
	Furnished bool `bson:"furnished" json:"furnished"`
	Elevator  bool `bson:"elevator" json:"elevator"`
	Parking   bool `bson:"parking" json:"parking"`
	// Features — подмножество KnownFeatures.
	Features []string `bson:"features,omitempty" json:"features,omitempty"`
}

// ListingUpdate — частичное обновление объявления (pointer-поля).
type ListingUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Surface     *float64
	Validated   *bool
	Sold        *bool
}
