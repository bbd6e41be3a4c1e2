package domain

import "time"

// Promoter — застройщик или агентство, владеющее объявлениями.
type Promoter struct {
	ID       string         `bson:"_id" json:"id"`
	Name     string         `bson:"name" json:"name"`
	Contact  PromoterContact `bson:"contact" json:"contact"`
	Verified bool           `bson:"verified" json:"verified"`
	// Rating — оценка от 0 до 5.
	Rating float64 `bson:"rating" json:"rating"`
	// Statistics — агрегаты по объявлениям. Пересчитываются по запросу
	// сканированием коллекции объявлений, транзакционно не поддерживаются.
	Statistics PromoterStatistics `bson:"statistics" json:"statistics"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// PromoterContact — контактные данные. Обязателен только телефон.
type PromoterContact struct {
	Phone     string   `bson:"phone" json:"phone"`
	Email     string   `bson:"email,omitempty" json:"email,omitempty"`
	Website   string   `bson:"website,omitempty" json:"website,omitempty"`
	Addresses []string `bson:"addresses,omitempty" json:"addresses,omitempty"`
}

// PromoterStatistics — счётчики объявлений застройщика.
type PromoterStatistics struct {
	TotalProperties  int64 `bson:"totalProperties" json:"totalProperties"`
	SoldProperties   int64 `bson:"soldProperties" json:"soldProperties"`
	ActiveProperties int64 `bson:"activeProperties" json:"activeProperties"`
}
