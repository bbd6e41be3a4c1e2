package domain

import (
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// SearchHistoryLimit — глубина кольцевого буфера истории поиска.
const SearchHistoryLimit = 10

// phoneRe — тунисский формат: опциональный +216 и восемь цифр,
// первая из диапазона мобильных/городских префиксов.
var phoneRe = regexp.MustCompile(`^(\+216)?[2459]\d{7}$`)

// ValidPhone проверяет телефон на соответствие региональному формату.
func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// UserRole — роль аккаунта.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) String() string {
	return string(r)
}

// User — аккаунт пользователя. Живёт в реляционном хранилище,
// полностью отдельном от хранилища объявлений.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	// PasswordHash — только односторонний хеш, наружу не отдаётся.
	PasswordHash string      `json:"-"`
	Role         UserRole    `json:"role"`
	Verified     bool        `json:"verified"`
	Preferences  Preferences `json:"preferences"`
	Coordinates  *GeoPoint   `json:"coordinates,omitempty"`
	// Favorites — упорядоченный список идентификаторов объявлений из
	// документного хранилища. Порядок вставки канонический, каждый id
	// встречается не более одного раза. Ссылочная целостность между
	// хранилищами не гарантируется.
	Favorites []string `json:"favorites"`
	// SearchHistory — последние запросы, новые в начале, без дублей.
	SearchHistory []string   `json:"searchHistory"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	// Active — маркер мягкого удаления.
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preferences — структурированные предпочтения пользователя.
type Preferences struct {
	PropertyTypes []PropertyType `json:"propertyTypes,omitempty"`
	Regions       []string       `json:"regions,omitempty"`
	PriceMin      *float64       `json:"priceMin,omitempty"`
	PriceMax      *float64       `json:"priceMax,omitempty"`
	SurfaceMin    *float64       `json:"surfaceMin,omitempty"`
	SurfaceMax    *float64       `json:"surfaceMax,omitempty"`
	Features      []string       `json:"features,omitempty"`
	NotifyEmail   bool           `json:"notifyEmail"`
	NotifySMS     bool           `json:"notifySms"`
}

// AddFavorite добавляет id в конец списка избранного.
// Возвращает false, если id уже присутствует (список не меняется).
func (u *User) AddFavorite(listingID string) bool {
	if slices.Contains(u.Favorites, listingID) {
		return false
	}
	u.Favorites = append(u.Favorites, listingID)
	return true
}

// RemoveFavorite убирает id из избранного.
// Возвращает false, если id отсутствовал.
func (u *User) RemoveFavorite(listingID string) bool {
	idx := slices.Index(u.Favorites, listingID)
	if idx < 0 {
		return false
	}
	u.Favorites = slices.Delete(u.Favorites, idx, idx+1)
	return true
}

// RecordSearch кладёт запрос в начало истории, убирая дубль
// и обрезая буфер до SearchHistoryLimit.
func (u *User) RecordSearch(query string) {
	if query == "" {
		return
	}
	if idx := slices.Index(u.SearchHistory, query); idx >= 0 {
		u.SearchHistory = slices.Delete(u.SearchHistory, idx, idx+1)
	}
	u.SearchHistory = append([]string{query}, u.SearchHistory...)
	if len(u.SearchHistory) > SearchHistoryLimit {
		u.SearchHistory = u.SearchHistory[:SearchHistoryLimit]
	}
}

// UserUpdate — частичное обновление аккаунта (pointer-поля).
type UserUpdate struct {
	Name         *string
	Email        *string
	Phone        *string
	PasswordHash *string
	Preferences  *Preferences
	Coordinates  *GeoPoint
	Verified     *bool
	LastLogin    *time.Time
	Active       *bool
}
