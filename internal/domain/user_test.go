package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddFavorite(t *testing.T) {
	u := User{}

	assert.True(t, u.AddFavorite("l1"))
	assert.True(t, u.AddFavorite("l2"))
	assert.Equal(t, []string{"l1", "l2"}, u.Favorites)

	// Повторное добавление — no-op.
	assert.False(t, u.AddFavorite("l1"))
	assert.Equal(t, []string{"l1", "l2"}, u.Favorites)
}

func TestRemoveFavorite(t *testing.T) {
	u := User{Favorites: []string{"l1", "l2", "l3"}}

	assert.True(t, u.RemoveFavorite("l2"))
	assert.Equal(t, []string{"l1", "l3"}, u.Favorites)

	assert.False(t, u.RemoveFavorite("l2"))
	assert.Equal(t, []string{"l1", "l3"}, u.Favorites)
}

func TestFavoritesKeepInsertionOrder(t *testing.T) {
	u := User{}
	u.AddFavorite("c")
	u.AddFavorite("a")
	u.AddFavorite("b")

	assert.Equal(t, []string{"c", "a", "b"}, u.Favorites)
}

func TestRecordSearch(t *testing.T) {
	u := User{}

	u.RecordSearch("appartement tunis")
	u.RecordSearch("villa sousse")
	assert.Equal(t, []string{"villa sousse", "appartement tunis"}, u.SearchHistory)

	// Повтор поднимается в начало без дубля.
	u.RecordSearch("appartement tunis")
	assert.Equal(t, []string{"appartement tunis", "villa sousse"}, u.SearchHistory)

	// Пустой запрос игнорируется.
	u.RecordSearch("")
	assert.Len(t, u.SearchHistory, 2)
}

func TestRecordSearchRingBuffer(t *testing.T) {
	u := User{}
	for i := 0; i < SearchHistoryLimit+5; i++ {
		u.RecordSearch(fmt.Sprintf("query-%d", i))
	}

	assert.Len(t, u.SearchHistory, SearchHistoryLimit)
	assert.Equal(t, fmt.Sprintf("query-%d", SearchHistoryLimit+4), u.SearchHistory[0])
	assert.Equal(t, "query-5", u.SearchHistory[SearchHistoryLimit-1])
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+21620123456", true},
		{"20123456", true},
		{"98765432", true},
		{"50123456", true},
		{"41234567", true},
		{"10123456", false},
		{"2012345", false},
		{"201234567", false},
		{"+21520123456", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPhone(tt.phone))
		})
	}
}
