package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequestClamps(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"нормальные значения", 2, 50, 2, 50},
		{"нулевая страница", 0, 20, 1, 20},
		{"отрицательная страница", -3, 20, 1, 20},
		{"нулевой размер откатывается к умолчанию", 1, 0, 1, DefaultPageSize},
		{"размер прижимается к максимуму", 1, 500, 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewPageRequest(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantSize, req.Size)
		})
	}
}

func TestPageRequestOffsetLimit(t *testing.T) {
	req := NewPageRequest(3, 20)
	assert.Equal(t, int64(40), req.Offset())
	assert.Equal(t, int64(20), req.Limit())
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(45, NewPageRequest(2, 20))

	assert.Equal(t, int64(45), info.Total)
	assert.Equal(t, int64(3), info.TotalPages)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 20, info.PageSize)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestNewPageInfoEmpty(t *testing.T) {
	info := NewPageInfo(0, NewPageRequest(1, 20))

	assert.Equal(t, int64(0), info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)
}

func TestNewPageInfoPastEnd(t *testing.T) {
	// Страница за пределами выдачи: метаданные честные, HasNext ложный.
	info := NewPageInfo(10, NewPageRequest(5, 20))

	assert.Equal(t, int64(1), info.TotalPages)
	assert.False(t, info.HasNext)
	assert.True(t, info.HasPrev)
}
