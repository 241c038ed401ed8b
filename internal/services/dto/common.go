package dto

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout - формат дат без времени (yyyy-MM-dd)
const DateLayout = "2006-01-02"

// PageResponse - единый формат списков
type PageResponse[T any] struct {
	Content []T   `json:"content"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
	Pages   int   `json:"pages"`
}

func NewPage[T any](content []T, total int64, page, size int) *PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return &PageResponse[T]{
		Content: content,
		Total:   total,
		Page:    page,
		Size:    size,
		Pages:   pages,
	}
}

// CountResponse - ответ счетчиков
type CountResponse struct {
	Count int64 `json:"count"`
}

// FormatDate форматирует дату как yyyy-MM-dd, nil для пустой даты
func FormatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(DateLayout)
	return &s
}

// ParseDate разбирает yyyy-MM-dd. Пустая строка дает nil.
func ParseDate(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}
