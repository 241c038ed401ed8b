package repositories

import "gorm.io/gorm"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination - номер страницы с 1 и размер страницы
type Pagination struct {
	Page int
	Size int
}

// NewPagination нормализует параметры: страница не меньше 1, размер в [1, MaxPageSize]
func NewPagination(page, size int) Pagination {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Pagination{Page: page, Size: size}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Size
}

// scope для db.Scopes(...)
func (p Pagination) scope(db *gorm.DB) *gorm.DB {
	return db.Limit(p.Size).Offset(p.Offset())
}
