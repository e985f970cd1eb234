package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Pagination 分页参数
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// paginate 先统计总数再分页查询，preloads 只作用于列表查询
func paginate[T any](query *gorm.DB, p Pagination, order string, dest *[]T, preloads ...string) (int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	p = p.normalize()
	for _, name := range preloads {
		query = query.Preload(name)
	}
	err := query.
		Order(order).
		Offset((p.Page - 1) * p.PageSize).
		Limit(p.PageSize).
		Find(dest).Error
	return total, err
}

// likePattern 大小写不敏感的模糊匹配参数
func likePattern(keyword string) string {
	return "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
}

// DateRange 时间区间 [From, To)
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) apply(query *gorm.DB, column string) *gorm.DB {
	if r.From != nil {
		query = query.Where(column+" >= ?", *r.From)
	}
	if r.To != nil {
		query = query.Where(column+" < ?", *r.To)
	}
	return query
}

func likeExact(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
