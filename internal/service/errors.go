package service

import (
	"errors"
	"time"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/repository"
)

// ==================== 错误分类 ====================

// 具体错误通过 %w 归入以下分类，控制器据此映射 HTTP 状态码
var (
	ErrNotFound     = errors.New("不存在")
	ErrConflict     = errors.New("已存在")
	ErrForbidden    = errors.New("无权操作")
	ErrInvalidState = errors.New("当前状态不允许此操作")
	ErrInvalidInput = errors.New("参数错误")
)

// ==================== 公共辅助 ====================

func toPagination(q dto.PageQuery) repository.Pagination {
	return repository.Pagination{Page: q.Page, PageSize: q.PageSize}
}

// toDateRange To 为包含的最后一天，转换为次日 0 点的开区间
func toDateRange(q dto.PeriodQuery) repository.DateRange {
	r := repository.DateRange{From: q.From}
	if q.To != nil {
		end := dayStart(*q.To).AddDate(0, 0, 1)
		r.To = &end
	}
	return r
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func ptr[T any](v T) *T {
	return &v
}
