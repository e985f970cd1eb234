package dto

import "time"

// PageQuery 分页查询参数
type PageQuery struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=200"`
}

// PeriodQuery 时间区间查询参数，To 为包含的最后一天
type PeriodQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// PageResult 分页结果
type PageResult[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
}

// NewPageResult 空列表输出为 []
func NewPageResult[T any](list []T, total int64) *PageResult[T] {
	if list == nil {
		list = []T{}
	}
	return &PageResult[T]{List: list, Total: total}
}

// IDsRequest 批量 ID
type IDsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1,max=500"`
}
