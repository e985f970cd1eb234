package dto

import "time"

// CheckoutRequest 收银结账
type CheckoutRequest struct {
	CustomerID        *int64                `json:"customer_id"`
	PrescriptionID    *int64                `json:"prescription_id"`
	LoyaltyPointsUsed int64                 `json:"loyalty_points_used" binding:"min=0"`
	Lines             []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
	Payments          []PaymentRequest      `json:"payments" binding:"dive"`
}

// CheckoutLineRequest 销售明细；UnitPrice 为空取商品售价
type CheckoutLineRequest struct {
	ProductID       int64  `json:"product_id" binding:"required,min=1"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	UnitPrice       *int64 `json:"unit_price" binding:"omitempty,min=0"`
	DiscountPercent int    `json:"discount_percent" binding:"min=0,max=100"`
}

// PaymentRequest 收款
type PaymentRequest struct {
	Method    string `json:"method" binding:"required,oneof=cash card cheque insurance mobile"`
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Reference string `json:"reference" binding:"max=128"`
}

// CancelSaleRequest 作废销售
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// SaleListRequest 销售列表
type SaleListRequest struct {
	CashierID  int64  `form:"cashier_id"`
	CustomerID int64  `form:"customer_id"`
	Status     string `form:"status"`
	Channel    string `form:"channel"`
	Number     string `form:"number"`
	PeriodQuery
	PageQuery
}

// DailySummaryRequest 日报
type DailySummaryRequest struct {
	Date *time.Time `form:"date" time_format:"2006-01-02"`
}

// MonthlySummaryRequest 月报
type MonthlySummaryRequest struct {
	Month string `form:"month" binding:"omitempty,datetime=2006-01"`
}

// TopProductsRequest 畅销商品
type TopProductsRequest struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
	PeriodQuery
}

// SalesSummary 销售汇总
type SalesSummary struct {
	From          time.Time        `json:"from"`
	To            time.Time        `json:"to"`
	Count         int64            `json:"count"`
	TotalHT       int64            `json:"total_ht"`
	TotalVAT      int64            `json:"total_vat"`
	TotalTTC      int64            `json:"total_ttc"`
	DiscountTotal int64            `json:"discount_total"`
	CostAmount    int64            `json:"cost_amount"`
	GrossMargin   int64            `json:"gross_margin"`
	ByMethod      map[string]int64 `json:"by_method"`
	Days          []DayTotal       `json:"days,omitempty"`
}

// DayTotal 按日合计
type DayTotal struct {
	Date     string `json:"date"`
	Count    int64  `json:"count"`
	TotalTTC int64  `json:"total_ttc"`
}
