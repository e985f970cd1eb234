package dto

import "time"

// Dashboard 药房看板
type Dashboard struct {
	Date               time.Time `json:"date"`
	TodayRevenue       int64     `json:"today_revenue"`
	TodaySalesCount    int64     `json:"today_sales_count"`
	MonthRevenue       int64     `json:"month_revenue"`
	LowStockCount      int64     `json:"low_stock_count"`
	ExpiringSoonCount  int64     `json:"expiring_soon_count"`
	PendingOrders      int64     `json:"pending_orders"`
	UnpaidInvoices     int64     `json:"unpaid_invoices"`
	UnpaidAmount       int64     `json:"unpaid_amount"`
	TodayAppointments  int64     `json:"today_appointments"`
	CustomerCount      int64     `json:"customer_count"`
	UnreadNotification int64     `json:"unread_notifications"`
}

// ActivityListRequest 审计日志
type ActivityListRequest struct {
	UserID   int64  `form:"user_id"`
	Entity   string `form:"entity"`
	RecordID int64  `form:"record_id"`
	PeriodQuery
	PageQuery
}
