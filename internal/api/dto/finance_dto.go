package dto

import "time"

// InvoiceFromSaleRequest 由销售开票
type InvoiceFromSaleRequest struct {
	SaleID  int64      `json:"sale_id" binding:"required,min=1"`
	BillTo  string     `json:"bill_to" binding:"max=255"`
	DueDate *time.Time `json:"due_date"`
	Issue   bool       `json:"issue"`
}

// InvoiceRequest 手工发票
type InvoiceRequest struct {
	CustomerID *int64               `json:"customer_id"`
	BillTo     string               `json:"bill_to" binding:"required,max=255"`
	DueDate    *time.Time           `json:"due_date"`
	Notes      string               `json:"notes" binding:"max=500"`
	Lines      []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// InvoiceLineRequest 发票明细，UnitPrice 为含税单价
type InvoiceLineRequest struct {
	ProductID *int64 `json:"product_id"`
	Label     string `json:"label" binding:"required,max=255"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	UnitPrice int64  `json:"unit_price" binding:"min=0"`
	VATRate   int    `json:"vat_rate" binding:"min=0,max=10000"`
}

// InvoicePaymentRequest 发票收款
type InvoicePaymentRequest struct {
	Method    string     `json:"method" binding:"required,oneof=cash card cheque insurance mobile"`
	Amount    int64      `json:"amount" binding:"required,min=1"`
	PaidAt    *time.Time `json:"paid_at"`
	Reference string     `json:"reference" binding:"max=128"`
}

// InvoiceListRequest 发票列表
type InvoiceListRequest struct {
	CustomerID int64  `form:"customer_id"`
	Status     string `form:"status"`
	Overdue    bool   `form:"overdue"`
	PeriodQuery
	PageQuery
}

// ExpenseRequest 创建/修改费用
type ExpenseRequest struct {
	Category   string     `json:"category" binding:"required,oneof=rent utilities salaries purchases other"`
	Label      string     `json:"label" binding:"required,max=255"`
	Amount     int64      `json:"amount" binding:"required,min=1"`
	SpentOn    *time.Time `json:"spent_on"`
	SupplierID *int64     `json:"supplier_id"`
	ReceiptURL string     `json:"receipt_url" binding:"omitempty,url"`
}

// ExpenseListRequest 费用列表
type ExpenseListRequest struct {
	Category string `form:"category"`
	PeriodQuery
	PageQuery
}

// FinancialSummary 区间财务汇总
type FinancialSummary struct {
	From              time.Time        `json:"from"`
	To                time.Time        `json:"to"`
	Revenue           int64            `json:"revenue"`
	RevenueHT         int64            `json:"revenue_ht"`
	VATCollected      int64            `json:"vat_collected"`
	CostOfGoods       int64            `json:"cost_of_goods"`
	GrossMargin       int64            `json:"gross_margin"`
	Expenses          int64            `json:"expenses"`
	ExpensesBy        map[string]int64 `json:"expenses_by_category"`
	NetResult         int64            `json:"net_result"`
	InvoiceCollected  int64            `json:"invoice_collected"`
	OutstandingCount  int64            `json:"outstanding_count"`
	OutstandingAmount int64            `json:"outstanding_amount"`
	VATBreakdown      []VATLine        `json:"vat_breakdown"`
}

// VATLine 按税率的 TVA 汇总
type VATLine struct {
	VATRate  int   `json:"vat_rate"`
	TotalHT  int64 `json:"total_ht"`
	TotalVAT int64 `json:"total_vat"`
	TotalTTC int64 `json:"total_ttc"`
}
