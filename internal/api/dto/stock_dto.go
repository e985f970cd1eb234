package dto

import "time"

// ==================== 分类 / 商品 / 供应商 ====================

// CategoryRequest 创建/修改分类
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	ParentID    *int64 `json:"parent_id"`
	Description string `json:"description" binding:"max=255"`
}

// ProductRequest 创建/修改商品；VATRate 为基点，2.1% 传 210
type ProductRequest struct {
	CategoryID           *int64 `json:"category_id"`
	SKU                  string `json:"sku" binding:"required,max=64"`
	Barcode              string `json:"barcode" binding:"max=32"`
	Name                 string `json:"name" binding:"required,max=255"`
	GenericName          string `json:"generic_name" binding:"max=255"`
	Form                 string `json:"form" binding:"max=64"`
	Dosage               string `json:"dosage" binding:"max=64"`
	Manufacturer         string `json:"manufacturer" binding:"max=128"`
	RequiresPrescription bool   `json:"requires_prescription"`
	VATRate              int    `json:"vat_rate" binding:"min=0,max=10000"`
	PurchasePrice        int64  `json:"purchase_price" binding:"min=0"`
	SalePrice            int64  `json:"sale_price" binding:"min=0"`
	ReorderLevel         int    `json:"reorder_level" binding:"min=0"`
	Published            bool   `json:"published"`
	OnlineDescription    string `json:"online_description"`
	ImageURL             string `json:"image_url" binding:"omitempty,url"`
	Active               *bool  `json:"active"`
}

// ProductListRequest 商品搜索
type ProductListRequest struct {
	Keyword              string `form:"keyword"`
	CategoryID           int64  `form:"category_id"`
	LowStock             bool   `form:"low_stock"`
	Published            *bool  `form:"published"`
	Active               *bool  `form:"active"`
	RequiresPrescription *bool  `form:"requires_prescription"`
	PageQuery
}

// SupplierRequest 创建/修改供应商
type SupplierRequest struct {
	Name             string `json:"name" binding:"required,max=128"`
	ContactName      string `json:"contact_name" binding:"max=128"`
	Phone            string `json:"phone" binding:"max=32"`
	Email            string `json:"email" binding:"omitempty,email"`
	Address          string `json:"address" binding:"max=255"`
	PaymentTermsDays int    `json:"payment_terms_days" binding:"min=0,max=365"`
	Active           *bool  `json:"active"`
}

// SupplierListRequest 供应商列表
type SupplierListRequest struct {
	Keyword string `form:"keyword"`
	Active  *bool  `form:"active"`
	PageQuery
}

// ==================== 库存 ====================

// ReceiveStockRequest 直接入库（新建批次）
type ReceiveStockRequest struct {
	ProductID  int64      `json:"product_id" binding:"required,min=1"`
	SupplierID *int64     `json:"supplier_id"`
	LotNumber  string     `json:"lot_number" binding:"required,max=64"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Quantity   int        `json:"quantity" binding:"required,min=1"`
	UnitCost   int64      `json:"unit_cost" binding:"min=0"`
}

// AdjustStockRequest 批次库存调整，Delta 带符号
type AdjustStockRequest struct {
	Delta int    `json:"delta" binding:"required,ne=0"`
	Note  string `json:"note" binding:"required,max=255"`
}

// BatchListRequest 批次列表
type BatchListRequest struct {
	ProductID     int64 `form:"product_id"`
	OnlyAvailable bool  `form:"only_available"`
	PageQuery
}

// MovementListRequest 库存流水
type MovementListRequest struct {
	ProductID int64  `form:"product_id"`
	BatchID   int64  `form:"batch_id"`
	Type      string `form:"type"`
	PeriodQuery
	PageQuery
}

// ExpiringRequest 近效期报表
type ExpiringRequest struct {
	Days int `form:"days,default=30" binding:"min=1,max=730"`
}

// ExpireResult 过期批次出库结果
type ExpireResult struct {
	Batches  int `json:"batches"`
	Quantity int `json:"quantity"`
}

// ValuationReport 库存估值
type ValuationReport struct {
	Items          []ValuationItem `json:"items"`
	TotalCost      int64           `json:"total_cost"`
	TotalSaleValue int64           `json:"total_sale_value"`
}

// ValuationItem 单个商品估值
type ValuationItem struct {
	ProductID     int64  `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	CostValue     int64  `json:"cost_value"`
	SaleValue     int64  `json:"sale_value"`
}

// ==================== 采购 ====================

// PurchaseOrderRequest 创建/修改采购单
type PurchaseOrderRequest struct {
	SupplierID   int64                      `json:"supplier_id" binding:"required,min=1"`
	ExpectedDate *time.Time                 `json:"expected_date"`
	Notes        string                     `json:"notes" binding:"max=500"`
	Lines        []PurchaseOrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// PurchaseOrderLineRequest 采购明细；UnitCost 为空取商品进价
type PurchaseOrderLineRequest struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	UnitCost  *int64 `json:"unit_cost" binding:"omitempty,min=0"`
}

// PurchaseOrderListRequest 采购单列表
type PurchaseOrderListRequest struct {
	SupplierID int64  `form:"supplier_id"`
	Status     string `form:"status"`
	PeriodQuery
	PageQuery
}

// ReceiveLinesRequest 采购收货（可部分）
type ReceiveLinesRequest struct {
	Lines []ReceiveLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReceiveLineRequest 单行收货
type ReceiveLineRequest struct {
	LineID     int64      `json:"line_id" binding:"required,min=1"`
	Quantity   int        `json:"quantity" binding:"required,min=1"`
	LotNumber  string     `json:"lot_number" binding:"required,max=64"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// ImportImageRequest 从远程地址导入商品图片
type ImportImageRequest struct {
	URL string `json:"url" binding:"required,url"`
}
