package dto

import "time"

// StorefrontProduct 网店商品
type StorefrontProduct struct {
	ID                   int64  `json:"id"`
	PharmacyID           int64  `json:"pharmacy_id"`
	Name                 string `json:"name"`
	GenericName          string `json:"generic_name"`
	Form                 string `json:"form"`
	Dosage               string `json:"dosage"`
	Manufacturer         string `json:"manufacturer"`
	CategoryID           *int64 `json:"category_id"`
	Price                int64  `json:"price"`
	RequiresPrescription bool   `json:"requires_prescription"`
	Description          string `json:"description"`
	ImageURL             string `json:"image_url"`
	Available            int    `json:"available"`
	InStock              bool   `json:"in_stock"`
}

// StorefrontPharmacy 网店药房
type StorefrontPharmacy struct {
	ID         int64  `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	Currency   string `json:"currency"`
}

// CreateCartRequest 新建购物车
type CreateCartRequest struct {
	PharmacyID int64 `json:"pharmacy_id" binding:"required,min=1"`
}

// CartItemRequest 加购或修改数量
type CartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=99"`
}

// CartView 购物车
type CartView struct {
	Token      string         `json:"token"`
	PharmacyID int64          `json:"pharmacy_id"`
	ExpiresAt  time.Time      `json:"expires_at"`
	Items      []CartItemView `json:"items"`
	ItemCount  int            `json:"item_count"`
	Total      int64          `json:"total"`
}

// CartItemView 购物车条目
type CartItemView struct {
	ProductID            int64  `json:"product_id"`
	Name                 string `json:"name"`
	UnitPrice            int64  `json:"unit_price"`
	Quantity             int    `json:"quantity"`
	LineTotal            int64  `json:"line_total"`
	RequiresPrescription bool   `json:"requires_prescription"`
	Available            bool   `json:"available"`
}

// CheckoutCartRequest 下单
type CheckoutCartRequest struct {
	DeliveryMode    string `json:"delivery_mode" binding:"required,oneof=pickup delivery"`
	DeliveryAddress string `json:"delivery_address" binding:"required_if=DeliveryMode delivery,max=255"`
	Phone           string `json:"phone" binding:"required,max=32"`
	Notes           string `json:"notes" binding:"max=500"`
	PrescriptionID  *int64 `json:"prescription_id"`
}

// OrderStatusRequest 员工变更订单状态
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed ready shipped delivered cancelled"`
	Notes  string `json:"notes" binding:"max=500"`
}

// OrderListRequest 订单列表
type OrderListRequest struct {
	Status string `form:"status"`
	PeriodQuery
	PageQuery
}

// GenerateDescriptionRequest AI 生成商品网店描述
type GenerateDescriptionRequest struct {
	Language string `json:"language" binding:"omitempty,oneof=fr en es de it"`
	Save     bool   `json:"save"`
}

// GenerateDescriptionResponse AI 生成结果
type GenerateDescriptionResponse struct {
	Description string `json:"description"`
	Saved       bool   `json:"saved"`
}
