package model

import (
	"strings"

	"gorm.io/gorm"
)

// Category 商品分类
type Category struct {
	BaseModel
	PharmacyID  int64  `gorm:"index;not null" json:"pharmacy_id"`
	Name        string `gorm:"size:128;not null" json:"name"`
	ParentID    *int64 `gorm:"index" json:"parent_id"`
	Description string `gorm:"size:255" json:"description"`
}

func (Category) TableName() string {
	return "categories"
}

// Product 药品/商品，StockQuantity 为批次余量汇总缓存，仅由库存流水维护
type Product struct {
	BaseModel
	AuditMixin
	PharmacyID           int64  `gorm:"uniqueIndex:idx_product_sku;not null" json:"pharmacy_id"`
	CategoryID           *int64 `gorm:"index" json:"category_id"`
	SKU                  string `gorm:"uniqueIndex:idx_product_sku;size:64;not null" json:"sku"`
	Barcode              string `gorm:"size:32;index" json:"barcode"`
	Name                 string `gorm:"size:255;not null;index" json:"name"`
	GenericName          string `gorm:"size:255;index;comment:通用名(DCI)" json:"generic_name"`
	Form                 string `gorm:"size:64" json:"form"`
	Dosage               string `gorm:"size:64" json:"dosage"`
	Manufacturer         string `gorm:"size:128" json:"manufacturer"`
	RequiresPrescription bool   `gorm:"not null;default:false" json:"requires_prescription"`
	VATRate              int    `gorm:"not null;default:0;comment:税率(基点)" json:"vat_rate"`
	PurchasePrice        int64  `gorm:"not null;default:0" json:"purchase_price"`
	SalePrice            int64  `gorm:"not null;default:0;comment:含税售价(分)" json:"sale_price"`
	ReorderLevel         int    `gorm:"not null;default:0" json:"reorder_level"`
	StockQuantity        int    `gorm:"not null;default:0" json:"stock_quantity"`
	Published            bool   `gorm:"not null;default:false;index" json:"published"`
	OnlineDescription    string `gorm:"type:text" json:"online_description"`
	ImageURL             string `gorm:"size:500" json:"image_url"`
	Active               bool   `gorm:"not null;default:true" json:"active"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// BeforeSave 规范化 SKU 并校验价格
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
	p.Barcode = strings.TrimSpace(p.Barcode)
	if p.SalePrice < 0 || p.PurchasePrice < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsLowStock 库存是否低于补货线
func (p *Product) IsLowStock() bool {
	return p.ReorderLevel > 0 && p.StockQuantity <= p.ReorderLevel
}

// Supplier 供应商
type Supplier struct {
	BaseModel
	AuditMixin
	PharmacyID       int64  `gorm:"index;not null" json:"pharmacy_id"`
	Name             string `gorm:"size:128;not null" json:"name"`
	ContactName      string `gorm:"size:128" json:"contact_name"`
	Phone            string `gorm:"size:32" json:"phone"`
	Email            string `gorm:"size:128" json:"email"`
	Address          string `gorm:"size:255" json:"address"`
	PaymentTermsDays int    `gorm:"not null;default:30" json:"payment_terms_days"`
	Active           bool   `gorm:"not null;default:true" json:"active"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
