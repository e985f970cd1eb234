package model

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// 采购单状态
const (
	POStatusDraft     = "draft"
	POStatusSent      = "sent"
	POStatusPartial   = "partial"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder 采购单，金额为不含税进价
type PurchaseOrder struct {
	BaseModel
	AuditMixin
	PharmacyID   int64      `gorm:"uniqueIndex:idx_po_number;not null" json:"pharmacy_id"`
	Number       string     `gorm:"uniqueIndex:idx_po_number;size:32;not null" json:"number"`
	SupplierID   int64      `gorm:"index;not null" json:"supplier_id"`
	Status       string     `gorm:"size:16;index;not null;default:'draft'" json:"status"`
	OrderDate    time.Time  `json:"order_date"`
	ExpectedDate *time.Time `json:"expected_date"`
	SentAt       *time.Time `json:"sent_at"`
	ReceivedAt   *time.Time `json:"received_at"`
	Notes        string     `gorm:"size:500" json:"notes"`
	TotalHT      int64      `gorm:"not null;default:0" json:"total_ht"`
	TotalVAT     int64      `gorm:"not null;default:0" json:"total_vat"`
	TotalTTC     int64      `gorm:"not null;default:0" json:"total_ttc"`

	Supplier *Supplier           `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Lines    []PurchaseOrderLine `gorm:"foreignKey:PurchaseOrderID" json:"lines,omitempty"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// BeforeCreate 分配采购单号 PO-YYYY-00001
func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.OrderDate.IsZero() {
		po.OrderDate = time.Now()
	}
	if po.Status == "" {
		po.Status = POStatusDraft
	}
	if po.Number != "" {
		return nil
	}
	code, err := nextCode(tx, po.PharmacyID, PrefixPurchaseOrder, strconv.Itoa(po.OrderDate.Year()), 5)
	if err != nil {
		return err
	}
	po.Number = code
	return nil
}

// BeforeSave 明细已加载时重算合计
func (po *PurchaseOrder) BeforeSave(tx *gorm.DB) error {
	if len(po.Lines) == 0 {
		return nil
	}
	var ht, vat int64
	for i := range po.Lines {
		if err := po.Lines[i].derive(); err != nil {
			return err
		}
		ht += po.Lines[i].LineTotal
		vat += VATOnHT(po.Lines[i].LineTotal, po.Lines[i].VATRate)
	}
	po.TotalHT, po.TotalVAT, po.TotalTTC = ht, vat, ht+vat
	return nil
}

// Editable 草稿才允许修改明细
func (po *PurchaseOrder) Editable() bool {
	return po.Status == POStatusDraft
}

// Receivable 已发出或部分到货才允许收货
func (po *PurchaseOrder) Receivable() bool {
	return po.Status == POStatusSent || po.Status == POStatusPartial
}

// PurchaseOrderLine 采购明细
type PurchaseOrderLine struct {
	BaseModel
	PurchaseOrderID  int64 `gorm:"index;not null" json:"purchase_order_id"`
	ProductID        int64 `gorm:"index;not null" json:"product_id"`
	QuantityOrdered  int   `gorm:"not null" json:"quantity_ordered"`
	QuantityReceived int   `gorm:"not null;default:0" json:"quantity_received"`
	UnitCost         int64 `gorm:"not null;default:0" json:"unit_cost"`
	VATRate          int   `gorm:"not null;default:0" json:"vat_rate"`
	LineTotal        int64 `gorm:"not null;default:0" json:"line_total"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

func (l *PurchaseOrderLine) derive() error {
	if l.QuantityOrdered <= 0 {
		return ErrInvalidQuantity
	}
	if l.QuantityReceived > l.QuantityOrdered {
		return ErrOverReceipt
	}
	l.LineTotal = int64(l.QuantityOrdered) * l.UnitCost
	return nil
}

// BeforeSave 计算行金额
func (l *PurchaseOrderLine) BeforeSave(tx *gorm.DB) error {
	return l.derive()
}

// AfterUpdate 收货后重算采购单状态
func (l *PurchaseOrderLine) AfterUpdate(tx *gorm.DB) error {
	return refreshPurchaseOrderStatus(tx, l.PurchaseOrderID)
}

// Outstanding 未到货数量
func (l *PurchaseOrderLine) Outstanding() int {
	return l.QuantityOrdered - l.QuantityReceived
}

func refreshPurchaseOrderStatus(tx *gorm.DB, poID int64) error {
	db := tx.Session(&gorm.Session{NewDB: true})

	var totals struct {
		Ordered  int64
		Received int64
	}
	if err := db.Model(&PurchaseOrderLine{}).
		Select("COALESCE(SUM(quantity_ordered), 0) AS ordered, COALESCE(SUM(quantity_received), 0) AS received").
		Where("purchase_order_id = ?", poID).
		Scan(&totals).Error; err != nil {
		return err
	}
	if totals.Received == 0 {
		return nil
	}

	updates := map[string]interface{}{"status": POStatusPartial}
	if totals.Received >= totals.Ordered {
		updates["status"] = POStatusReceived
		updates["received_at"] = time.Now()
	}
	return db.Model(&PurchaseOrder{}).
		Where("id = ? AND status IN ?", poID, []string{POStatusSent, POStatusPartial}).
		UpdateColumns(updates).Error
}
