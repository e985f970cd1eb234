package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 库存流水类型
const (
	MovementIn         = "in"
	MovementOut        = "out"
	MovementSale       = "sale"
	MovementReturn     = "return"
	MovementAdjustment = "adjustment"
	MovementExpired    = "expired"
	MovementTransfer   = "transfer"
)

// 流水关联单据类型
const (
	RefBatch         = "batch"
	RefPurchaseOrder = "purchase_order"
	RefSale          = "sale"
	RefAdjustment    = "adjustment"
)

// 低库存提醒对象
var StockAlertRoles = []string{MemberOwner, MemberManager, MemberStockist}

// StockBatch 库存批次
type StockBatch struct {
	BaseModel
	AuditMixin
	PharmacyID          int64      `gorm:"index:idx_batch_fefo,priority:1;not null" json:"pharmacy_id"`
	ProductID           int64      `gorm:"index:idx_batch_fefo,priority:2;not null" json:"product_id"`
	SupplierID          *int64     `gorm:"index" json:"supplier_id"`
	PurchaseOrderID     *int64     `gorm:"index" json:"purchase_order_id"`
	PurchaseOrderLineID *int64     `json:"purchase_order_line_id"`
	LotNumber           string     `gorm:"size:64" json:"lot_number"`
	ExpiryDate          *time.Time `gorm:"index:idx_batch_fefo,priority:3" json:"expiry_date"`
	QuantityReceived    int        `gorm:"not null" json:"quantity_received"`
	QuantityRemaining   int        `gorm:"not null" json:"quantity_remaining"`
	UnitCost            int64      `gorm:"not null;default:0;comment:进价(分,不含税)" json:"unit_cost"`
	ReceivedAt          time.Time  `json:"received_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (StockBatch) TableName() string {
	return "stock_batches"
}

// BeforeCreate 校验数量，余量默认等于入库量
func (b *StockBatch) BeforeCreate(tx *gorm.DB) error {
	if b.QuantityReceived <= 0 {
		return ErrInvalidQuantity
	}
	if b.QuantityRemaining <= 0 || b.QuantityRemaining > b.QuantityReceived {
		b.QuantityRemaining = b.QuantityReceived
	}
	if b.ReceivedAt.IsZero() {
		b.ReceivedAt = time.Now()
	}
	return nil
}

// AfterCreate 入库流水 + 商品库存缓存
func (b *StockBatch) AfterCreate(tx *gorm.DB) error {
	refType, refID := RefBatch, b.ID
	if b.PurchaseOrderID != nil {
		refType, refID = RefPurchaseOrder, *b.PurchaseOrderID
	}
	return recordMovement(tx, b, b.QuantityRemaining, MovementIn, refType, refID, "lot "+b.LotNumber)
}

// IsExpired 批次在 at 当天是否已过期
func (b *StockBatch) IsExpired(at time.Time) bool {
	return b.ExpiryDate != nil && b.ExpiryDate.Before(startOfDay(at))
}

// StockMovement 库存流水（PostgreSQL 下按月分区），Quantity 带符号
type StockMovement struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PharmacyID   int64     `gorm:"index:idx_movement_product,priority:1;not null" json:"pharmacy_id"`
	ProductID    int64     `gorm:"index:idx_movement_product,priority:2;not null" json:"product_id"`
	BatchID      int64     `gorm:"index;not null;default:0" json:"batch_id"`
	Type         string    `gorm:"size:20;not null" json:"type"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	BalanceAfter int       `gorm:"not null;default:0" json:"balance_after"`
	RefType      string    `gorm:"size:30;not null;default:''" json:"ref_type"`
	RefID        int64     `gorm:"not null;default:0" json:"ref_id"`
	Note         string    `gorm:"size:255;not null;default:''" json:"note"`
	CreatedBy    int64     `gorm:"not null;default:0" json:"created_by"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (StockMovement) TableName() string {
	return "stock_movements"
}

// ==================== 库存变动 ====================

// AdjustBatch 调整批次余量（delta 带符号），同步商品库存缓存并记流水
// 余量不足时返回 ErrInsufficientStock，不做任何修改
func AdjustBatch(tx *gorm.DB, batch *StockBatch, delta int, movementType, refType string, refID int64, note string) error {
	if delta == 0 {
		return ErrInvalidQuantity
	}
	db := tx.Session(&gorm.Session{NewDB: true})

	res := db.Model(&StockBatch{}).
		Where("id = ? AND quantity_remaining + ? >= 0", batch.ID, delta).
		UpdateColumn("quantity_remaining", gorm.Expr("quantity_remaining + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: 批次 %s 余量 %d", ErrInsufficientStock, batch.LotNumber, batch.QuantityRemaining)
	}
	batch.QuantityRemaining += delta

	return recordMovement(tx, batch, delta, movementType, refType, refID, note)
}

// BatchAllocation 出库分配明细
type BatchAllocation struct {
	BatchID  int64
	Quantity int
	UnitCost int64
}

// DeductFEFO 按近效期先出扣减库存，跳过已过期批次
// 可用量不足时返回 ErrInsufficientStock，调用方事务回滚
func DeductFEFO(tx *gorm.DB, pharmacyID, productID int64, qty int, refType string, refID int64) ([]BatchAllocation, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	db := tx.Session(&gorm.Session{NewDB: true})

	var batches []StockBatch
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pharmacy_id = ? AND product_id = ? AND quantity_remaining > 0", pharmacyID, productID).
		Where("(expiry_date IS NULL OR expiry_date >= ?)", startOfDay(time.Now())).
		Order("expiry_date IS NULL, expiry_date ASC, id ASC").
		Find(&batches).Error
	if err != nil {
		return nil, err
	}

	need := qty
	allocs := make([]BatchAllocation, 0, 1)
	for i := range batches {
		if need == 0 {
			break
		}
		take := min(need, batches[i].QuantityRemaining)
		if err := AdjustBatch(tx, &batches[i], -take, MovementSale, refType, refID, ""); err != nil {
			return nil, err
		}
		allocs = append(allocs, BatchAllocation{BatchID: batches[i].ID, Quantity: take, UnitCost: batches[i].UnitCost})
		need -= take
	}
	if need > 0 {
		return nil, fmt.Errorf("%w: 商品 #%d 还差 %d", ErrInsufficientStock, productID, need)
	}
	return allocs, nil
}

// recordMovement 更新商品库存缓存并写流水
func recordMovement(tx *gorm.DB, batch *StockBatch, delta int, movementType, refType string, refID int64, note string) error {
	db := tx.Session(&gorm.Session{NewDB: true})

	balance, err := applyProductStock(db, batch.ProductID, delta)
	if err != nil {
		return err
	}

	mv := &StockMovement{
		PharmacyID:   batch.PharmacyID,
		ProductID:    batch.ProductID,
		BatchID:      batch.ID,
		Type:         movementType,
		Quantity:     delta,
		BalanceAfter: balance,
		RefType:      refType,
		RefID:        refID,
		Note:         note,
	}
	return db.Create(mv).Error
}

// applyProductStock 原子更新库存缓存，向下穿过补货线时提醒
func applyProductStock(db *gorm.DB, productID int64, delta int) (int, error) {
	var p Product
	if err := db.Unscoped().Select("id", "pharmacy_id", "name", "stock_quantity", "reorder_level").
		First(&p, productID).Error; err != nil {
		return 0, fmt.Errorf("读取商品 #%d 失败: %w", productID, err)
	}

	if err := db.Model(&Product{}).Unscoped().Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error; err != nil {
		return 0, err
	}

	after := p.StockQuantity + delta
	if delta < 0 && p.ReorderLevel > 0 && p.StockQuantity > p.ReorderLevel && after <= p.ReorderLevel {
		err := NotifyPharmacyRoles(db, p.PharmacyID, StockAlertRoles, NotificationInput{
			Topic:     TopicLowStock,
			Title:     "库存低于补货线",
			Body:      fmt.Sprintf("%s 剩余 %d（补货线 %d）", p.Name, after, p.ReorderLevel),
			Payload:   map[string]interface{}{"product_id": p.ID, "stock_quantity": after},
			DedupeKey: fmt.Sprintf("low_stock:%d:%s", p.ID, time.Now().Format("20060102")),
		})
		if err != nil {
			return 0, err
		}
	}
	return after, nil
}
