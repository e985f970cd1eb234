package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pharmacy_erp/internal/model"
)

// ==================== BatchRepository 批次仓库 ====================

type BatchRepository interface {
	Create(ctx context.Context, b *model.StockBatch) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.StockBatch, error)
	GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.StockBatch, error)
	List(ctx context.Context, filter BatchFilter) ([]model.StockBatch, int64, error)
	ListExpiring(ctx context.Context, pharmacyID int64, before time.Time) ([]model.StockBatch, error)
	ListExpiredWithStock(ctx context.Context, pharmacyID int64, at time.Time) ([]model.StockBatch, error)
	CountExpiring(ctx context.Context, pharmacyID int64, before time.Time) (int64, error)
	AvailableQuantity(ctx context.Context, pharmacyID, productID int64, at time.Time) (int64, error)
}

// BatchFilter 批次筛选条件
type BatchFilter struct {
	PharmacyID    int64
	ProductID     int64
	OnlyAvailable bool
	ExpiresBefore *time.Time
	Pagination
}

type batchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(ctx context.Context, b *model.StockBatch) error {
	return r.db.WithContext(ctx).Omit("Product").Create(b).Error
}

func (r *batchRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.StockBatch, error) {
	var b model.StockBatch
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("pharmacy_id = ?", pharmacyID).
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

// GetForUpdate 行锁读取
func (r *batchRepository) GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.StockBatch, error) {
	var b model.StockBatch
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pharmacy_id = ?", pharmacyID).
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *batchRepository) List(ctx context.Context, filter BatchFilter) ([]model.StockBatch, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.StockBatch{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.OnlyAvailable {
		query = query.Where("quantity_remaining > 0")
	}
	if filter.ExpiresBefore != nil {
		query = query.Where("expiry_date IS NOT NULL AND expiry_date < ?", *filter.ExpiresBefore)
	}

	var list []model.StockBatch
	total, err := paginate(query, filter.Pagination, "expiry_date IS NULL, expiry_date ASC, id ASC", &list, "Product")
	return list, total, err
}

// ListExpiring 有余量且在 before 之前到期的批次；pharmacyID 为 0 时查全部药房
func (r *batchRepository) ListExpiring(ctx context.Context, pharmacyID int64, before time.Time) ([]model.StockBatch, error) {
	query := r.db.WithContext(ctx).
		Preload("Product").
		Where("quantity_remaining > 0 AND expiry_date IS NOT NULL AND expiry_date < ?", before)
	if pharmacyID > 0 {
		query = query.Where("pharmacy_id = ?", pharmacyID)
	}
	var list []model.StockBatch
	err := query.Order("expiry_date ASC").Find(&list).Error
	return list, err
}

// ListExpiredWithStock 已过期仍有余量的批次
func (r *batchRepository) ListExpiredWithStock(ctx context.Context, pharmacyID int64, at time.Time) ([]model.StockBatch, error) {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return r.ListExpiring(ctx, pharmacyID, day)
}

func (r *batchRepository) CountExpiring(ctx context.Context, pharmacyID int64, before time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StockBatch{}).
		Where("pharmacy_id = ? AND quantity_remaining > 0 AND expiry_date IS NOT NULL AND expiry_date < ?", pharmacyID, before).
		Count(&count).Error
	return count, err
}

// AvailableQuantity 未过期批次可售数量
func (r *batchRepository) AvailableQuantity(ctx context.Context, pharmacyID, productID int64, at time.Time) (int64, error) {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	var qty int64
	err := r.db.WithContext(ctx).
		Model(&model.StockBatch{}).
		Select("COALESCE(SUM(quantity_remaining), 0)").
		Where("pharmacy_id = ? AND product_id = ? AND quantity_remaining > 0", pharmacyID, productID).
		Where("(expiry_date IS NULL OR expiry_date >= ?)", day).
		Scan(&qty).Error
	return qty, err
}

// ==================== MovementRepository 库存流水仓库 ====================

type MovementRepository interface {
	List(ctx context.Context, filter MovementFilter) ([]model.StockMovement, int64, error)
}

// MovementFilter 流水筛选条件
type MovementFilter struct {
	PharmacyID int64
	ProductID  int64
	BatchID    int64
	Type       string
	DateRange
	Pagination
}

type movementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) List(ctx context.Context, filter MovementFilter) ([]model.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.StockMovement{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.ProductID > 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.BatchID > 0 {
		query = query.Where("batch_id = ?", filter.BatchID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	query = filter.DateRange.apply(query, "created_at")

	var list []model.StockMovement
	total, err := paginate(query, filter.Pagination, "created_at DESC, id DESC", &list)
	return list, total, err
}

// ==================== PurchaseOrderRepository 采购单仓库 ====================

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.PurchaseOrder, error)
	Update(ctx context.Context, po *model.PurchaseOrder) error
	ReplaceLines(ctx context.Context, po *model.PurchaseOrder, lines []model.PurchaseOrderLine) error
	UpdateLine(ctx context.Context, line *model.PurchaseOrderLine) error
	List(ctx context.Context, filter PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error)
}

// PurchaseOrderFilter 采购单筛选条件
type PurchaseOrderFilter struct {
	PharmacyID int64
	SupplierID int64
	Status     string
	DateRange
	Pagination
}

type purchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

// Create 连同明细一起写入
func (r *purchaseOrderRepository) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit("Supplier").Create(po).Error
}

func (r *purchaseOrderRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Lines.Product").
		Where("pharmacy_id = ?", pharmacyID).
		First(&po, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &po, err
}

// GetForUpdate 加锁读取采购单及明细
func (r *purchaseOrderRepository) GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pharmacy_id = ?", pharmacyID).
		First(&po, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Where("purchase_order_id = ?", po.ID).
		Order("id ASC").
		Find(&po.Lines).Error
	return &po, err
}

// Update 只更新表头，明细与关联不级联
func (r *purchaseOrderRepository) Update(ctx context.Context, po *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(po).Error
}

// ReplaceLines 删除旧明细后写入新明细并重算合计
func (r *purchaseOrderRepository) ReplaceLines(ctx context.Context, po *model.PurchaseOrder, lines []model.PurchaseOrderLine) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("purchase_order_id = ?", po.ID).Delete(&model.PurchaseOrderLine{}).Error; err != nil {
		return err
	}
	for i := range lines {
		lines[i].ID = 0
		lines[i].PurchaseOrderID = po.ID
	}
	if len(lines) > 0 {
		if err := db.Omit("Product").Create(&lines).Error; err != nil {
			return err
		}
	}
	po.Lines = lines
	return db.Omit(clause.Associations).Save(po).Error
}

// UpdateLine 更新明细（触发采购单状态重算）
func (r *purchaseOrderRepository) UpdateLine(ctx context.Context, line *model.PurchaseOrderLine) error {
	return r.db.WithContext(ctx).Omit("Product").Save(line).Error
}

func (r *purchaseOrderRepository) List(ctx context.Context, filter PurchaseOrderFilter) ([]model.PurchaseOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.SupplierID > 0 {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = filter.DateRange.apply(query, "order_date")

	var list []model.PurchaseOrder
	total, err := paginate(query, filter.Pagination, "id DESC", &list, "Supplier")
	return list, total, err
}
