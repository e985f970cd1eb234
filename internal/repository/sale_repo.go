package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pharmacy_erp/internal/model"
)

// ==================== SaleRepository 销售仓库 ====================

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Sale, error)
	GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.Sale, error)
	Update(ctx context.Context, sale *model.Sale) error
	List(ctx context.Context, filter SaleFilter) ([]model.Sale, int64, error)
	ListInRange(ctx context.Context, pharmacyID int64, from, to time.Time) ([]model.Sale, error)
	Summary(ctx context.Context, pharmacyID int64, from, to time.Time) (*SaleSummary, error)
	TopProducts(ctx context.Context, pharmacyID int64, from, to time.Time, limit int) ([]TopProduct, error)
	VATBreakdown(ctx context.Context, pharmacyID int64, from, to time.Time) ([]VATBucket, error)
}

// SaleFilter 销售筛选条件
type SaleFilter struct {
	PharmacyID int64
	CashierID  int64
	CustomerID int64
	Status     string
	Channel    string
	Number     string
	DateRange
	Pagination
}

// SaleSummary 区间销售汇总（仅已完成）
type SaleSummary struct {
	Count         int64 `json:"count"`
	TotalHT       int64 `json:"total_ht"`
	TotalVAT      int64 `json:"total_vat"`
	TotalTTC      int64 `json:"total_ttc"`
	DiscountTotal int64 `json:"discount_total"`
	CostAmount    int64 `json:"cost_amount"`
}

// TopProduct 畅销商品
type TopProduct struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	TotalTTC    int64  `json:"total_ttc"`
}

// VATBucket 按税率汇总
type VATBucket struct {
	VATRate  int   `json:"vat_rate"`
	TotalHT  int64 `json:"total_ht"`
	TotalVAT int64 `json:"total_vat"`
	TotalTTC int64 `json:"total_ttc"`
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

// Create 明细与收款随单写入，明细钩子按 FEFO 扣库存
func (r *saleRepository) Create(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Lines.Allocations").
		Preload("Payments").
		Where("pharmacy_id = ?", pharmacyID).
		First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pharmacy_id = ?", pharmacyID).
		First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// Update 只更新表头，作废由钩子回库
func (r *saleRepository) Update(ctx context.Context, sale *model.Sale) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(sale).Error
}

func (r *saleRepository) List(ctx context.Context, filter SaleFilter) ([]model.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Sale{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.CashierID > 0 {
		query = query.Where("cashier_id = ?", filter.CashierID)
	}
	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Channel != "" {
		query = query.Where("channel = ?", filter.Channel)
	}
	if filter.Number != "" {
		query = query.Where("number = ?", filter.Number)
	}
	query = filter.DateRange.apply(query, "sold_at")

	var list []model.Sale
	total, err := paginate(query, filter.Pagination, "sold_at DESC, id DESC", &list)
	return list, total, err
}

// ListInRange 区间内全部销售（导出与按日汇总用）
func (r *saleRepository) ListInRange(ctx context.Context, pharmacyID int64, from, to time.Time) ([]model.Sale, error) {
	var list []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Payments").
		Where("pharmacy_id = ? AND sold_at >= ? AND sold_at < ?", pharmacyID, from, to).
		Order("sold_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *saleRepository) Summary(ctx context.Context, pharmacyID int64, from, to time.Time) (*SaleSummary, error) {
	var s SaleSummary
	err := r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Select(`COUNT(*) AS count, COALESCE(SUM(total_ht), 0) AS total_ht, COALESCE(SUM(total_vat), 0) AS total_vat,
			COALESCE(SUM(total_ttc), 0) AS total_ttc, COALESCE(SUM(discount_total), 0) AS discount_total`).
		Where("pharmacy_id = ? AND status = ? AND sold_at >= ? AND sold_at < ?", pharmacyID, model.SaleCompleted, from, to).
		Scan(&s).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Table("sale_lines").
		Select("COALESCE(SUM(sale_lines.cost_amount), 0)").
		Joins("JOIN sales ON sales.id = sale_lines.sale_id").
		Where("sales.pharmacy_id = ? AND sales.status = ? AND sales.sold_at >= ? AND sales.sold_at < ?", pharmacyID, model.SaleCompleted, from, to).
		Where("sales.deleted_at IS NULL AND sale_lines.deleted_at IS NULL").
		Scan(&s.CostAmount).Error
	return &s, err
}

func (r *saleRepository) TopProducts(ctx context.Context, pharmacyID int64, from, to time.Time, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []TopProduct
	err := r.db.WithContext(ctx).
		Table("sale_lines").
		Select("sale_lines.product_id, MAX(sale_lines.product_name) AS product_name, SUM(sale_lines.quantity) AS quantity, SUM(sale_lines.total_ttc) AS total_ttc").
		Joins("JOIN sales ON sales.id = sale_lines.sale_id").
		Where("sales.pharmacy_id = ? AND sales.status = ? AND sales.sold_at >= ? AND sales.sold_at < ?", pharmacyID, model.SaleCompleted, from, to).
		Where("sales.deleted_at IS NULL AND sale_lines.deleted_at IS NULL").
		Group("sale_lines.product_id").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *saleRepository) VATBreakdown(ctx context.Context, pharmacyID int64, from, to time.Time) ([]VATBucket, error) {
	var rows []VATBucket
	err := r.db.WithContext(ctx).
		Table("sale_lines").
		Select("sale_lines.vat_rate, SUM(sale_lines.total_ht) AS total_ht, SUM(sale_lines.total_vat) AS total_vat, SUM(sale_lines.total_ttc) AS total_ttc").
		Joins("JOIN sales ON sales.id = sale_lines.sale_id").
		Where("sales.pharmacy_id = ? AND sales.status = ? AND sales.sold_at >= ? AND sales.sold_at < ?", pharmacyID, model.SaleCompleted, from, to).
		Where("sales.deleted_at IS NULL AND sale_lines.deleted_at IS NULL").
		Group("sale_lines.vat_rate").
		Order("sale_lines.vat_rate ASC").
		Scan(&rows).Error
	return rows, err
}
