package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pharmacy_erp/internal/model"
)

// ==================== CategoryRepository 分类仓库 ====================

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, pharmacyID, id int64) error
	List(ctx context.Context, pharmacyID int64) ([]model.Category, error)
	CountProducts(ctx context.Context, id int64) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyID).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *categoryRepository) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepository) Delete(ctx context.Context, pharmacyID, id int64) error {
	return r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, id).
		Delete(&model.Category{}).Error
}

func (r *categoryRepository) List(ctx context.Context, pharmacyID int64) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		Order("name ASC").
		Find(&list).Error
	return list, err
}

func (r *categoryRepository) CountProducts(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// ==================== ProductRepository 商品仓库 ====================

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Product, error)
	GetByIDs(ctx context.Context, pharmacyID int64, ids []int64) ([]model.Product, error)
	GetByBarcode(ctx context.Context, pharmacyID int64, barcode string) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, pharmacyID, id int64) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	ExistsBySKU(ctx context.Context, pharmacyID int64, sku string, excludeID int64) (bool, error)
	CountLowStock(ctx context.Context, pharmacyID int64) (int64, error)
	Valuation(ctx context.Context, pharmacyID int64) ([]ProductValuation, error)
}

// ProductFilter 商品筛选条件
type ProductFilter struct {
	PharmacyID           int64
	Keyword              string
	CategoryID           int64
	LowStock             bool
	Published            *bool
	Active               *bool
	RequiresPrescription *bool
	Pagination
}

// ProductValuation 商品库存估值（按批次进价）
type ProductValuation struct {
	ProductID     int64  `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	SalePrice     int64  `json:"sale_price"`
	CostValue     int64  `json:"cost_value"`
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create 库存缓存只能由批次维护
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	p.StockQuantity = 0
	return r.db.WithContext(ctx).Omit("Category").Create(p).Error
}

func (r *productRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("pharmacy_id = ?", pharmacyID).
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepository) GetByIDs(ctx context.Context, pharmacyID int64, ids []int64) ([]model.Product, error) {
	var list []model.Product
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id IN ?", pharmacyID, ids).
		Find(&list).Error
	return list, err
}

func (r *productRepository) GetByBarcode(ctx context.Context, pharmacyID int64, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND barcode = ?", pharmacyID, barcode).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// Update 不覆盖库存缓存
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Omit("Category", "StockQuantity").Save(p).Error
}

func (r *productRepository) Delete(ctx context.Context, pharmacyID, id int64) error {
	return r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, id).
		Delete(&model.Product{}).Error
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{}).Where("pharmacy_id = ?", filter.PharmacyID)

	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(generic_name) LIKE ? OR LOWER(sku) LIKE ? OR barcode = ?",
			kw, kw, kw, likeExact(filter.Keyword))
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.LowStock {
		query = query.Where("reorder_level > 0 AND stock_quantity <= reorder_level")
	}
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.RequiresPrescription != nil {
		query = query.Where("requires_prescription = ?", *filter.RequiresPrescription)
	}

	var list []model.Product
	total, err := paginate(query, filter.Pagination, "id DESC", &list, "Category")
	return list, total, err
}

func (r *productRepository) ExistsBySKU(ctx context.Context, pharmacyID int64, sku string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("pharmacy_id = ? AND sku = ? AND id <> ?", pharmacyID, sku, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepository) CountLowStock(ctx context.Context, pharmacyID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("pharmacy_id = ? AND active = ? AND reorder_level > 0 AND stock_quantity <= reorder_level", pharmacyID, true).
		Count(&count).Error
	return count, err
}

// Valuation 按未过期、未用完批次的余量与进价估值
func (r *productRepository) Valuation(ctx context.Context, pharmacyID int64) ([]ProductValuation, error) {
	var rows []ProductValuation
	err := r.db.WithContext(ctx).
		Table("products").
		Select(`products.id AS product_id, products.sku, products.name, products.stock_quantity, products.sale_price,
			COALESCE(SUM(stock_batches.quantity_remaining * stock_batches.unit_cost), 0) AS cost_value`).
		Joins("LEFT JOIN stock_batches ON stock_batches.product_id = products.id AND stock_batches.quantity_remaining > 0 AND stock_batches.deleted_at IS NULL").
		Where("products.pharmacy_id = ? AND products.deleted_at IS NULL", pharmacyID).
		Group("products.id, products.sku, products.name, products.stock_quantity, products.sale_price").
		Order("products.name ASC").
		Scan(&rows).Error
	return rows, err
}

// ==================== SupplierRepository 供应商仓库 ====================

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	Delete(ctx context.Context, pharmacyID, id int64) error
	List(ctx context.Context, filter SupplierFilter) ([]model.Supplier, int64, error)
}

// SupplierFilter 供应商筛选条件
type SupplierFilter struct {
	PharmacyID int64
	Keyword    string
	Active     *bool
	Pagination
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Where("pharmacy_id = ?", pharmacyID).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &s, err
}

func (r *supplierRepository) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepository) Delete(ctx context.Context, pharmacyID, id int64) error {
	return r.db.WithContext(ctx).
		Where("pharmacy_id = ? AND id = ?", pharmacyID, id).
		Delete(&model.Supplier{}).Error
}

func (r *supplierRepository) List(ctx context.Context, filter SupplierFilter) ([]model.Supplier, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.Keyword != "" {
		kw := likePattern(filter.Keyword)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(contact_name) LIKE ?", kw, kw)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var list []model.Supplier
	total, err := paginate(query, filter.Pagination, "id DESC", &list)
	return list, total, err
}
