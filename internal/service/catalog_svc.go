package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

// CatalogService 分类、商品、供应商
type CatalogService struct {
	store   *repository.Store
	storage *StorageService
	log     *zap.Logger
}

// NewCatalogService 创建商品目录服务，storage 为空时不支持图片上传
func NewCatalogService(store *repository.Store, storage *StorageService) *CatalogService {
	return &CatalogService{store: store, storage: storage, log: logger.Named("catalog")}
}

// ==================== 分类 ====================

// CreateCategory 新建分类
func (s *CatalogService) CreateCategory(ctx context.Context, pharmacyID int64, req *dto.CategoryRequest) (*model.Category, error) {
	if err := s.checkParent(ctx, pharmacyID, req.ParentID, 0); err != nil {
		return nil, err
	}
	c := &model.Category{
		PharmacyID:  pharmacyID,
		Name:        strings.TrimSpace(req.Name),
		ParentID:    req.ParentID,
		Description: req.Description,
	}
	if err := s.store.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategory 修改分类
func (s *CatalogService) UpdateCategory(ctx context.Context, pharmacyID, id int64, req *dto.CategoryRequest) (*model.Category, error) {
	c, err := s.getCategory(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, pharmacyID, req.ParentID, id); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.ParentID = req.ParentID
	c.Description = req.Description
	if err := s.store.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory 删除分类，仍有商品时拒绝
func (s *CatalogService) DeleteCategory(ctx context.Context, pharmacyID, id int64) error {
	if _, err := s.getCategory(ctx, pharmacyID, id); err != nil {
		return err
	}
	count, err := s.store.Categories.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	return s.store.Categories.Delete(ctx, pharmacyID, id)
}

// ListCategories 分类列表
func (s *CatalogService) ListCategories(ctx context.Context, pharmacyID int64) ([]model.Category, error) {
	list, err := s.store.Categories.List(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []model.Category{}
	}
	return list, nil
}

func (s *CatalogService) getCategory(ctx context.Context, pharmacyID, id int64) (*model.Category, error) {
	c, err := s.store.Categories.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *CatalogService) checkParent(ctx context.Context, pharmacyID int64, parentID *int64, selfID int64) error {
	if parentID == nil {
		return nil
	}
	if *parentID == selfID {
		return fmt.Errorf("%w: 分类不能作为自己的上级", ErrInvalidInput)
	}
	_, err := s.getCategory(ctx, pharmacyID, *parentID)
	return err
}

// ==================== 商品 ====================

// CreateProduct 新建商品，库存从 0 开始，只能通过批次入库增加
func (s *CatalogService) CreateProduct(ctx context.Context, pharmacyID int64, req *dto.ProductRequest) (*model.Product, error) {
	if err := s.checkProduct(ctx, pharmacyID, req, 0); err != nil {
		return nil, err
	}
	p := &model.Product{PharmacyID: pharmacyID, Active: true}
	applyProduct(p, req)

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Products.Create(ctx, p); err != nil {
			return err
		}
		if !p.Active {
			return tx.Products.Update(ctx, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct 商品详情
func (s *CatalogService) GetProduct(ctx context.Context, pharmacyID, id int64) (*model.Product, error) {
	p, err := s.store.Products.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// GetProductByBarcode 扫码查询
func (s *CatalogService) GetProductByBarcode(ctx context.Context, pharmacyID int64, barcode string) (*model.Product, error) {
	p, err := s.store.Products.GetByBarcode(ctx, pharmacyID, strings.TrimSpace(barcode))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// UpdateProduct 修改商品，库存缓存不受影响
func (s *CatalogService) UpdateProduct(ctx context.Context, pharmacyID, id int64, req *dto.ProductRequest) (*model.Product, error) {
	p, err := s.GetProduct(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkProduct(ctx, pharmacyID, req, id); err != nil {
		return nil, err
	}
	applyProduct(p, req)
	p.Category = nil
	if err := s.store.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct 删除商品，仍有库存时拒绝
func (s *CatalogService) DeleteProduct(ctx context.Context, pharmacyID, id int64) error {
	p, err := s.GetProduct(ctx, pharmacyID, id)
	if err != nil {
		return err
	}
	if p.StockQuantity > 0 {
		return ErrProductHasStock
	}
	return s.store.Products.Delete(ctx, pharmacyID, id)
}

// ListProducts 商品搜索（名称、通用名、条码、SKU）
func (s *CatalogService) ListProducts(ctx context.Context, pharmacyID int64, req *dto.ProductListRequest) (*dto.PageResult[model.Product], error) {
	list, total, err := s.store.Products.List(ctx, repository.ProductFilter{
		PharmacyID:           pharmacyID,
		Keyword:              req.Keyword,
		CategoryID:           req.CategoryID,
		LowStock:             req.LowStock,
		Published:            req.Published,
		Active:               req.Active,
		RequiresPrescription: req.RequiresPrescription,
		Pagination:           toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// UploadProductImage 上传商品图片并更新 ImageURL
func (s *CatalogService) UploadProductImage(ctx context.Context, pharmacyID, id int64, data []byte, filename string) (*model.Product, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	p, err := s.GetProduct(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	obj, err := s.storage.UploadImage(ctx, data, fmt.Sprintf("%s/%d", FolderProducts, pharmacyID), filename)
	if err != nil {
		return nil, err
	}
	return s.setImage(ctx, p, obj)
}

// ImportProductImage 从远程地址导入商品图片
func (s *CatalogService) ImportProductImage(ctx context.Context, pharmacyID, id int64, sourceURL string) (*model.Product, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	p, err := s.GetProduct(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	obj, err := s.storage.UploadFromURL(ctx, sourceURL, fmt.Sprintf("%s/%d", FolderProducts, pharmacyID))
	if err != nil {
		return nil, err
	}
	return s.setImage(ctx, p, obj)
}

func (s *CatalogService) setImage(ctx context.Context, p *model.Product, obj *StoredObject) (*model.Product, error) {
	p.ImageURL = obj.URL
	p.Category = nil
	if err := s.store.Products.Update(ctx, p); err != nil {
		if delErr := s.storage.Delete(ctx, obj.Key); delErr != nil {
			s.log.Warn("清理上传文件失败", zap.String("key", obj.Key), zap.Error(delErr))
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) checkProduct(ctx context.Context, pharmacyID int64, req *dto.ProductRequest, selfID int64) error {
	exists, err := s.store.Products.ExistsBySKU(ctx, pharmacyID, req.SKU, selfID)
	if err != nil {
		return err
	}
	if exists {
		return ErrSKUExists
	}
	if req.CategoryID != nil {
		if _, err := s.getCategory(ctx, pharmacyID, *req.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

func applyProduct(p *model.Product, req *dto.ProductRequest) {
	p.CategoryID = req.CategoryID
	p.SKU = req.SKU
	p.Barcode = req.Barcode
	p.Name = strings.TrimSpace(req.Name)
	p.GenericName = req.GenericName
	p.Form = req.Form
	p.Dosage = req.Dosage
	p.Manufacturer = req.Manufacturer
	p.RequiresPrescription = req.RequiresPrescription
	p.VATRate = req.VATRate
	p.PurchasePrice = req.PurchasePrice
	p.SalePrice = req.SalePrice
	p.ReorderLevel = req.ReorderLevel
	p.Published = req.Published
	p.OnlineDescription = req.OnlineDescription
	if req.ImageURL != "" {
		p.ImageURL = req.ImageURL
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
}

// ==================== 供应商 ====================

// CreateSupplier 新建供应商
func (s *CatalogService) CreateSupplier(ctx context.Context, pharmacyID int64, req *dto.SupplierRequest) (*model.Supplier, error) {
	sup := &model.Supplier{PharmacyID: pharmacyID, Active: true}
	applySupplier(sup, req)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Suppliers.Create(ctx, sup); err != nil {
			return err
		}
		if !sup.Active {
			return tx.Suppliers.Update(ctx, sup)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sup, nil
}

// GetSupplier 供应商详情
func (s *CatalogService) GetSupplier(ctx context.Context, pharmacyID, id int64) (*model.Supplier, error) {
	sup, err := s.store.Suppliers.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, ErrSupplierNotFound
	}
	return sup, nil
}

// UpdateSupplier 修改供应商
func (s *CatalogService) UpdateSupplier(ctx context.Context, pharmacyID, id int64, req *dto.SupplierRequest) (*model.Supplier, error) {
	sup, err := s.GetSupplier(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	applySupplier(sup, req)
	if err := s.store.Suppliers.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

// DeleteSupplier 删除供应商
func (s *CatalogService) DeleteSupplier(ctx context.Context, pharmacyID, id int64) error {
	if _, err := s.GetSupplier(ctx, pharmacyID, id); err != nil {
		return err
	}
	return s.store.Suppliers.Delete(ctx, pharmacyID, id)
}

// ListSuppliers 供应商列表
func (s *CatalogService) ListSuppliers(ctx context.Context, pharmacyID int64, req *dto.SupplierListRequest) (*dto.PageResult[model.Supplier], error) {
	list, total, err := s.store.Suppliers.List(ctx, repository.SupplierFilter{
		PharmacyID: pharmacyID,
		Keyword:    req.Keyword,
		Active:     req.Active,
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

func applySupplier(sup *model.Supplier, req *dto.SupplierRequest) {
	sup.Name = strings.TrimSpace(req.Name)
	sup.ContactName = req.ContactName
	sup.Phone = req.Phone
	sup.Email = req.Email
	sup.Address = req.Address
	sup.PaymentTermsDays = req.PaymentTermsDays
	if req.Active != nil {
		sup.Active = *req.Active
	}
}

// ==================== 错误定义 ====================

var (
	ErrCategoryNotFound = fmt.Errorf("分类%w", ErrNotFound)
	ErrCategoryInUse    = fmt.Errorf("%w: 分类下仍有商品", ErrInvalidState)
	ErrProductNotFound  = fmt.Errorf("商品%w", ErrNotFound)
	ErrSKUExists        = fmt.Errorf("SKU %w", ErrConflict)
	ErrProductHasStock  = fmt.Errorf("%w: 商品仍有库存", ErrInvalidState)
	ErrSupplierNotFound = fmt.Errorf("供应商%w", ErrNotFound)
	ErrStorageDisabled  = fmt.Errorf("%w: 未配置文件存储", ErrInvalidState)
)
