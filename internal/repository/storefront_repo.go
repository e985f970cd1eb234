package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pharmacy_erp/internal/model"
)

// ==================== CartRepository 购物车仓库 ====================

type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	GetByToken(ctx context.Context, token string) (*model.Cart, error)
	UpsertItem(ctx context.Context, cartID, productID int64, qty int) error
	RemoveItem(ctx context.Context, cartID, productID int64) error
	Clear(ctx context.Context, cartID int64) error
	Touch(ctx context.Context, cartID int64, expiresAt time.Time) error
	AssignUser(ctx context.Context, cartID, userID int64) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

// GetByToken 未过期的购物车及条目
func (r *cartRepository) GetByToken(ctx context.Context, token string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product").
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cart, err
}

// UpsertItem 同一商品只保留一行，数量覆盖
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, productID int64, qty int) error {
	item := &model.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(item).Error
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepository) Clear(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error
}

func (r *cartRepository) Touch(ctx context.Context, cartID int64, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		UpdateColumns(map[string]interface{}{"expires_at": expiresAt, "updated_at": time.Now()}).Error
}

func (r *cartRepository) AssignUser(ctx context.Context, cartID, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		UpdateColumn("user_id", userID).Error
}

// DeleteExpired 物理删除过期购物车及条目
func (r *cartRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Unscoped().Model(&model.Cart{}).Where("expires_at < ?", before).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("cart_id IN ?", ids).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Unscoped().Where("id IN ?", ids).Delete(&model.Cart{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

// ==================== OnlineOrderRepository 网店订单仓库 ====================

type OnlineOrderRepository interface {
	Create(ctx context.Context, order *model.OnlineOrder) error
	GetByID(ctx context.Context, pharmacyID, id int64) (*model.OnlineOrder, error)
	GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.OnlineOrder, error)
	GetForUser(ctx context.Context, userID, id int64) (*model.OnlineOrder, error)
	Update(ctx context.Context, order *model.OnlineOrder) error
	List(ctx context.Context, filter OnlineOrderFilter) ([]model.OnlineOrder, int64, error)
	CountByStatus(ctx context.Context, pharmacyID int64, status string) (int64, error)
}

// OnlineOrderFilter 订单筛选条件
type OnlineOrderFilter struct {
	PharmacyID int64
	UserID     int64
	Status     string
	DateRange
	Pagination
}

type onlineOrderRepository struct {
	db *gorm.DB
}

func NewOnlineOrderRepository(db *gorm.DB) OnlineOrderRepository {
	return &onlineOrderRepository{db: db}
}

func (r *onlineOrderRepository) Create(ctx context.Context, order *model.OnlineOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *onlineOrderRepository) GetByID(ctx context.Context, pharmacyID, id int64) (*model.OnlineOrder, error) {
	var order model.OnlineOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("pharmacy_id = ?", pharmacyID).
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *onlineOrderRepository) GetForUpdate(ctx context.Context, pharmacyID, id int64) (*model.OnlineOrder, error) {
	var order model.OnlineOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pharmacy_id = ?", pharmacyID).
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Where("online_order_id = ?", order.ID).Order("id ASC").Find(&order.Items).Error
	return &order, err
}

// GetForUser 顾客只能看到自己的订单
func (r *onlineOrderRepository) GetForUser(ctx context.Context, userID, id int64) (*model.OnlineOrder, error) {
	var order model.OnlineOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// Update 只更新表头，状态变化由钩子通知顾客
func (r *onlineOrderRepository) Update(ctx context.Context, order *model.OnlineOrder) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(order).Error
}

func (r *onlineOrderRepository) List(ctx context.Context, filter OnlineOrderFilter) ([]model.OnlineOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.OnlineOrder{})
	if filter.PharmacyID > 0 {
		query = query.Where("pharmacy_id = ?", filter.PharmacyID)
	}
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	query = filter.DateRange.apply(query, "created_at")

	var list []model.OnlineOrder
	total, err := paginate(query, filter.Pagination, "id DESC", &list, "Items")
	return list, total, err
}

func (r *onlineOrderRepository) CountByStatus(ctx context.Context, pharmacyID int64, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OnlineOrder{}).
		Where("pharmacy_id = ? AND status = ?", pharmacyID, status).
		Count(&count).Error
	return count, err
}
