package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

// StorefrontService 网店：公开浏览、购物车、下单与员工处理订单
type StorefrontService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewStorefrontService 创建网店服务
func NewStorefrontService(store *repository.Store) *StorefrontService {
	return &StorefrontService{store: store, log: logger.Named("storefront")}
}

// ==================== 公开浏览 ====================

// ListPharmacies 开通网店且正常营业的药房
func (s *StorefrontService) ListPharmacies(ctx context.Context, req *dto.PharmacyListRequest) (*dto.PageResult[dto.StorefrontPharmacy], error) {
	list, total, err := s.store.Pharmacies.List(ctx, repository.PharmacyFilter{
		Keyword:        req.Keyword,
		City:           req.City,
		StorefrontOnly: true,
		Pagination:     toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StorefrontPharmacy, 0, len(list))
	for _, p := range list {
		out = append(out, dto.StorefrontPharmacy{
			ID: p.ID, Code: p.Code, Name: p.Name, Address: p.Address,
			City: p.City, PostalCode: p.PostalCode, Phone: p.Phone, Currency: p.Currency,
		})
	}
	return dto.NewPageResult(out, total), nil
}

// storefrontPharmacy 药房须开通网店
func (s *StorefrontService) storefrontPharmacy(ctx context.Context, pharmacyID int64) (*model.Pharmacy, error) {
	p, err := s.store.Pharmacies.GetByID(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.StorefrontEnabled || p.Status != model.PharmacyStatusActive {
		return nil, ErrStorefrontClosed
	}
	return p, nil
}

// ListProducts 已上架商品，附可售数量
func (s *StorefrontService) ListProducts(ctx context.Context, pharmacyID int64, req *dto.ProductListRequest) (*dto.PageResult[dto.StorefrontProduct], error) {
	if _, err := s.storefrontPharmacy(ctx, pharmacyID); err != nil {
		return nil, err
	}
	list, total, err := s.store.Products.List(ctx, repository.ProductFilter{
		PharmacyID:           pharmacyID,
		Keyword:              req.Keyword,
		CategoryID:           req.CategoryID,
		Published:            ptr(true),
		Active:               ptr(true),
		RequiresPrescription: req.RequiresPrescription,
		Pagination:           toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.StorefrontProduct, 0, len(list))
	for i := range list {
		available, err := s.store.Batches.AvailableQuantity(ctx, pharmacyID, list[i].ID, now)
		if err != nil {
			return nil, err
		}
		out = append(out, storefrontProduct(&list[i], available))
	}
	return dto.NewPageResult(out, total), nil
}

// GetProduct 商品详情，未上架视为不存在
func (s *StorefrontService) GetProduct(ctx context.Context, pharmacyID, productID int64) (*dto.StorefrontProduct, error) {
	if _, err := s.storefrontPharmacy(ctx, pharmacyID); err != nil {
		return nil, err
	}
	p, err := s.publishedProduct(ctx, s.store, pharmacyID, productID)
	if err != nil {
		return nil, err
	}
	available, err := s.store.Batches.AvailableQuantity(ctx, pharmacyID, p.ID, time.Now())
	if err != nil {
		return nil, err
	}
	out := storefrontProduct(p, available)
	return &out, nil
}

func (s *StorefrontService) publishedProduct(ctx context.Context, store *repository.Store, pharmacyID, productID int64) (*model.Product, error) {
	p, err := store.Products.GetByID(ctx, pharmacyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Published || !p.Active {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func storefrontProduct(p *model.Product, available int64) dto.StorefrontProduct {
	return dto.StorefrontProduct{
		ID:                   p.ID,
		PharmacyID:           p.PharmacyID,
		Name:                 p.Name,
		GenericName:          p.GenericName,
		Form:                 p.Form,
		Dosage:               p.Dosage,
		Manufacturer:         p.Manufacturer,
		CategoryID:           p.CategoryID,
		Price:                p.SalePrice,
		RequiresPrescription: p.RequiresPrescription,
		Description:          p.OnlineDescription,
		ImageURL:             p.ImageURL,
		Available:            int(available),
		InStock:              available > 0,
	}
}

// ==================== 购物车 ====================

// CreateCart 新建匿名购物车
func (s *StorefrontService) CreateCart(ctx context.Context, req *dto.CreateCartRequest) (*dto.CartView, error) {
	if _, err := s.storefrontPharmacy(ctx, req.PharmacyID); err != nil {
		return nil, err
	}
	cart := &model.Cart{PharmacyID: req.PharmacyID}
	if err := s.store.Carts.Create(ctx, cart); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cart.Token)
}

// GetCart 购物车内容，价格与库存按当前值计算
func (s *StorefrontService) GetCart(ctx context.Context, token string) (*dto.CartView, error) {
	cart, err := s.cart(ctx, token)
	if err != nil {
		return nil, err
	}
	view := &dto.CartView{
		Token:      cart.Token,
		PharmacyID: cart.PharmacyID,
		ExpiresAt:  cart.ExpiresAt,
		Items:      make([]dto.CartItemView, 0, len(cart.Items)),
	}
	now := time.Now()
	for _, item := range cart.Items {
		if item.Product == nil {
			continue
		}
		available, err := s.store.Batches.AvailableQuantity(ctx, cart.PharmacyID, item.ProductID, now)
		if err != nil {
			return nil, err
		}
		line := int64(item.Quantity) * item.Product.SalePrice
		view.Items = append(view.Items, dto.CartItemView{
			ProductID:            item.ProductID,
			Name:                 item.Product.Name,
			UnitPrice:            item.Product.SalePrice,
			Quantity:             item.Quantity,
			LineTotal:            line,
			RequiresPrescription: item.Product.RequiresPrescription,
			Available:            item.Product.Published && item.Product.Active && available >= int64(item.Quantity),
		})
		view.ItemCount += item.Quantity
		view.Total += line
	}
	return view, nil
}

func (s *StorefrontService) cart(ctx context.Context, token string) (*model.Cart, error) {
	cart, err := s.store.Carts.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

// SetCartItem 加购或修改数量，同时延长有效期
func (s *StorefrontService) SetCartItem(ctx context.Context, token string, req *dto.CartItemRequest) (*dto.CartView, error) {
	cart, err := s.cart(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, err := s.publishedProduct(ctx, s.store, cart.PharmacyID, req.ProductID); err != nil {
		return nil, err
	}
	if err := s.store.Carts.UpsertItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.store.Carts.Touch(ctx, cart.ID, time.Now().Add(model.CartTTL)); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, token)
}

// RemoveCartItem 移除商品
func (s *StorefrontService) RemoveCartItem(ctx context.Context, token string, productID int64) (*dto.CartView, error) {
	cart, err := s.cart(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.store.Carts.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, token)
}

// CleanupCarts 删除过期购物车
func (s *StorefrontService) CleanupCarts(ctx context.Context) (int64, error) {
	return s.store.Carts.DeleteExpired(ctx, time.Now())
}

// ==================== 下单 ====================

// CheckoutCart 购物车转订单，须登录顾客账号；价格在此锁定
func (s *StorefrontService) CheckoutCart(ctx context.Context, token string, userID int64, req *dto.CheckoutCartRequest) (*model.OnlineOrder, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, ErrUserNotFound
	}

	var order *model.OnlineOrder
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		cart, err := tx.Carts.GetByToken(ctx, token)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}
		if cart.UserID != nil && *cart.UserID != userID {
			return ErrCartNotFound
		}

		customer, err := s.customerFor(ctx, tx, cart.PharmacyID, user)
		if err != nil {
			return err
		}

		order = &model.OnlineOrder{
			PharmacyID:      cart.PharmacyID,
			UserID:          userID,
			CustomerID:      &customer.ID,
			PrescriptionID:  req.PrescriptionID,
			DeliveryMode:    req.DeliveryMode,
			DeliveryAddress: req.DeliveryAddress,
			Phone:           req.Phone,
			Notes:           req.Notes,
		}
		now := time.Now()
		needsRx := false
		for _, item := range cart.Items {
			p, err := s.publishedProduct(ctx, tx, cart.PharmacyID, item.ProductID)
			if err != nil {
				return fmt.Errorf("%w: #%d", model.ErrProductUnavailable, item.ProductID)
			}
			available, err := tx.Batches.AvailableQuantity(ctx, cart.PharmacyID, p.ID, now)
			if err != nil {
				return err
			}
			if available < int64(item.Quantity) {
				return fmt.Errorf("%w: %s", model.ErrInsufficientStock, p.Name)
			}
			needsRx = needsRx || p.RequiresPrescription
			order.Items = append(order.Items, model.OnlineOrderItem{
				ProductID: p.ID, Name: p.Name, Quantity: item.Quantity, UnitPrice: p.SalePrice,
			})
		}

		if needsRx && order.PrescriptionID == nil {
			return model.ErrPrescriptionRequired
		}
		if order.PrescriptionID != nil {
			if _, err := usablePrescription(ctx, tx, cart.PharmacyID, *order.PrescriptionID, customer.ID); err != nil {
				return err
			}
		}

		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := tx.Carts.AssignUser(ctx, cart.ID, userID); err != nil {
			return err
		}
		return tx.Carts.Clear(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("网店下单",
		zap.Int64("pharmacy_id", order.PharmacyID),
		zap.String("number", order.Number),
		zap.Int64("total_ttc", order.TotalTTC),
	)
	return order, nil
}

// customerFor 用户在该药房的顾客档案，没有则按账号资料建档
func (s *StorefrontService) customerFor(ctx context.Context, tx *repository.Store, pharmacyID int64, user *model.User) (*model.Customer, error) {
	c, err := tx.Customers.GetByUser(ctx, pharmacyID, user.ID)
	if err != nil || c != nil {
		return c, err
	}
	c = &model.Customer{
		PharmacyID: pharmacyID,
		UserID:     &user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		Email:      user.Email,
	}
	if c.LastName == "" {
		c.LastName = user.Username
	}
	if err := tx.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// usablePrescription 处方须属于该顾客、待配药且未过期
func usablePrescription(ctx context.Context, tx *repository.Store, pharmacyID, id, customerID int64) (*model.Prescription, error) {
	rx, err := tx.Prescriptions.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if rx == nil {
		return nil, ErrPrescriptionNotFound
	}
	if rx.CustomerID != customerID {
		return nil, fmt.Errorf("%w: 处方不属于该顾客", ErrInvalidInput)
	}
	if rx.Status != model.PrescriptionPending || rx.IsExpired(time.Now()) {
		return nil, fmt.Errorf("%w: 处方状态 %s", ErrPrescriptionNotUsable, rx.Status)
	}
	return rx, nil
}

// MyOrders 顾客自己的订单
func (s *StorefrontService) MyOrders(ctx context.Context, userID int64, req *dto.OrderListRequest) (*dto.PageResult[model.OnlineOrder], error) {
	list, total, err := s.store.Orders.List(ctx, repository.OnlineOrderFilter{
		UserID:     userID,
		Status:     req.Status,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// MyOrder 顾客订单详情
func (s *StorefrontService) MyOrder(ctx context.Context, userID, id int64) (*model.OnlineOrder, error) {
	order, err := s.store.Orders.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ==================== 员工处理 ====================

// ListOrders 药房订单列表
func (s *StorefrontService) ListOrders(ctx context.Context, pharmacyID int64, req *dto.OrderListRequest) (*dto.PageResult[model.OnlineOrder], error) {
	list, total, err := s.store.Orders.List(ctx, repository.OnlineOrderFilter{
		PharmacyID: pharmacyID,
		Status:     req.Status,
		DateRange:  toDateRange(req.PeriodQuery),
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// GetOrder 订单详情
func (s *StorefrontService) GetOrder(ctx context.Context, pharmacyID, id int64) (*model.OnlineOrder, error) {
	order, err := s.store.Orders.GetByID(ctx, pharmacyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 员工推进订单状态
// 确认时生成线上销售单并出库；已确认的订单取消时作废销售单回库
func (s *StorefrontService) UpdateStatus(ctx context.Context, pharmacyID, staffID, id int64, req *dto.OrderStatusRequest) (*model.OnlineOrder, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		order, err := tx.Orders.GetForUpdate(ctx, pharmacyID, id)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if !model.CanTransition(order.Status, req.Status) {
			return fmt.Errorf("%w: %s → %s", ErrOrderTransition, order.Status, req.Status)
		}

		now := time.Now()
		switch req.Status {
		case model.OrderConfirmed:
			saleID, err := s.convert(ctx, tx, order, staffID)
			if err != nil {
				return err
			}
			order.SaleID = &saleID
			order.ConfirmedAt = &now
		case model.OrderCancelled:
			if order.SaleID != nil {
				reason := req.Notes
				if reason == "" {
					reason = "online order " + order.Number + " cancelled"
				}
				if err := cancelSale(ctx, tx, pharmacyID, *order.SaleID, reason); err != nil {
					return err
				}
			}
			order.CancelledAt = &now
		}
		if req.Notes != "" {
			order.Notes = req.Notes
		}
		order.Status = req.Status
		order.Items = nil
		return tx.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("订单状态变更",
		zap.Int64("pharmacy_id", pharmacyID),
		zap.Int64("order_id", id),
		zap.String("status", req.Status),
	)
	return s.GetOrder(ctx, pharmacyID, id)
}

// convert 按下单价格生成线上销售单，FEFO 出库由销售钩子完成
func (s *StorefrontService) convert(ctx context.Context, tx *repository.Store, order *model.OnlineOrder, staffID int64) (int64, error) {
	sale := &model.Sale{
		PharmacyID:     order.PharmacyID,
		CashierID:      staffID,
		CustomerID:     order.CustomerID,
		PrescriptionID: order.PrescriptionID,
		OnlineOrderID:  &order.ID,
		Channel:        model.ChannelOnline,
	}
	for _, item := range order.Items {
		sale.Lines = append(sale.Lines, model.SaleLine{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}

	var rx *model.Prescription
	if order.PrescriptionID != nil && order.CustomerID != nil {
		p, err := usablePrescription(ctx, tx, order.PharmacyID, *order.PrescriptionID, *order.CustomerID)
		if err != nil {
			return 0, err
		}
		rx = p
	}

	if err := tx.Sales.Create(ctx, sale); err != nil {
		return 0, err
	}
	if rx != nil {
		now := time.Now()
		rx.Status = model.PrescriptionDispensed
		rx.DispensedAt = &now
		rx.SaleID = &sale.ID
		rx.Customer = nil
		if err := tx.Prescriptions.Update(ctx, rx); err != nil {
			return 0, err
		}
	}
	return sale.ID, nil
}

// PendingCount 待处理订单数
func (s *StorefrontService) PendingCount(ctx context.Context, pharmacyID int64) (int64, error) {
	return s.store.Orders.CountByStatus(ctx, pharmacyID, model.OrderPending)
}

// ==================== 错误定义 ====================

var (
	ErrStorefrontClosed = fmt.Errorf("网店%w", ErrNotFound)
	ErrCartNotFound     = fmt.Errorf("购物车%w", ErrNotFound)
	ErrCartEmpty        = fmt.Errorf("%w: 购物车为空", ErrInvalidInput)
	ErrOrderNotFound    = fmt.Errorf("订单%w", ErrNotFound)
	ErrOrderTransition  = fmt.Errorf("%w: 订单状态不允许变更", ErrInvalidState)
)
