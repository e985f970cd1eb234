package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
)

func TestStorefrontService_CartCheckoutConfirmCancel(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "SPRAY", 650, false)
	f.batch(t, p, "LOT-S", 5, 180)

	shopper := &model.User{Username: "client", Email: "client@example.com", Password: "x", FirstName: "Paul", LastName: "Petit", Role: model.RoleCustomer, Status: model.UserStatusActive}
	require.NoError(t, f.store.Users.Create(ctx, shopper))

	svc := NewStorefrontService(f.store)
	cart, err := svc.CreateCart(ctx, &dto.CreateCartRequest{PharmacyID: f.pharmacy.ID})
	require.NoError(t, err)
	require.NotEmpty(t, cart.Token)

	cart, err = svc.SetCartItem(ctx, cart.Token, &dto.CartItemRequest{ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(1300), cart.Total)
	assert.True(t, cart.Items[0].Available)

	cart, err = svc.SetCartItem(ctx, cart.Token, &dto.CartItemRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, cart.ItemCount, "同一商品数量覆盖")

	order, err := svc.CheckoutCart(ctx, cart.Token, shopper.ID, &dto.CheckoutCartRequest{DeliveryMode: model.DeliveryPickup, Phone: "0611223344"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, int64(1950), order.TotalTTC)
	require.NotNil(t, order.CustomerID, "自动建顾客档案")
	assert.Equal(t, 5, reloadProduct(t, f.store, p.ID).StockQuantity, "下单不扣库存")

	cart, err = svc.GetCart(ctx, cart.Token)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.UpdateStatus(ctx, f.pharmacy.ID, f.manager.ID, order.ID, &dto.OrderStatusRequest{Status: model.OrderShipped})
	assert.True(t, errors.Is(err, ErrOrderTransition))

	order, err = svc.UpdateStatus(ctx, f.pharmacy.ID, f.manager.ID, order.ID, &dto.OrderStatusRequest{Status: model.OrderConfirmed})
	require.NoError(t, err)
	require.NotNil(t, order.SaleID)
	assert.Equal(t, 2, reloadProduct(t, f.store, p.ID).StockQuantity)

	sale, err := NewSaleService(f.store).Get(ctx, f.pharmacy.ID, *order.SaleID)
	require.NoError(t, err)
	assert.Equal(t, model.ChannelOnline, sale.Channel)
	assert.Equal(t, int64(1950), sale.TotalTTC)

	order, err = svc.UpdateStatus(ctx, f.pharmacy.ID, f.manager.ID, order.ID, &dto.OrderStatusRequest{Status: model.OrderCancelled, Notes: "rupture"})
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, order.Status)
	assert.Equal(t, 5, reloadProduct(t, f.store, p.ID).StockQuantity, "取消回库")

	var notified int64
	require.NoError(t, f.store.DB().Model(&model.Notification{}).
		Where("recipient_id = ? AND topic = ?", shopper.ID, model.TopicOrderStatus).
		Count(&notified).Error)
	assert.Equal(t, int64(2), notified, "确认与取消各通知一次")

	mine, err := svc.MyOrders(ctx, shopper.ID, &dto.OrderListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)
}

func TestStorefrontService_CheckoutRules(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	rxProduct := f.product(t, "ANTIBIO", 900, true)
	f.batch(t, rxProduct, "LOT-R", 1, 90)
	hidden := f.product(t, "HIDDEN", 100, false)
	hidden.Published = false
	require.NoError(t, f.store.Products.Update(ctx, hidden))

	shopper := &model.User{Username: "client2", Email: "client2@example.com", Password: "x", Role: model.RoleCustomer, Status: model.UserStatusActive}
	require.NoError(t, f.store.Users.Create(ctx, shopper))

	svc := NewStorefrontService(f.store)
	cart, err := svc.CreateCart(ctx, &dto.CreateCartRequest{PharmacyID: f.pharmacy.ID})
	require.NoError(t, err)

	_, err = svc.SetCartItem(ctx, cart.Token, &dto.CartItemRequest{ProductID: hidden.ID, Quantity: 1})
	assert.True(t, errors.Is(err, ErrProductNotFound), "未上架商品不能加购")

	_, err = svc.CheckoutCart(ctx, cart.Token, shopper.ID, &dto.CheckoutCartRequest{DeliveryMode: model.DeliveryPickup, Phone: "1"})
	assert.True(t, errors.Is(err, ErrCartEmpty))

	_, err = svc.SetCartItem(ctx, cart.Token, &dto.CartItemRequest{ProductID: rxProduct.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.CheckoutCart(ctx, cart.Token, shopper.ID, &dto.CheckoutCartRequest{DeliveryMode: model.DeliveryPickup, Phone: "1"})
	assert.True(t, errors.Is(err, model.ErrPrescriptionRequired))

	_, err = svc.SetCartItem(ctx, cart.Token, &dto.CartItemRequest{ProductID: rxProduct.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.CheckoutCart(ctx, cart.Token, shopper.ID, &dto.CheckoutCartRequest{DeliveryMode: model.DeliveryPickup, Phone: "1"})
	assert.True(t, errors.Is(err, model.ErrInsufficientStock))

	_, err = svc.ListProducts(ctx, f.pharmacy.ID+99, &dto.ProductListRequest{})
	assert.True(t, errors.Is(err, ErrStorefrontClosed))

	list, err := svc.ListProducts(ctx, f.pharmacy.ID, &dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total, "只列出已上架商品")
	assert.Equal(t, 1, list.List[0].Available)
}
