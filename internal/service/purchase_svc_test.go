package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
)

func TestPurchaseService_PartialAndFullReceipt(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "SERUM", 300, false)
	sup := &model.Supplier{PharmacyID: f.pharmacy.ID, Name: "OCP Répartition", Active: true}
	require.NoError(t, f.store.Suppliers.Create(ctx, sup))

	svc := NewPurchaseService(f.store)
	po, err := svc.Create(ctx, f.pharmacy.ID, &dto.PurchaseOrderRequest{
		SupplierID: sup.ID,
		Lines:      []dto.PurchaseOrderLineRequest{{ProductID: p.ID, Quantity: 10}},
	})
	require.NoError(t, err)
	require.Len(t, po.Lines, 1)
	assert.Equal(t, model.POStatusDraft, po.Status)
	assert.Equal(t, p.PurchasePrice, po.Lines[0].UnitCost, "默认取商品进价")

	_, err = svc.Receive(ctx, f.pharmacy.ID, po.ID, &dto.ReceiveLinesRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: po.Lines[0].ID, Quantity: 1, LotNumber: "X"}},
	})
	assert.True(t, errors.Is(err, ErrInvalidState), "草稿不能收货")

	po, err = svc.Send(ctx, f.pharmacy.ID, po.ID)
	require.NoError(t, err)
	assert.Equal(t, model.POStatusSent, po.Status)

	exp := time.Now().AddDate(1, 0, 0)
	lineID := po.Lines[0].ID
	po, err = svc.Receive(ctx, f.pharmacy.ID, po.ID, &dto.ReceiveLinesRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: lineID, Quantity: 4, LotNumber: "L1", ExpiryDate: &exp}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.POStatusPartial, po.Status)
	assert.Equal(t, 4, reloadProduct(t, f.store, p.ID).StockQuantity)

	_, err = svc.Receive(ctx, f.pharmacy.ID, po.ID, &dto.ReceiveLinesRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: lineID, Quantity: 7, LotNumber: "L2"}},
	})
	assert.True(t, errors.Is(err, model.ErrOverReceipt))

	po, err = svc.Receive(ctx, f.pharmacy.ID, po.ID, &dto.ReceiveLinesRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: lineID, Quantity: 6, LotNumber: "L2", ExpiryDate: &exp}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.POStatusReceived, po.Status)
	assert.Equal(t, 10, reloadProduct(t, f.store, p.ID).StockQuantity)

	_, err = svc.Cancel(ctx, f.pharmacy.ID, po.ID)
	assert.True(t, errors.Is(err, ErrInvalidState))
}
