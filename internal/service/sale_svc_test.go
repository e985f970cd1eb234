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

func TestSaleService_CheckoutFEFOAndCancel(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "DOLI500", 500, false)
	soon := f.batch(t, p, "LOT-A", 3, 10)
	later := f.batch(t, p, "LOT-B", 10, 200)

	svc := NewSaleService(f.store)
	sale, err := svc.Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		Lines:    []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 5}},
		Payments: []dto.PaymentRequest{{Method: model.PayCash, Amount: 3000}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), sale.TotalTTC)
	assert.Equal(t, int64(500), sale.ChangeAmount)
	assert.Equal(t, int64(0), sale.DueAmount)
	assert.NotEmpty(t, sale.Number)

	assert.Equal(t, 0, reloadBatch(t, f.store, soon.ID).QuantityRemaining, "最早到期批次先出库")
	assert.Equal(t, 8, reloadBatch(t, f.store, later.ID).QuantityRemaining)
	assert.Equal(t, 8, reloadProduct(t, f.store, p.ID).StockQuantity)

	cancelled, err := svc.Cancel(ctx, f.pharmacy.ID, sale.ID, "erreur de caisse")
	require.NoError(t, err)
	assert.Equal(t, model.SaleCancelled, cancelled.Status)
	assert.Equal(t, 13, reloadProduct(t, f.store, p.ID).StockQuantity)

	_, err = svc.Cancel(ctx, f.pharmacy.ID, sale.ID, "again")
	assert.True(t, errors.Is(err, ErrSaleNotCompleted))
}

func TestSaleService_CheckoutInsufficientStock(t *testing.T) {
	f := seedFixture(t)
	p := f.product(t, "IBU200", 400, false)
	f.batch(t, p, "LOT-1", 2, 30)

	_, err := NewSaleService(f.store).Checkout(context.Background(), f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		Lines: []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 3}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInsufficientStock))
	assert.Equal(t, 2, reloadProduct(t, f.store, p.ID).StockQuantity, "失败时整单回滚")
}

func TestSaleService_PrescriptionDispensedAndRestored(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "AMOX1G", 800, true)
	f.batch(t, p, "LOT-RX", 5, 90)
	c := f.customer(t, nil)

	svc := NewSaleService(f.store)
	_, err := svc.Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		Lines: []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, model.ErrPrescriptionRequired))

	rx := f.prescription(t, c.ID)
	sale, err := svc.Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		PrescriptionID: &rx.ID,
		Lines:          []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 1}},
		Payments:       []dto.PaymentRequest{{Method: model.PayCard, Amount: 800}},
	})
	require.NoError(t, err)
	require.NotNil(t, sale.CustomerID)
	assert.Equal(t, c.ID, *sale.CustomerID, "顾客取自处方")

	got, err := f.store.Prescriptions.GetByID(ctx, f.pharmacy.ID, rx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionDispensed, got.Status)

	_, err = svc.Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		PrescriptionID: &rx.ID,
		Lines:          []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, ErrPrescriptionNotUsable), "处方不能重复配药")

	_, err = svc.Cancel(ctx, f.pharmacy.ID, sale.ID, "retour")
	require.NoError(t, err)
	got, err = f.store.Prescriptions.GetByID(ctx, f.pharmacy.ID, rx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PrescriptionPending, got.Status)
}

func TestSaleService_DailySummary(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "VITC", 1000, false)
	f.batch(t, p, "LOT-C", 10, 365)

	svc := NewSaleService(f.store)
	for _, qty := range []int{1, 2} {
		_, err := svc.Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
			Lines:    []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: qty}},
			Payments: []dto.PaymentRequest{{Method: model.PayCash, Amount: 5000}},
		})
		require.NoError(t, err)
	}

	sum, err := svc.DailySummary(ctx, f.pharmacy.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Count)
	assert.Equal(t, int64(3000), sum.TotalTTC)
	assert.Equal(t, int64(3000), sum.ByMethod[model.PayCash], "现金扣除找零")
}
