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

func TestFinanceService_InvoiceFromSale(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	c := f.customer(t, nil)
	p := f.product(t, "TENSIO", 1000, false)
	f.batch(t, p, "LOT-T", 5, 300)

	sale, err := NewSaleService(f.store).Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		CustomerID: &c.ID,
		Lines:      []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 2}},
		Payments:   []dto.PaymentRequest{{Method: model.PayCard, Amount: 1200}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(800), sale.DueAmount)

	svc := NewFinanceService(f.store, nil)
	inv, err := svc.CreateFromSale(ctx, f.pharmacy.ID, f.manager.ID, &dto.InvoiceFromSaleRequest{SaleID: sale.ID, Issue: true})
	require.NoError(t, err)
	assert.Equal(t, "Jeanne Martin", inv.BillTo)
	assert.Equal(t, int64(2000), inv.TotalTTC)
	assert.Equal(t, int64(1200), inv.AmountPaid, "柜台收款计入发票")
	assert.Equal(t, int64(800), inv.Balance)
	assert.Equal(t, model.InvoicePartial, inv.Status)

	_, err = svc.CreateFromSale(ctx, f.pharmacy.ID, f.manager.ID, &dto.InvoiceFromSaleRequest{SaleID: sale.ID})
	assert.True(t, errors.Is(err, ErrSaleInvoiced))

	_, err = svc.AddPayment(ctx, f.pharmacy.ID, inv.ID, &dto.InvoicePaymentRequest{Method: model.PayCheque, Amount: 900})
	assert.True(t, errors.Is(err, model.ErrOverpayment))

	inv, err = svc.AddPayment(ctx, f.pharmacy.ID, inv.ID, &dto.InvoicePaymentRequest{Method: model.PayCheque, Amount: 800})
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, inv.Status)
	assert.Equal(t, int64(0), inv.Balance)

	_, err = svc.CancelInvoice(ctx, f.pharmacy.ID, inv.ID)
	assert.True(t, errors.Is(err, ErrInvalidState))

	_, err = NewSaleService(f.store).Cancel(ctx, f.pharmacy.ID, sale.ID, "trop tard")
	assert.True(t, errors.Is(err, ErrSaleInvoiced), "已开票的销售不能作废")
}

func TestFinanceService_ChangeNettedFromCash(t *testing.T) {
	sale := &model.Sale{
		ChangeAmount: 300,
		Payments: []model.Payment{
			{Method: model.PayCard, Amount: 500},
			{Method: model.PayCash, Amount: 200},
			{Method: model.PayCash, Amount: 1000},
		},
	}
	got := counterPayments(sale)
	require.Len(t, got, 2)
	assert.Equal(t, int64(500), got[0].Amount)
	assert.Equal(t, model.PayCash, got[1].Method)
	assert.Equal(t, int64(900), got[1].Amount)
}

func TestFinanceService_ChangeWithoutCash(t *testing.T) {
	sale := &model.Sale{
		ChangeAmount: 150,
		Payments: []model.Payment{
			{Method: model.PayCard, Amount: 600},
			{Method: model.PayCheque, Amount: 100},
			{Method: model.PayCash, Amount: 50},
		},
	}
	got := counterPayments(sale)
	require.Len(t, got, 1, "现金与末笔支票用于抵扣找零")
	assert.Equal(t, model.PayCard, got[0].Method)
	assert.Equal(t, int64(600), got[0].Amount)

	sale.ChangeAmount = 120
	sale.Payments = []model.Payment{
		{Method: model.PayCard, Amount: 500},
		{Method: model.PayCheque, Amount: 400},
	}
	got = counterPayments(sale)
	require.Len(t, got, 2)
	assert.Equal(t, int64(500), got[0].Amount)
	assert.Equal(t, int64(280), got[1].Amount)
}

func TestFinanceService_CardOverpaymentInvoiced(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "GLUCO", 900, false)
	f.batch(t, p, "LOT-G", 3, 300)

	sale, err := NewSaleService(f.store).Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		Lines:    []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 1}},
		Payments: []dto.PaymentRequest{{Method: model.PayCard, Amount: 1000}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), sale.ChangeAmount)

	inv, err := NewFinanceService(f.store, nil).CreateFromSale(ctx, f.pharmacy.ID, f.manager.ID, &dto.InvoiceFromSaleRequest{SaleID: sale.ID, Issue: true})
	require.NoError(t, err)
	assert.Equal(t, int64(900), inv.AmountPaid)
	assert.Equal(t, int64(0), inv.Balance)
	assert.Equal(t, model.InvoicePaid, inv.Status)
}
