package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
)

func TestDashboardService_Dashboard(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "SPASFON", 450, false)
	f.batch(t, p, "LOT-1", 6, 10)
	p = ptr(reloadProduct(t, f.store, p.ID))
	p.ReorderLevel = 5
	require.NoError(t, f.store.Products.Update(ctx, p))

	_, err := NewSaleService(f.store).Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		Lines:    []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 2}},
		Payments: []dto.PaymentRequest{{Method: model.PayCard, Amount: 900}},
	})
	require.NoError(t, err)
	f.customer(t, nil)

	d, err := NewDashboardService(f.store, 0).Dashboard(ctx, f.pharmacy.ID, f.manager.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(900), d.TodayRevenue)
	assert.Equal(t, int64(1), d.TodaySalesCount)
	assert.Equal(t, int64(900), d.MonthRevenue)
	assert.Equal(t, int64(1), d.LowStockCount, "余量 4 低于补货线 5")
	assert.Equal(t, int64(1), d.ExpiringSoonCount)
	assert.Equal(t, int64(1), d.CustomerCount)
	assert.Equal(t, dayStart(time.Now()), d.Date)
}

func TestExportService_SalesJournalAndValuation(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	p := f.product(t, "GAVISCON", 700, false)
	f.batch(t, p, "LOT-G", 10, 120)

	_, err := NewSaleService(f.store).Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		Lines:    []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 3}},
		Payments: []dto.PaymentRequest{{Method: model.PayCash, Amount: 2500}},
	})
	require.NoError(t, err)

	svc := NewExportService(f.store, NewStockService(f.store))
	file, err := svc.SalesJournal(ctx, f.pharmacy.ID, dto.PeriodQuery{})
	require.NoError(t, err)
	assert.Contains(t, file.Filename, "sales_")

	x, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer x.Close()
	assert.NotContains(t, x.GetSheetList(), "Sheet1")

	rows, err := x.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "21", rows[1][7])

	payments, err := x.GetRows("Payments")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, model.PayCash, payments[1][0])
	assert.Equal(t, "21", payments[1][1], "现金扣除找零")

	file, err = svc.StockValuation(ctx, f.pharmacy.ID)
	require.NoError(t, err)
	x2, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer x2.Close()
	rows, err = x2.GetRows("Valuation")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "GAVISCON", rows[1][0])
	assert.Equal(t, "7", rows[1][2])
}
