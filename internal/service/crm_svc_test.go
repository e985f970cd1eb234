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

func TestCRMService_AppointmentConflict(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	c := f.customer(t, nil)
	svc := NewCRMService(f.store, nil)

	at := dayStart(time.Now()).AddDate(0, 0, 2).Add(10 * time.Hour)
	first, err := svc.CreateAppointment(ctx, f.pharmacy.ID, &dto.AppointmentRequest{
		CustomerID: c.ID, StaffUserID: &f.manager.ID, Type: model.AppointmentVaccination,
		ScheduledAt: at, DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentScheduled, first.Status)

	_, err = svc.CreateAppointment(ctx, f.pharmacy.ID, &dto.AppointmentRequest{
		CustomerID: c.ID, StaffUserID: &f.manager.ID, Type: model.AppointmentConsultation,
		ScheduledAt: at.Add(15 * time.Minute), DurationMinutes: 30,
	})
	assert.True(t, errors.Is(err, ErrAppointmentConflict))

	_, err = svc.CreateAppointment(ctx, f.pharmacy.ID, &dto.AppointmentRequest{
		CustomerID: c.ID, StaffUserID: &f.manager.ID, Type: model.AppointmentConsultation,
		ScheduledAt: at.Add(30 * time.Minute), DurationMinutes: 30,
	})
	assert.NoError(t, err, "首尾相接不算冲突")

	_, err = svc.SetAppointmentStatus(ctx, f.pharmacy.ID, first.ID, &dto.AppointmentStatusRequest{Status: model.AppointmentCancelled})
	require.NoError(t, err)
	_, err = svc.SetAppointmentStatus(ctx, f.pharmacy.ID, first.ID, &dto.AppointmentStatusRequest{Status: model.AppointmentCompleted})
	assert.True(t, errors.Is(err, ErrAppointmentClosed))
}

func TestCRMService_SendRemindersOnce(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	c := f.customer(t, nil)
	svc := NewCRMService(f.store, nil)

	_, err := svc.CreateAppointment(ctx, f.pharmacy.ID, &dto.AppointmentRequest{
		CustomerID: c.ID, StaffUserID: &f.manager.ID, Type: model.AppointmentFollowup,
		ScheduledAt: time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	sent, err := svc.SendReminders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = svc.SendReminders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, sent, "每个预约只提醒一次")

	var count int64
	require.NoError(t, f.store.DB().Model(&model.Notification{}).
		Where("recipient_id = ? AND topic = ?", f.manager.ID, model.TopicAppointmentReminder).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCRMService_LoyaltyEarnAndAdjust(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	c := f.customer(t, nil)
	p := f.product(t, "CREME", 2500, false)
	f.batch(t, p, "LOT-L", 10, 400)

	_, err := NewSaleService(f.store).Checkout(ctx, f.pharmacy.ID, f.cashier.ID, &dto.CheckoutRequest{
		CustomerID: &c.ID,
		Lines:      []dto.CheckoutLineRequest{{ProductID: p.ID, Quantity: 2}},
		Payments:   []dto.PaymentRequest{{Method: model.PayCard, Amount: 5000}},
	})
	require.NoError(t, err)

	svc := NewCRMService(f.store, nil)
	acc, err := svc.GetLoyalty(ctx, f.pharmacy.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), acc.PointsBalance, "每 1 欧 1 积分")

	_, err = svc.AdjustLoyalty(ctx, f.pharmacy.ID, c.ID, f.manager.ID, &dto.LoyaltyAdjustRequest{Points: -80, Note: "correction"})
	assert.True(t, errors.Is(err, model.ErrInsufficientPoints))

	acc, err = svc.AdjustLoyalty(ctx, f.pharmacy.ID, c.ID, f.manager.ID, &dto.LoyaltyAdjustRequest{Points: 20, Note: "geste commercial"})
	require.NoError(t, err)
	assert.Equal(t, int64(70), acc.PointsBalance)
}
