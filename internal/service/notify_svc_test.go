package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pharmacy_erp/internal/config"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/service/mocks"
)

func notifyUser(t *testing.T, f fixture, userID int64, topic, key string) {
	t.Helper()
	require.NoError(t, model.Notify(f.store.DB(), userID, model.NotificationInput{
		PharmacyID: f.pharmacy.ID,
		Topic:      topic,
		Title:      "Test",
		Body:       key,
		DedupeKey:  key,
	}))
}

func notificationStatus(t *testing.T, f fixture, userID int64) model.Notification {
	t.Helper()
	var n model.Notification
	require.NoError(t, f.store.DB().Where("recipient_id = ?", userID).First(&n).Error)
	return n
}

func TestBroadcaster_SubscribePublish(t *testing.T) {
	b := NewBroadcaster()
	ch, cancel := b.Subscribe(7)
	assert.True(t, b.Online(7))

	assert.Equal(t, 1, b.Publish(model.Notification{ID: 1, RecipientID: 7, Title: "hello"}))
	assert.Equal(t, 0, b.Publish(model.Notification{ID: 2, RecipientID: 8}))

	select {
	case n := <-ch:
		assert.Equal(t, "hello", n.Title)
	case <-time.After(time.Second):
		t.Fatal("未收到通知")
	}

	cancel()
	cancel()
	assert.False(t, b.Online(7))
	_, open := <-ch
	assert.False(t, open, "取消后通道关闭")
}

func TestNotifyService_DispatchPush(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	f.manager.DeviceToken = "device-1"
	require.NoError(t, f.store.Users.Update(ctx, f.manager))

	notifyUser(t, f, f.manager.ID, model.TopicLowStock, "k1")
	notifyUser(t, f, f.cashier.ID, model.TopicLowStock, "k2")

	ctrl := gomock.NewController(t)
	push := mocks.NewMockPushSender(ctrl)
	push.EXPECT().Send(gomock.Any(), "device-1", gomock.Any()).Return(nil).Times(1)

	svc := NewNotifyService(f.store, NewBroadcaster(), push, nil, config.NotifyConfig{})
	result, err := svc.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Sent)
	assert.Equal(t, int64(1), result.Skipped, "无可用渠道")
	assert.Equal(t, int64(0), result.Failed)

	assert.Equal(t, model.DeliverySent, notificationStatus(t, f, f.manager.ID).DeliveryStatus)
	assert.Equal(t, model.DeliverySkipped, notificationStatus(t, f, f.cashier.ID).DeliveryStatus)

	result, err = svc.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, DispatchResult{}, *result, "已投递的不再处理")
}

func TestNotifyService_DispatchRetryThenGiveUp(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	f.manager.DeviceToken = "device-1"
	require.NoError(t, f.store.Users.Update(ctx, f.manager))
	notifyUser(t, f, f.manager.ID, model.TopicLowStock, "k1")

	ctrl := gomock.NewController(t)
	push := mocks.NewMockPushSender(ctrl)
	push.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("fcm unavailable")).Times(2)

	svc := NewNotifyService(f.store, nil, push, nil, config.NotifyConfig{MaxAttempts: 2})

	result, err := svc.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Failed)
	n := notificationStatus(t, f, f.manager.ID)
	assert.Equal(t, model.DeliveryFailed, n.DeliveryStatus)
	assert.Equal(t, 1, n.Attempts)
	assert.Contains(t, n.LastError, "fcm unavailable")

	_, err = svc.Dispatch(ctx)
	require.NoError(t, err)
	n = notificationStatus(t, f, f.manager.ID)
	assert.Equal(t, model.DeliverySkipped, n.DeliveryStatus, "达到上限后放弃")
	assert.Equal(t, 2, n.Attempts)

	result, err = svc.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Failed)
}

func TestNotifyService_DispatchWebhookAndSMS(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	f.cashier.Phone = "+33600000000"
	require.NoError(t, f.store.Users.Update(ctx, f.cashier))

	var webhooks, sms atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hook":
			assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))
			webhooks.Add(1)
		case "/sms":
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "+33600000000", body["to"])
			sms.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.NotifyConfig{WebhookURL: srv.URL + "/hook", SMSGatewayURL: srv.URL + "/sms", SMSAPIKey: "secret"}
	notifyUser(t, f, f.cashier.ID, model.TopicAppointmentReminder, "rdv")
	notifyUser(t, f, f.manager.ID, model.TopicLowStock, "stock")

	svc := NewNotifyService(f.store, nil, nil, NewGatewaySender(cfg), cfg)
	result, err := svc.Dispatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Sent)
	assert.Equal(t, int32(2), webhooks.Load())
	assert.Equal(t, int32(1), sms.Load(), "只有提醒类主题发短信")
}

func TestNewGatewaySender_Disabled(t *testing.T) {
	assert.Nil(t, NewGatewaySender(config.NotifyConfig{}))
}
