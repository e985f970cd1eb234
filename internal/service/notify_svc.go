package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"pharmacy_erp/internal/config"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

//go:generate mockgen -destination=mocks/push_mock.go -package=mocks pharmacy_erp/internal/service PushSender

// ==================== SSE 广播 ====================

// Broadcaster 进程内通知广播，每个在线连接一个订阅
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[int64]map[chan model.Notification]struct{}
}

// NewBroadcaster 创建广播器
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int64]map[chan model.Notification]struct{})}
}

// Subscribe 订阅用户的通知，返回取消函数
func (b *Broadcaster) Subscribe(userID int64) (<-chan model.Notification, func()) {
	ch := make(chan model.Notification, 16)
	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan model.Notification]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], ch)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Publish 推送给收件人的所有在线连接，返回送达的连接数；缓冲区满的连接跳过
func (b *Broadcaster) Publish(n model.Notification) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	delivered := 0
	for ch := range b.subs[n.RecipientID] {
		select {
		case ch <- n:
			delivered++
		default:
		}
	}
	return delivered
}

// Online 用户是否有在线连接
func (b *Broadcaster) Online(userID int64) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[userID]) > 0
}

// ==================== 推送 ====================

// PushSender 移动端推送
type PushSender interface {
	Send(ctx context.Context, token string, n *model.Notification) error
}

// FirebasePush FCM 推送
type FirebasePush struct {
	client *messaging.Client
}

// NewFirebasePush credentialsFile 为空时使用默认凭据
func NewFirebasePush(ctx context.Context, credentialsFile string) (*FirebasePush, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("初始化 Firebase 失败: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("初始化 FCM 失败: %w", err)
	}
	return &FirebasePush{client: client}, nil
}

func (p *FirebasePush) Send(ctx context.Context, token string, n *model.Notification) error {
	data := map[string]string{
		"notification_id": strconv.FormatInt(n.ID, 10),
		"topic":           n.Topic,
	}
	for k, v := range n.Payload {
		data[k] = fmt.Sprint(v)
	}
	_, err := p.client.Send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: n.Title, Body: n.Body},
		Data:         data,
		Android: &messaging.AndroidConfig{
			Priority:     "high",
			Notification: &messaging.AndroidNotification{Sound: "default", Priority: messaging.PriorityHigh},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{"apns-priority": "10"},
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{
				Alert: &messaging.ApsAlert{Title: n.Title, Body: n.Body},
				Sound: "default",
			}},
		},
	})
	return err
}

// ==================== Webhook / 短信网关 ====================

// GatewaySender 把通知转发到外部 Webhook 与短信网关
type GatewaySender struct {
	http       *resty.Client
	webhookURL string
	smsURL     string
	smsKey     string
}

// NewGatewaySender 两个地址都为空时返回 nil
func NewGatewaySender(cfg config.NotifyConfig) *GatewaySender {
	if cfg.WebhookURL == "" && cfg.SMSGatewayURL == "" {
		return nil
	}
	return &GatewaySender{
		http:       resty.New().SetTimeout(10 * time.Second),
		webhookURL: cfg.WebhookURL,
		smsURL:     cfg.SMSGatewayURL,
		smsKey:     cfg.SMSAPIKey,
	}
}

// Webhook 以 JSON 形式投递整条通知
func (g *GatewaySender) Webhook(ctx context.Context, n *model.Notification) (bool, error) {
	if g.webhookURL == "" {
		return false, nil
	}
	resp, err := g.http.R().
		SetContext(ctx).
		SetHeader("X-Idempotency-Key", fmt.Sprintf("notification-%d", n.ID)).
		SetBody(n).
		Post(g.webhookURL)
	if err != nil {
		return false, err
	}
	if resp.IsError() {
		return false, fmt.Errorf("webhook HTTP %d", resp.StatusCode())
	}
	return true, nil
}

// SMS 发送短信，手机号为空时跳过
func (g *GatewaySender) SMS(ctx context.Context, phone string, n *model.Notification) (bool, error) {
	if g.smsURL == "" || phone == "" {
		return false, nil
	}
	resp, err := g.http.R().
		SetContext(ctx).
		SetAuthToken(g.smsKey).
		SetBody(map[string]string{"to": phone, "text": n.Title + ": " + n.Body}).
		Post(g.smsURL)
	if err != nil {
		return false, err
	}
	if resp.IsError() {
		return false, fmt.Errorf("sms HTTP %d", resp.StatusCode())
	}
	return true, nil
}

// ==================== 投递 ====================

// 同时发送短信的主题
var smsTopics = map[string]bool{
	model.TopicAppointmentReminder: true,
	model.TopicOrderStatus:         true,
}

// NotifyService 投递待发送通知
type NotifyService struct {
	store       *repository.Store
	broadcaster *Broadcaster
	push        PushSender
	gateway     *GatewaySender
	maxAttempts int
	batchSize   int
	concurrency int
	log         *zap.Logger
}

// NewNotifyService push 与 gateway 可为 nil
func NewNotifyService(store *repository.Store, broadcaster *Broadcaster, push PushSender, gateway *GatewaySender, cfg config.NotifyConfig) *NotifyService {
	s := &NotifyService{
		store:       store,
		broadcaster: broadcaster,
		push:        push,
		gateway:     gateway,
		maxAttempts: cfg.MaxAttempts,
		batchSize:   cfg.BatchSize,
		concurrency: cfg.Concurrency,
		log:         logger.Named("notify"),
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = 5
	}
	if s.batchSize <= 0 {
		s.batchSize = 100
	}
	if s.concurrency <= 0 {
		s.concurrency = 8
	}
	return s
}

// Broadcaster SSE 订阅入口
func (s *NotifyService) Broadcaster() *Broadcaster {
	return s.broadcaster
}

// DispatchResult 一轮投递结果
type DispatchResult struct {
	Sent    int64 `json:"sent"`
	Failed  int64 `json:"failed"`
	Skipped int64 `json:"skipped"`
}

// Dispatch 取一批待投递通知并发投递
// 任一渠道成功即为 sent；全部渠道不可用为 skipped；失败累计到 maxAttempts 后不再重试
func (s *NotifyService) Dispatch(ctx context.Context) (*DispatchResult, error) {
	list, err := s.store.Notifications.ListPending(ctx, s.batchSize, s.maxAttempts)
	if err != nil {
		return nil, err
	}
	result := &DispatchResult{}
	if len(list) == 0 {
		return result, nil
	}

	userIDs := make([]int64, 0, len(list))
	seen := map[int64]bool{}
	for _, n := range list {
		if !seen[n.RecipientID] {
			seen[n.RecipientID] = true
			userIDs = append(userIDs, n.RecipientID)
		}
	}
	users, err := s.store.Users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	var sent, failed, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range list {
		n := &list[i]
		g.Go(func() error {
			delivered, err := s.deliver(gctx, n, byID[n.RecipientID])
			switch {
			case err != nil:
				attempts := n.Attempts + 1
				final := attempts >= s.maxAttempts
				if final {
					s.log.Warn("通知投递失败，不再重试", zap.Int64("id", n.ID), zap.Error(err))
				}
				failed.Add(1)
				return s.store.Notifications.MarkFailed(gctx, n.ID, attempts, err.Error(), final)
			case delivered:
				sent.Add(1)
				return s.store.Notifications.MarkDelivered(gctx, n.ID, model.DeliverySent)
			default:
				skipped.Add(1)
				return s.store.Notifications.MarkDelivered(gctx, n.ID, model.DeliverySkipped)
			}
		})
	}
	err = g.Wait()

	result.Sent, result.Failed, result.Skipped = sent.Load(), failed.Load(), skipped.Load()
	if result.Sent+result.Failed > 0 {
		s.log.Info("通知投递完成",
			zap.Int64("sent", result.Sent),
			zap.Int64("failed", result.Failed),
			zap.Int64("skipped", result.Skipped),
		)
	}
	return result, err
}

// deliver 依次尝试 SSE、推送、Webhook、短信
func (s *NotifyService) deliver(ctx context.Context, n *model.Notification, user *model.User) (bool, error) {
	delivered := false
	if s.broadcaster != nil && s.broadcaster.Publish(*n) > 0 {
		delivered = true
	}
	if user == nil || !user.IsActive() {
		return delivered, nil
	}

	var firstErr error
	if s.push != nil && user.DeviceToken != "" {
		if err := s.push.Send(ctx, user.DeviceToken, n); err != nil {
			firstErr = fmt.Errorf("push: %w", err)
		} else {
			delivered = true
		}
	}
	if s.gateway != nil {
		ok, err := s.gateway.Webhook(ctx, n)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("webhook: %w", err)
		}
		delivered = delivered || ok
		if smsTopics[n.Topic] {
			ok, err := s.gateway.SMS(ctx, user.Phone, n)
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("sms: %w", err)
			}
			delivered = delivered || ok
		}
	}
	if delivered {
		return true, nil
	}
	return false, firstErr
}

// Cleanup 删除 before 之前已读的通知
func (s *NotifyService) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	return s.store.Notifications.DeleteReadBefore(ctx, before)
}
