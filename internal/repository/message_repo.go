package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pharmacy_erp/internal/model"
)

// ==================== ConversationRepository 会话仓库 ====================

type ConversationRepository interface {
	Create(ctx context.Context, conv *model.Conversation) error
	GetByID(ctx context.Context, id int64) (*model.Conversation, error)
	IsParticipant(ctx context.Context, convID, userID int64) (bool, error)
	AddParticipants(ctx context.Context, convID int64, userIDs []int64) error
	ListForUser(ctx context.Context, pharmacyID, userID int64, p Pagination) ([]ConversationSummary, int64, error)
	MarkRead(ctx context.Context, convID, userID int64, at time.Time) error
	UnreadCount(ctx context.Context, convID, userID int64) (int64, error)
}

// ConversationSummary 会话列表项
type ConversationSummary struct {
	model.Conversation
	Unread int64 `json:"unread"`
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create 会话与参与人一起写入
func (r *conversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *conversationRepository) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Participants.User").
		First(&conv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &conv, err
}

func (r *conversationRepository) IsParticipant(ctx context.Context, convID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *conversationRepository) AddParticipants(ctx context.Context, convID int64, userIDs []int64) error {
	for _, uid := range userIDs {
		ok, err := r.IsParticipant(ctx, convID, uid)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		p := &model.ConversationParticipant{ConversationID: convID, UserID: uid}
		if err := r.db.WithContext(ctx).Omit("User").Create(p).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListForUser 用户参与的会话，最近活跃在前，附未读数
func (r *conversationRepository) ListForUser(ctx context.Context, pharmacyID, userID int64, p Pagination) ([]ConversationSummary, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Conversation{}).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("conversations.pharmacy_id = ? AND cp.user_id = ?", pharmacyID, userID)

	var convs []model.Conversation
	total, err := paginate(query, p, "conversations.last_message_at IS NULL, conversations.last_message_at DESC, conversations.id DESC", &convs)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ConversationSummary, 0, len(convs))
	for _, c := range convs {
		unread, err := r.UnreadCount(ctx, c.ID, userID)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ConversationSummary{Conversation: c, Unread: unread})
	}
	return out, total, nil
}

func (r *conversationRepository) MarkRead(ctx context.Context, convID, userID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		UpdateColumn("last_read_at", at).Error
}

// UnreadCount 他人发送且晚于 last_read_at 的消息数
func (r *conversationRepository) UnreadCount(ctx context.Context, convID, userID int64) (int64, error) {
	var participant model.ConversationParticipant
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		First(&participant).Error
	if err != nil {
		return 0, err
	}

	query := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("conversation_id = ? AND sender_id <> ?", convID, userID)
	if participant.LastReadAt != nil {
		query = query.Where("created_at > ?", *participant.LastReadAt)
	}
	var count int64
	err = query.Count(&count).Error
	return count, err
}

// ==================== MessageRepository 消息仓库 ====================

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	List(ctx context.Context, convID int64, p Pagination) ([]model.Message, int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 钩子更新会话摘要并通知参与人
func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) List(ctx context.Context, convID int64, p Pagination) ([]model.Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Message{}).Where("conversation_id = ?", convID)

	var list []model.Message
	total, err := paginate(query, p, "id DESC", &list)
	return list, total, err
}

// ==================== NotificationRepository 通知仓库 ====================

type NotificationRepository interface {
	List(ctx context.Context, filter NotificationFilter) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	ListPending(ctx context.Context, limit, maxAttempts int) ([]model.Notification, error)
	MarkDelivered(ctx context.Context, id int64, status string) error
	MarkFailed(ctx context.Context, id int64, attempts int, lastErr string, final bool) error
	DeleteReadBefore(ctx context.Context, before time.Time) (int64, error)
}

// NotificationFilter 通知筛选条件
type NotificationFilter struct {
	UserID     int64
	PharmacyID int64
	UnreadOnly bool
	Topic      string
	Pagination
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) List(ctx context.Context, filter NotificationFilter) ([]model.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Notification{}).Where("recipient_id = ?", filter.UserID)
	if filter.PharmacyID > 0 {
		query = query.Where("pharmacy_id = ?", filter.PharmacyID)
	}
	if filter.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}
	if filter.Topic != "" {
		query = query.Where("topic = ?", filter.Topic)
	}

	var list []model.Notification
	total, err := paginate(query, filter.Pagination, "id DESC", &list)
	return list, total, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// MarkRead 只能标记自己的通知
func (r *notificationRepository) MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND id IN ? AND read_at IS NULL", userID, ids).
		UpdateColumn("read_at", time.Now())
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", userID).
		UpdateColumn("read_at", time.Now())
	return res.RowsAffected, res.Error
}

// ListPending 待投递（含可重试的失败）通知，旧的在前
func (r *notificationRepository) ListPending(ctx context.Context, limit, maxAttempts int) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).
		Where("delivery_status IN ? AND attempts < ?", []string{model.DeliveryPending, model.DeliveryFailed}, maxAttempts).
		Order("id ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, id int64, status string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"delivery_status": status,
			"attempts":        gorm.Expr("attempts + 1"),
			"delivered_at":    &now,
			"last_error":      "",
		}).Error
}

// MarkFailed final 为 true 时不再重试
func (r *notificationRepository) MarkFailed(ctx context.Context, id int64, attempts int, lastErr string, final bool) error {
	if len(lastErr) > 500 {
		lastErr = lastErr[:500]
	}
	updates := map[string]interface{}{
		"delivery_status": model.DeliveryFailed,
		"attempts":        attempts,
		"last_error":      lastErr,
	}
	if final {
		updates["delivery_status"] = model.DeliverySkipped
	}
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", id).
		UpdateColumns(updates).Error
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("read_at IS NOT NULL AND created_at < ?", before).
		Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}

// ==================== ActivityLogRepository 审计日志仓库 ====================

type ActivityLogRepository interface {
	List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLog, int64, error)
}

// ActivityLogFilter 审计日志筛选条件
type ActivityLogFilter struct {
	PharmacyID int64
	UserID     int64
	Entity     string
	RecordID   int64
	DateRange
	Pagination
}

type activityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]model.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.ActivityLog{}).Where("pharmacy_id = ?", filter.PharmacyID)
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Entity != "" {
		query = query.Where("entity = ?", filter.Entity)
	}
	if filter.RecordID > 0 {
		query = query.Where("record_id = ?", filter.RecordID)
	}
	query = filter.DateRange.apply(query, "created_at")

	var list []model.ActivityLog
	total, err := paginate(query, filter.Pagination, "created_at DESC, id DESC", &list)
	return list, total, err
}
