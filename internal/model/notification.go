package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 投递状态
const (
	DeliveryPending = "pending"
	DeliverySent    = "sent"
	DeliveryFailed  = "failed"
	DeliverySkipped = "skipped"
)

// 通知主题
const (
	TopicLeaveRequested      = "hr.leave_requested"
	TopicLeaveReviewed       = "hr.leave_reviewed"
	TopicLowStock            = "stock.low"
	TopicBatchExpiring       = "stock.expiring"
	TopicBatchExpired        = "stock.expired"
	TopicInvoicePaid         = "finance.invoice_paid"
	TopicAppointmentAssigned = "crm.appointment_assigned"
	TopicAppointmentReminder = "crm.appointment_reminder"
	TopicMessageNew          = "chat.message"
	TopicOrderStatus         = "shop.order_status"
	TopicOrderPlaced         = "shop.order_placed"
)

// Notification 站内通知，由 NotifyTask 异步投递到 SSE / 推送 / Webhook
type Notification struct {
	ID             int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID    int64             `gorm:"index:idx_notify_recipient;uniqueIndex:idx_notify_dedupe,where:dedupe_key <> '';not null" json:"recipient_id"`
	PharmacyID     int64             `gorm:"index;not null;default:0" json:"pharmacy_id"`
	Topic          string            `gorm:"size:64;not null" json:"topic"`
	Title          string            `gorm:"size:255;not null" json:"title"`
	Body           string            `gorm:"type:text" json:"body"`
	Payload        datatypes.JSONMap `json:"payload,omitempty"`
	DedupeKey      string            `gorm:"size:128;not null;default:'';uniqueIndex:idx_notify_dedupe,where:dedupe_key <> ''" json:"-"`
	ReadAt         *time.Time        `json:"read_at"`
	DeliveryStatus string            `gorm:"size:16;index;not null;default:'pending'" json:"delivery_status"`
	Attempts       int               `gorm:"not null;default:0" json:"-"`
	LastError      string            `gorm:"size:500" json:"-"`
	DeliveredAt    *time.Time        `json:"delivered_at"`
	CreatedAt      time.Time         `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationInput 通知内容
type NotificationInput struct {
	PharmacyID int64
	Topic      string
	Title      string
	Body       string
	Payload    map[string]interface{}
	// DedupeKey 非空时同一收件人只保留一条
	DedupeKey string
}

// Notify 在当前事务内为收件人写入一条通知（按 DedupeKey 去重）
func Notify(tx *gorm.DB, recipientID int64, in NotificationInput) error {
	if recipientID == 0 {
		return nil
	}
	db := tx.Session(&gorm.Session{NewDB: true})

	if in.DedupeKey != "" {
		var count int64
		err := db.Model(&Notification{}).
			Where("recipient_id = ? AND dedupe_key = ?", recipientID, in.DedupeKey).
			Count(&count).Error
		if err != nil || count > 0 {
			return err
		}
	}

	n := &Notification{
		RecipientID:    recipientID,
		PharmacyID:     in.PharmacyID,
		Topic:          in.Topic,
		Title:          in.Title,
		Body:           in.Body,
		DedupeKey:      in.DedupeKey,
		DeliveryStatus: DeliveryPending,
	}
	if len(in.Payload) > 0 {
		n.Payload = datatypes.JSONMap(in.Payload)
	}
	// 并发写入同一 (收件人, DedupeKey) 时由唯一索引兜底
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(n).Error
}

// NotifyPharmacyRoles 通知药房内指定角色的所有有效成员
// 去重按 (收件人, DedupeKey) 生效
func NotifyPharmacyRoles(tx *gorm.DB, pharmacyID int64, roles []string, in NotificationInput) error {
	var userIDs []int64
	err := tx.Session(&gorm.Session{NewDB: true}).
		Model(&PharmacyMember{}).
		Where("pharmacy_id = ? AND active = ? AND role IN ?", pharmacyID, true, roles).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return err
	}

	in.PharmacyID = pharmacyID
	for _, uid := range userIDs {
		if err := Notify(tx, uid, in); err != nil {
			return err
		}
	}
	return nil
}

// ActivityLog 审计日志（PostgreSQL 下按月分区）
type ActivityLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	PharmacyID int64          `gorm:"index;not null;default:0" json:"pharmacy_id"`
	UserID     int64          `gorm:"not null;default:0" json:"user_id"`
	Action     string         `gorm:"size:20;not null" json:"action"`
	Entity     string         `gorm:"size:64;not null" json:"entity"`
	RecordID   int64          `gorm:"not null;default:0" json:"record_id"`
	Changes    datatypes.JSON `json:"changes,omitempty"`
	IP         string         `gorm:"size:64" json:"ip"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
