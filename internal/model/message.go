package model

import (
	"fmt"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

const messagePreviewLen = 120

// Conversation 内部会话
type Conversation struct {
	BaseModel
	AuditMixin
	PharmacyID         int64      `gorm:"index;not null" json:"pharmacy_id"`
	Subject            string     `gorm:"size:255" json:"subject"`
	LastMessageAt      *time.Time `gorm:"index" json:"last_message_at"`
	LastMessagePreview string     `gorm:"size:255" json:"last_message_preview"`

	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// ConversationParticipant 会话参与人
type ConversationParticipant struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID int64      `gorm:"uniqueIndex:idx_participant;not null" json:"conversation_id"`
	UserID         int64      `gorm:"uniqueIndex:idx_participant;index;not null" json:"user_id"`
	LastReadAt     *time.Time `json:"last_read_at"`
	CreatedAt      time.Time  `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

// Message 会话消息
type Message struct {
	BaseModel
	ConversationID int64  `gorm:"index;not null" json:"conversation_id"`
	SenderID       int64  `gorm:"index;not null" json:"sender_id"`
	Body           string `gorm:"type:text;not null" json:"body"`
	AttachmentURL  string `gorm:"size:500" json:"attachment_url"`
}

func (Message) TableName() string {
	return "messages"
}

// AfterCreate 更新会话摘要，发送者标记已读，通知其他参与人
func (m *Message) AfterCreate(tx *gorm.DB) error {
	db := tx.Session(&gorm.Session{NewDB: true})
	preview := truncateRunes(m.Body, messagePreviewLen)

	if err := db.Model(&Conversation{}).Where("id = ?", m.ConversationID).UpdateColumns(map[string]interface{}{
		"last_message_at":      m.CreatedAt,
		"last_message_preview": preview,
		"updated_at":           m.CreatedAt,
	}).Error; err != nil {
		return err
	}

	if err := db.Model(&ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", m.ConversationID, m.SenderID).
		UpdateColumn("last_read_at", m.CreatedAt).Error; err != nil {
		return err
	}

	var conv Conversation
	if err := db.Select("id", "pharmacy_id", "subject").First(&conv, m.ConversationID).Error; err != nil {
		return err
	}
	var recipients []int64
	if err := db.Model(&ConversationParticipant{}).
		Where("conversation_id = ? AND user_id <> ?", m.ConversationID, m.SenderID).
		Pluck("user_id", &recipients).Error; err != nil {
		return err
	}
	for _, uid := range recipients {
		err := Notify(tx, uid, NotificationInput{
			PharmacyID: conv.PharmacyID,
			Topic:      TopicMessageNew,
			Title:      conv.Subject,
			Body:       preview,
			Payload:    map[string]interface{}{"conversation_id": m.ConversationID, "message_id": m.ID},
			DedupeKey:  fmt.Sprintf("message:%d", m.ID),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
