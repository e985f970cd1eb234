package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/pkg/logger"
)

// MessageService 内部会话与站内通知
type MessageService struct {
	store *repository.Store
	log   *zap.Logger
}

// NewMessageService 创建消息服务
func NewMessageService(store *repository.Store) *MessageService {
	return &MessageService{store: store, log: logger.Named("message")}
}

// ==================== 会话 ====================

// CreateConversation 新建会话，参与人须为本药房有效成员；Body 非空时同时发出第一条消息
func (s *MessageService) CreateConversation(ctx context.Context, pharmacyID, userID int64, req *dto.CreateConversationRequest) (*model.Conversation, error) {
	ids := []int64{userID}
	seen := map[int64]bool{userID: true}
	for _, id := range req.ParticipantIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) < 2 {
		return nil, fmt.Errorf("%w: 至少需要一位其他参与人", ErrInvalidInput)
	}

	var convID int64
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		for _, id := range ids[1:] {
			m, err := tx.Members.GetActiveMember(ctx, pharmacyID, id)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("%w: 用户 #%d", ErrMemberNotFound, id)
			}
		}

		conv := &model.Conversation{PharmacyID: pharmacyID, Subject: req.Subject}
		for _, id := range ids {
			conv.Participants = append(conv.Participants, model.ConversationParticipant{UserID: id})
		}
		if err := tx.Conversations.Create(ctx, conv); err != nil {
			return err
		}
		convID = conv.ID

		if req.Body == "" {
			return nil
		}
		return tx.Messages.Create(ctx, &model.Message{ConversationID: conv.ID, SenderID: userID, Body: req.Body})
	})
	if err != nil {
		return nil, err
	}
	return s.GetConversation(ctx, pharmacyID, userID, convID)
}

// GetConversation 会话详情（含参与人），仅参与人可见
func (s *MessageService) GetConversation(ctx context.Context, pharmacyID, userID, id int64) (*model.Conversation, error) {
	conv, err := s.store.Conversations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv == nil || conv.PharmacyID != pharmacyID {
		return nil, ErrConversationNotFound
	}
	for _, p := range conv.Participants {
		if p.UserID == userID {
			return conv, nil
		}
	}
	return nil, ErrNotParticipant
}

// ListConversations 我参与的会话，附未读数
func (s *MessageService) ListConversations(ctx context.Context, pharmacyID, userID int64, page dto.PageQuery) (*dto.PageResult[repository.ConversationSummary], error) {
	list, total, err := s.store.Conversations.ListForUser(ctx, pharmacyID, userID, toPagination(page))
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// AddParticipants 邀请成员加入会话
func (s *MessageService) AddParticipants(ctx context.Context, pharmacyID, userID, id int64, userIDs []int64) (*model.Conversation, error) {
	if _, err := s.GetConversation(ctx, pharmacyID, userID, id); err != nil {
		return nil, err
	}
	for _, uid := range userIDs {
		m, err := s.store.Members.GetActiveMember(ctx, pharmacyID, uid)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("%w: 用户 #%d", ErrMemberNotFound, uid)
		}
	}
	if err := s.store.Conversations.AddParticipants(ctx, id, userIDs); err != nil {
		return nil, err
	}
	return s.GetConversation(ctx, pharmacyID, userID, id)
}

// PostMessage 发送消息，会话摘要与参与人通知由钩子完成
func (s *MessageService) PostMessage(ctx context.Context, pharmacyID, userID, convID int64, req *dto.PostMessageRequest) (*model.Message, error) {
	if _, err := s.GetConversation(ctx, pharmacyID, userID, convID); err != nil {
		return nil, err
	}
	msg := &model.Message{ConversationID: convID, SenderID: userID, Body: req.Body, AttachmentURL: req.AttachmentURL}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Messages.Create(ctx, msg)
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages 会话消息，最新在前
func (s *MessageService) ListMessages(ctx context.Context, pharmacyID, userID, convID int64, page dto.PageQuery) (*dto.PageResult[model.Message], error) {
	if _, err := s.GetConversation(ctx, pharmacyID, userID, convID); err != nil {
		return nil, err
	}
	list, total, err := s.store.Messages.List(ctx, convID, toPagination(page))
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// MarkConversationRead 会话标记已读
func (s *MessageService) MarkConversationRead(ctx context.Context, pharmacyID, userID, convID int64) error {
	if _, err := s.GetConversation(ctx, pharmacyID, userID, convID); err != nil {
		return err
	}
	return s.store.Conversations.MarkRead(ctx, convID, userID, time.Now())
}

// ==================== 通知 ====================

// ListNotifications 我的通知；pharmacyID 为 0 时不限药房
func (s *MessageService) ListNotifications(ctx context.Context, userID, pharmacyID int64, req *dto.NotificationListRequest) (*dto.PageResult[model.Notification], error) {
	list, total, err := s.store.Notifications.List(ctx, repository.NotificationFilter{
		UserID:     userID,
		PharmacyID: pharmacyID,
		UnreadOnly: req.UnreadOnly,
		Topic:      req.Topic,
		Pagination: toPagination(req.PageQuery),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewPageResult(list, total), nil
}

// UnreadCount 未读通知数
func (s *MessageService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.store.Notifications.CountUnread(ctx, userID)
}

// MarkNotificationsRead 标记指定通知已读
func (s *MessageService) MarkNotificationsRead(ctx context.Context, userID int64, ids []int64) (*dto.MarkReadResult, error) {
	n, err := s.store.Notifications.MarkRead(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	return s.markResult(ctx, userID, n)
}

// MarkAllNotificationsRead 全部已读
func (s *MessageService) MarkAllNotificationsRead(ctx context.Context, userID int64) (*dto.MarkReadResult, error) {
	n, err := s.store.Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.markResult(ctx, userID, n)
}

func (s *MessageService) markResult(ctx context.Context, userID, updated int64) (*dto.MarkReadResult, error) {
	unread, err := s.store.Notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MarkReadResult{Updated: updated, Unread: unread}, nil
}

// ==================== 错误定义 ====================

var (
	ErrConversationNotFound = fmt.Errorf("会话%w", ErrNotFound)
	ErrNotParticipant       = fmt.Errorf("%w: 不是会话参与人", ErrForbidden)
)
