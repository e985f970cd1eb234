package controller

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

const streamHeartbeat = 25 * time.Second

// MessageController 内部会话与通知
type MessageController struct {
	messageService *service.MessageService
	broadcaster    *service.Broadcaster
}

func NewMessageController(messageService *service.MessageService, broadcaster *service.Broadcaster) *MessageController {
	return &MessageController{messageService: messageService, broadcaster: broadcaster}
}

// ==================== 会话 ====================

// CreateConversation 新建会话
// @Summary 新建会话
// @Description 参与者必须是本药房成员；body 非空时作为首条消息
// @Tags Message
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.CreateConversationRequest true "会话"
// @Success 201 {object} model.Conversation
// @Router /pharmacies/{pharmacy_id}/conversations [post]
func (ctrl *MessageController) CreateConversation(c *gin.Context) {
	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	conv, err := ctrl.messageService.CreateConversation(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, conv)
}

// ListConversations 我参与的会话
// @Summary 会话列表
// @Tags Message
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} dto.PageResult[repository.ConversationSummary]
// @Router /pharmacies/{pharmacy_id}/conversations [get]
func (ctrl *MessageController) ListConversations(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.messageService.ListConversations(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetConversation 会话详情
// @Summary 会话详情
// @Tags Message
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "会话 ID"
// @Success 200 {object} model.Conversation
// @Router /pharmacies/{pharmacy_id}/conversations/{id} [get]
func (ctrl *MessageController) GetConversation(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	conv, err := ctrl.messageService.GetConversation(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, conv)
}

// AddParticipants 邀请成员
// @Summary 邀请成员
// @Tags Message
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "会话 ID"
// @Param request body dto.AddParticipantsRequest true "成员"
// @Success 200 {object} model.Conversation
// @Router /pharmacies/{pharmacy_id}/conversations/{id}/participants [post]
func (ctrl *MessageController) AddParticipants(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.AddParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	conv, err := ctrl.messageService.AddParticipants(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id, req.UserIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, conv)
}

// PostMessage 发送消息
// @Summary 发送消息
// @Description 其他参与者各收到一条通知
// @Tags Message
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "会话 ID"
// @Param request body dto.PostMessageRequest true "消息"
// @Success 201 {object} model.Message
// @Router /pharmacies/{pharmacy_id}/conversations/{id}/messages [post]
func (ctrl *MessageController) PostMessage(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := ctrl.messageService.PostMessage(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, msg)
}

// ListMessages 消息列表
// @Summary 消息列表
// @Tags Message
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "会话 ID"
// @Success 200 {object} dto.PageResult[model.Message]
// @Router /pharmacies/{pharmacy_id}/conversations/{id}/messages [get]
func (ctrl *MessageController) ListMessages(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.messageService.ListMessages(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// MarkConversationRead 会话已读
// @Summary 会话已读
// @Tags Message
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "会话 ID"
// @Router /pharmacies/{pharmacy_id}/conversations/{id}/read [post]
func (ctrl *MessageController) MarkConversationRead(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := ctrl.messageService.MarkConversationRead(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// ==================== 通知 ====================

// ListNotifications 我的通知
// @Summary 通知列表
// @Tags Notification
// @Security BearerAuth
// @Param pharmacy_id query int false "药房"
// @Param unread_only query bool false "仅未读"
// @Param topic query string false "主题"
// @Success 200 {object} dto.PageResult[model.Notification]
// @Router /notifications [get]
func (ctrl *MessageController) ListNotifications(c *gin.Context) {
	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	var pharmacyID int64
	if c.Query("pharmacy_id") != "" {
		id, valid := queryID(c, "pharmacy_id")
		if !valid {
			return
		}
		pharmacyID = id
	}
	result, err := ctrl.messageService.ListNotifications(c.Request.Context(), middleware.GetUserID(c), pharmacyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// UnreadCount 未读数
// @Summary 未读通知数
// @Tags Notification
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /notifications/unread-count [get]
func (ctrl *MessageController) UnreadCount(c *gin.Context) {
	n, err := ctrl.messageService.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"unread": n})
}

// MarkRead 标记已读
// @Summary 标记通知已读
// @Tags Notification
// @Accept json
// @Security BearerAuth
// @Param request body dto.MarkReadRequest true "通知"
// @Success 200 {object} dto.MarkReadResult
// @Router /notifications/read [post]
func (ctrl *MessageController) MarkRead(c *gin.Context) {
	var req dto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var (
		result *dto.MarkReadResult
		err    error
	)
	if req.All {
		result, err = ctrl.messageService.MarkAllNotificationsRead(c.Request.Context(), middleware.GetUserID(c))
	} else {
		result, err = ctrl.messageService.MarkNotificationsRead(c.Request.Context(), middleware.GetUserID(c), req.IDs)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// Stream 通知实时推送（SSE）
// @Summary 通知实时推送
// @Description text/event-stream；事件 notification 携带通知 JSON，定时发送 ping
// @Tags Notification
// @Produce text/event-stream
// @Security BearerAuth
// @Router /notifications/stream [get]
func (ctrl *MessageController) Stream(c *gin.Context) {
	ch, cancel := ctrl.broadcaster.Subscribe(middleware.GetUserID(c))
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(streamHeartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case n, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("notification", n)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
