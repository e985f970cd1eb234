package dto

// CreateConversationRequest 新建会话
type CreateConversationRequest struct {
	Subject        string  `json:"subject" binding:"required,max=255"`
	ParticipantIDs []int64 `json:"participant_ids" binding:"required,min=1,max=50"`
	Body           string  `json:"body"`
}

// PostMessageRequest 发送消息
type PostMessageRequest struct {
	Body          string `json:"body" binding:"required,max=5000"`
	AttachmentURL string `json:"attachment_url" binding:"omitempty,url"`
}

// NotificationListRequest 通知列表
type NotificationListRequest struct {
	UnreadOnly bool   `form:"unread_only"`
	Topic      string `form:"topic"`
	PageQuery
}

// MarkReadResult 标记已读结果
type MarkReadResult struct {
	Updated int64 `json:"updated"`
	Unread  int64 `json:"unread"`
}

// AddParticipantsRequest 邀请成员加入会话
type AddParticipantsRequest struct {
	UserIDs []int64 `json:"user_ids" binding:"required,min=1,max=50"`
}

// MarkReadRequest 按 ID 标记通知已读，all=true 时忽略 ids
type MarkReadRequest struct {
	IDs []int64 `json:"ids" binding:"max=500"`
	All bool    `json:"all"`
}
