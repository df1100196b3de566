package dto

import "time"

// StartChatReq 发起会话请求体，目标用户必填
type StartChatReq struct {
	TargetUserID uint64 `json:"target_user_id" binding:"required"`
}

// SendMessageReq 发送消息请求体
// ConversationID 为空时按 TargetUserID 找到或新建会话
type SendMessageReq struct {
	ConversationID uint64    `json:"conversation_id"`
	TargetUserID   uint64    `json:"target_user_id"`
	Content        string    `json:"content"`
	Media          *MediaReq `json:"media"`
}

// MediaReq 消息附件引用，object 为上传接口返回的对象名
type MediaReq struct {
	Object string `json:"object" binding:"required"`
	Kind   string `json:"kind" binding:"required"` // image/video/audio
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID             string    `json:"id"`
	ConversationID uint64    `json:"conversationId"`
	SenderID       uint64    `json:"senderId"`
	Content        string    `json:"content"`
	MediaURL       string    `json:"mediaUrl,omitempty"`
	MediaKind      string    `json:"mediaKind,omitempty"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MessagePageDTO 消息分页响应，消息按时间正序排列
type MessagePageDTO struct {
	Messages []*MessageDTO `json:"messages"`
	HasMore  bool          `json:"hasMore"`
}

// ChatDTO 会话列表项响应
type ChatDTO struct {
	ConversationID uint64    `json:"conversationId"`
	PeerID         uint64    `json:"peerId"`
	LastMsgPreview string    `json:"lastMsgPreview"`
	LastSenderID   uint64    `json:"lastSenderId"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
	UnreadCount    int64     `json:"unreadCount"`
}

// ChatListDTO 会话列表分页响应
type ChatListDTO struct {
	Chats   []*ChatDTO `json:"chats"`
	HasMore bool       `json:"hasMore"`
}
