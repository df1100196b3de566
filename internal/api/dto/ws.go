package dto

import "github.com/goccy/go-json"

// ClientEvent 客户端经 WebSocket 上行的信封
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ForwardMessageData 转发消息上行数据，原样中继给会话房间，不落库
type ForwardMessageData struct {
	ConversationID uint64      `json:"conversationId"`
	Message        interface{} `json:"message"`
}

// OnlineUsersDTO 在线用户列表推送
type OnlineUsersDTO struct {
	UserIDs []uint64 `json:"userIds"`
}

// NotificationPushDTO 新通知实时推送，只携带展示所需的最小字段
type NotificationPushDTO struct {
	Type    string `json:"type"`
	From    uint64 `json:"from"`
	Message string `json:"message"`
}
