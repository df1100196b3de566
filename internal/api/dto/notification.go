package dto

import "time"

// AboutDTO 通知关联的主体实体
type AboutDTO struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// NotificationDTO 通知明细响应
type NotificationDTO struct {
	ID          string    `json:"id"`
	RecipientID uint64    `json:"recipientId"`
	SenderID    uint64    `json:"senderId"`
	Type        string    `json:"type"`
	About       AboutDTO  `json:"about"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NotificationListDTO 通知分页响应
type NotificationListDTO struct {
	Notifications []*NotificationDTO `json:"notifications"`
	TotalPages    int64              `json:"totalPages"`
}

// MarkNotificationReadReq 标记单条通知已读请求体
type MarkNotificationReadReq struct {
	NotificationID string `json:"notification_id" binding:"required"`
}

// UnreadCountDTO 未读计数响应
type UnreadCountDTO struct {
	Count int64 `json:"count"`
}
