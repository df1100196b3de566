package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 通知类型枚举
const (
	NotifyFriendRequest         = "friend_request"
	NotifyAcceptedFriendRequest = "accepted_friend_request"
	NotifyDeclinedFriendRequest = "declined_friend_request"
	NotifyInfo                  = "info"
	NotifyReact                 = "react"
	NotifyComment               = "comment"
	NotifyReply                 = "reply"
	NotifyShare                 = "share"
	NotifyCommunity             = "community"
)

// ValidNotifyType 校验通知类型是否在枚举内
func ValidNotifyType(t string) bool {
	switch t {
	case NotifyFriendRequest, NotifyAcceptedFriendRequest, NotifyDeclinedFriendRequest,
		NotifyInfo, NotifyReact, NotifyComment, NotifyReply, NotifyShare, NotifyCommunity:
		return true
	}
	return false
}

// About 通知关联的主体实体引用
type About struct {
	Kind string `bson:"kind" json:"kind"` // Post/Comment/Reply/Reaction/Friend/Share/Community
	ID   string `bson:"id" json:"id"`
}

// Notification 通知模型
// 只有 is_read 单向翻转；好友请求类通知的 type 会随请求结果改写一次
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID uint64             `bson:"recipient_id" json:"recipientId"`
	SenderID    uint64             `bson:"sender_id" json:"senderId"`
	Type        string             `bson:"type" json:"type"`
	About       About              `bson:"about" json:"about"`
	Message     string             `bson:"message" json:"message"`
	IsRead      bool               `bson:"is_read" json:"isRead"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
