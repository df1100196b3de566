package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message MongoDB 消息明细模型
// 创建后不可变，只有 is_read 允许 false -> true 单向翻转
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID uint64             `bson:"conversation_id" json:"conversationId"` // 关联 MySQL 的会话 ID
	SenderID       uint64             `bson:"sender_id" json:"senderId"`
	Content        string             `bson:"content" json:"content"`
	Media          *MediaRef          `bson:"media,omitempty" json:"media,omitempty"` // 最多一个附件
	IsRead         bool               `bson:"is_read" json:"isRead"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"` // 排序主键，_id 兜底同刻消息
}

// MediaRef 附件引用，只保存对象名，访问链接按需解析
type MediaRef struct {
	Object string `bson:"object" json:"object"`
	Kind   string `bson:"kind" json:"kind"` // image/video/audio
}
