package model

import "time"

// Reaction 帖子表情表，(post_id, user_id) 唯一，一人一帖最多一个表情
type Reaction struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"uniqueIndex:idx_post_user;index" json:"postId"`
	UserID    uint64    `gorm:"uniqueIndex:idx_post_user" json:"userId"`
	Type      string    `gorm:"type:varchar(16);not null" json:"type"` // cool/love/haha/sad/angry
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Reaction) TableName() string { return "reactions" }
