package model

import "time"

// Post 帖子影子表
// 帖子体系由内容服务维护，这里只读取表情通知需要的作者字段
type Post struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  uint64    `gorm:"index;not null" json:"authorId"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Post) TableName() string { return "posts" }
