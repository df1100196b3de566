package model

import "time"

// Friend 好友关系表
// 状态只有 pending 与 accepted，拒绝请求时直接删除记录
type Friend struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RequesterID uint64    `gorm:"uniqueIndex:idx_requester_recipient;index" json:"requesterId"`
	RecipientID uint64    `gorm:"uniqueIndex:idx_requester_recipient;index" json:"recipientId"`
	Status      string    `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Friend) TableName() string { return "friends" }
