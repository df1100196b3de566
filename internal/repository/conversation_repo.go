package repository

import (
	"Harbor/internal/model"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ConversationRepo interface {
	GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error)
	GetConversationByPeerKey(ctx context.Context, peerKey string) (*model.Conversation, error)
	CreateConversation(ctx context.Context, conv *model.Conversation, participantIDs []uint64) error
	IsParticipant(ctx context.Context, convID uint64, userID uint64) (bool, error)
	GetParticipantIDs(ctx context.Context, convID uint64) ([]uint64, error)
	GetConversationIDsForUser(ctx context.Context, userID uint64) ([]uint64, error)
	ListForUser(ctx context.Context, userID uint64, offset, limit int) ([]*model.Conversation, error)
	CountForUser(ctx context.Context, userID uint64) (int64, error)
	TouchLastMessage(ctx context.Context, convID uint64, messageID, preview string, senderID uint64, at time.Time) error
}

type conversationRepoImpl struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepoImpl{db: db}
}

// PeerKey 双人会话唯一键，小号在前，与参与者顺序无关
func PeerKey(a, b uint64) string {
	if a < b {
		return fmt.Sprintf("%d_%d", a, b)
	}
	return fmt.Sprintf("%d_%d", b, a)
}

// GetConversation 根据会话 ID 获取会话
func (s *conversationRepoImpl) GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.WithContext(ctx).First(&conv, convID).Error
	return &conv, err
}

// GetConversationByPeerKey 根据会话标识获取会话
func (s *conversationRepoImpl) GetConversationByPeerKey(ctx context.Context, peerKey string) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.WithContext(ctx).Where("peer_key = ?", peerKey).First(&conv).Error
	return &conv, err
}

// CreateConversation 开启事务创建会话及初始成员
func (s *conversationRepoImpl) CreateConversation(ctx context.Context, conv *model.Conversation, participantIDs []uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, uid := range participantIDs {
			p := &model.ConversationParticipant{
				ConversationID: conv.ID,
				UserID:         uid,
				JoinedAt:       time.Now(),
			}
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IsParticipant 检查用户是否是会话成员
func (s *conversationRepoImpl) IsParticipant(ctx context.Context, convID uint64, userID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetParticipantIDs 获取会话全部成员 ID
func (s *conversationRepoImpl) GetParticipantIDs(ctx context.Context, convID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.ConversationParticipant{}).
		Where("conversation_id = ?", convID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// GetConversationIDsForUser 获取用户参与的全部会话 ID，上线时用于加入房间
func (s *conversationRepoImpl) GetConversationIDsForUser(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.ConversationParticipant{}).
		Where("user_id = ?", userID).
		Pluck("conversation_id", &ids).Error
	return ids, err
}

// ListForUser 按最后活跃时间倒序返回用户的会话
func (s *conversationRepoImpl) ListForUser(ctx context.Context, userID uint64, offset, limit int) ([]*model.Conversation, error) {
	var convs []*model.Conversation
	err := s.db.WithContext(ctx).Table("conversations c").
		Select("c.*").
		Joins("JOIN conversation_participants p ON p.conversation_id = c.id").
		Where("p.user_id = ?", userID).
		Order("c.last_message_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&convs).Error
	return convs, err
}

// CountForUser 统计用户的会话总数
func (s *conversationRepoImpl) CountForUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ConversationParticipant{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// TouchLastMessage 新消息落库后推进会话的最新消息指针与活跃时间
func (s *conversationRepoImpl) TouchLastMessage(ctx context.Context, convID uint64, messageID, preview string, senderID uint64, at time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", convID).
		Updates(map[string]interface{}{
			"last_message_id":  messageID,
			"last_msg_preview": preview,
			"last_sender_id":   senderID,
			"last_message_at":  at,
		}).Error
}
