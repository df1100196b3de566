package repository

import (
	"Harbor/internal/model"
	"context"

	"gorm.io/gorm"
)

// ReactionGroup 按类型聚合的表情统计
type ReactionGroup struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type ReactionRepo interface {
	GetByPostAndUser(ctx context.Context, postID, userID uint64) (*model.Reaction, error)
	Create(ctx context.Context, reaction *model.Reaction) error
	UpdateType(ctx context.Context, id uint64, reactionType string) error
	Delete(ctx context.Context, id uint64) error
	GroupByType(ctx context.Context, postID uint64) ([]*ReactionGroup, error)
	ListUserIDsByType(ctx context.Context, postID uint64, reactionType string) ([]uint64, error)
}

type reactionRepoImpl struct {
	db *gorm.DB
}

func NewReactionRepo(db *gorm.DB) ReactionRepo {
	return &reactionRepoImpl{db: db}
}

func (s *reactionRepoImpl) GetByPostAndUser(ctx context.Context, postID, userID uint64) (*model.Reaction, error) {
	var reaction model.Reaction
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	return &reaction, err
}

func (s *reactionRepoImpl) Create(ctx context.Context, reaction *model.Reaction) error {
	return s.db.WithContext(ctx).Create(reaction).Error
}

func (s *reactionRepoImpl) UpdateType(ctx context.Context, id uint64, reactionType string) error {
	return s.db.WithContext(ctx).Model(&model.Reaction{}).
		Where("id = ?", id).
		Update("type", reactionType).Error
}

func (s *reactionRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Reaction{}, id).Error
}

// GroupByType 按表情类型聚合计数
func (s *reactionRepoImpl) GroupByType(ctx context.Context, postID uint64) ([]*ReactionGroup, error) {
	var groups []*ReactionGroup
	err := s.db.WithContext(ctx).Model(&model.Reaction{}).
		Select("type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("type").
		Find(&groups).Error
	return groups, err
}

func (s *reactionRepoImpl) ListUserIDsByType(ctx context.Context, postID uint64, reactionType string) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Reaction{}).
		Where("post_id = ? AND type = ?", postID, reactionType).
		Pluck("user_id", &ids).Error
	return ids, err
}
