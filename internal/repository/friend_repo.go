package repository

import (
	"Harbor/internal/model"
	"context"

	"gorm.io/gorm"
)

type FriendRepo interface {
	Create(ctx context.Context, friend *model.Friend) error
	GetByPair(ctx context.Context, requesterID, recipientID uint64) (*model.Friend, error)
	GetByEitherDirection(ctx context.Context, userA, userB uint64) (*model.Friend, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
	ListAccepted(ctx context.Context, userID uint64) ([]*model.Friend, error)
}

type friendRepoImpl struct {
	db *gorm.DB
}

func NewFriendRepo(db *gorm.DB) FriendRepo {
	return &friendRepoImpl{db: db}
}

func (s *friendRepoImpl) Create(ctx context.Context, friend *model.Friend) error {
	return s.db.WithContext(ctx).Create(friend).Error
}

// GetByPair 精确方向查询：requester 发给 recipient 的请求
func (s *friendRepoImpl) GetByPair(ctx context.Context, requesterID, recipientID uint64) (*model.Friend, error) {
	var friend model.Friend
	err := s.db.WithContext(ctx).
		Where("requester_id = ? AND recipient_id = ?", requesterID, recipientID).
		First(&friend).Error
	return &friend, err
}

// GetByEitherDirection 不关心方向的关系查询
func (s *friendRepoImpl) GetByEitherDirection(ctx context.Context, userA, userB uint64) (*model.Friend, error) {
	var friend model.Friend
	err := s.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		First(&friend).Error
	return &friend, err
}

func (s *friendRepoImpl) UpdateStatus(ctx context.Context, id uint64, status string) error {
	return s.db.WithContext(ctx).Model(&model.Friend{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *friendRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Friend{}, id).Error
}

// ListAccepted 返回用户的全部已确认好友关系（双向）
func (s *friendRepoImpl) ListAccepted(ctx context.Context, userID uint64) ([]*model.Friend, error) {
	var friends []*model.Friend
	err := s.db.WithContext(ctx).
		Where("status = ? AND (requester_id = ? OR recipient_id = ?)", "accepted", userID, userID).
		Find(&friends).Error
	return friends, err
}
