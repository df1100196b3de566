package service

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/model"
	"Harbor/internal/pkg/consts"
	mongoPkg "Harbor/internal/pkg/mongo"
	"Harbor/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// FriendService 好友关系服务接口定义
type FriendService interface {
	SendRequest(ctx context.Context, requesterID, recipientID uint64) error
	Accept(ctx context.Context, userID, requesterID uint64) error
	Decline(ctx context.Context, userID, requesterID uint64) error
	Friends(ctx context.Context, userID uint64) ([]*dto.FriendDTO, error)
	Relationship(ctx context.Context, userID, otherID uint64) (*dto.RelationshipDTO, error)
}

type friendServiceImpl struct {
	friendRepo   repository.FriendRepo
	notifRepo    mongoPkg.NotificationRepo
	notification NotificationService
}

func NewFriendService(friendRepo repository.FriendRepo, notifRepo mongoPkg.NotificationRepo, notification NotificationService) FriendService {
	return &friendServiceImpl{
		friendRepo:   friendRepo,
		notifRepo:    notifRepo,
		notification: notification,
	}
}

// SendRequest 发送好友请求并给对方派发通知
func (s *friendServiceImpl) SendRequest(ctx context.Context, requesterID, recipientID uint64) error {
	if recipientID == 0 || recipientID == requesterID {
		return ErrTargetUserInvalid
	}

	existing, err := s.friendRepo.GetByEitherDirection(ctx, requesterID, recipientID)
	if err == nil {
		if existing.Status == consts.FriendStatusAccepted {
			return ErrAlreadyFriends
		}
		return ErrFriendRequestExist
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	friend := &model.Friend{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      consts.FriendStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friend); err != nil {
		return err
	}

	return s.notification.Dispatch(ctx, &mongoPkg.Notification{
		RecipientID: recipientID,
		SenderID:    requesterID,
		Type:        mongoPkg.NotifyFriendRequest,
		About:       mongoPkg.About{Kind: "Friend", ID: fmt.Sprintf("%d", friend.ID)},
		Message:     "向你发送了好友请求",
	})
}

// Accept 接受好友请求
// 原好友请求通知改写为 accepted 类型并强制已读，再给请求方派发结果通知
func (s *friendServiceImpl) Accept(ctx context.Context, userID, requesterID uint64) error {
	friend, err := s.friendRepo.GetByPair(ctx, requesterID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFriendRequestNotFound
		}
		return err
	}
	if friend.Status == consts.FriendStatusAccepted {
		return ErrAlreadyFriends
	}

	if err := s.friendRepo.UpdateStatus(ctx, friend.ID, consts.FriendStatusAccepted); err != nil {
		return err
	}

	s.convertRequestNotification(ctx, requesterID, userID, mongoPkg.NotifyAcceptedFriendRequest)

	return s.notification.Dispatch(ctx, &mongoPkg.Notification{
		RecipientID: requesterID,
		SenderID:    userID,
		Type:        mongoPkg.NotifyAcceptedFriendRequest,
		About:       mongoPkg.About{Kind: "Friend", ID: fmt.Sprintf("%d", friend.ID)},
		Message:     "接受了你的好友请求",
	})
}

// Decline 拒绝好友请求：删除关系记录，通知改写为 declined 类型
func (s *friendServiceImpl) Decline(ctx context.Context, userID, requesterID uint64) error {
	friend, err := s.friendRepo.GetByPair(ctx, requesterID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFriendRequestNotFound
		}
		return err
	}
	if friend.Status == consts.FriendStatusAccepted {
		return ErrAlreadyFriends
	}

	if err := s.friendRepo.Delete(ctx, friend.ID); err != nil {
		return err
	}

	s.convertRequestNotification(ctx, requesterID, userID, mongoPkg.NotifyDeclinedFriendRequest)

	return s.notification.Dispatch(ctx, &mongoPkg.Notification{
		RecipientID: requesterID,
		SenderID:    userID,
		Type:        mongoPkg.NotifyDeclinedFriendRequest,
		About:       mongoPkg.About{Kind: "Friend", ID: fmt.Sprintf("%d", friend.ID)},
		Message:     "拒绝了你的好友请求",
	})
}

// Friends 好友列表，返回关系另一端的用户 ID
func (s *friendServiceImpl) Friends(ctx context.Context, userID uint64) ([]*dto.FriendDTO, error) {
	friends, err := s.friendRepo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.FriendDTO, 0, len(friends))
	for _, f := range friends {
		other := f.RequesterID
		if other == userID {
			other = f.RecipientID
		}
		res = append(res, &dto.FriendDTO{UserID: other})
	}
	return res, nil
}

// Relationship 查询与某用户的关系状态
func (s *friendServiceImpl) Relationship(ctx context.Context, userID, otherID uint64) (*dto.RelationshipDTO, error) {
	friend, err := s.friendRepo.GetByEitherDirection(ctx, userID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.RelationshipDTO{Status: "none"}, nil
		}
		return nil, err
	}

	switch {
	case friend.Status == consts.FriendStatusAccepted:
		return &dto.RelationshipDTO{Status: "friends"}, nil
	case friend.RequesterID == userID:
		return &dto.RelationshipDTO{Status: "request_sent"}, nil
	default:
		return &dto.RelationshipDTO{Status: "request_received"}, nil
	}
}

// convertRequestNotification 把挂起的好友请求通知改写为处理结果类型
// 找不到原通知不算失败，可能已被清理
func (s *friendServiceImpl) convertRequestNotification(ctx context.Context, requesterID, recipientID uint64, newType string) {
	pending, err := s.notifRepo.GetPendingFriendRequest(ctx, requesterID, recipientID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.WarnContext(ctx, "查找好友请求通知失败", "requesterID", requesterID, "err", err)
		}
		return
	}
	if err := s.notifRepo.ConvertType(ctx, pending.ID, newType); err != nil {
		log.WarnContext(ctx, "改写好友请求通知失败", "id", pending.ID.Hex(), "err", err)
	}
}
