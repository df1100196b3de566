package service

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/pkg/hub"
	mongoPkg "Harbor/internal/pkg/mongo"
	"context"
	"errors"
	log "log/slog"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 通知列表每页条数
const notifyPageSize = 10

// NotificationService 通知服务接口定义
type NotificationService interface {
	Dispatch(ctx context.Context, n *mongoPkg.Notification) error
	List(ctx context.Context, userID uint64, typeFilter string, page int64) (*dto.NotificationListDTO, error)
	MarkRead(ctx context.Context, userID uint64, id string) error
	MarkAllRead(ctx context.Context, userID uint64) error
	UnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error)
}

type notificationServiceImpl struct {
	notifRepo mongoPkg.NotificationRepo
	hub       *hub.Hub
}

func NewNotificationService(notifRepo mongoPkg.NotificationRepo, h *hub.Hub) NotificationService {
	return &notificationServiceImpl{
		notifRepo: notifRepo,
		hub:       h,
	}
}

// Dispatch 派发通知：落库后向在线接收者实时推送
// 给自己的通知静默丢弃，不落库也不报错
func (s *notificationServiceImpl) Dispatch(ctx context.Context, n *mongoPkg.Notification) error {
	if n.RecipientID == n.SenderID {
		return nil
	}
	if !mongoPkg.ValidNotifyType(n.Type) {
		return ErrNotificationTypeInvalid
	}

	if err := s.notifRepo.CreateNotification(ctx, n); err != nil {
		return err
	}

	if s.hub.IsOnline(n.RecipientID) {
		s.hub.PublishUser(n.RecipientID, "newNotification", &dto.NotificationPushDTO{
			Type:    n.Type,
			From:    n.SenderID,
			Message: n.Message,
		})
	}

	return nil
}

// List 分页获取通知列表，未读在前，可按类型过滤
func (s *notificationServiceImpl) List(ctx context.Context, userID uint64, typeFilter string, page int64) (*dto.NotificationListDTO, error) {
	if page < 1 {
		return nil, ErrParamInvalid
	}
	if typeFilter != "" && !mongoPkg.ValidNotifyType(typeFilter) {
		return nil, ErrNotificationTypeInvalid
	}

	offset := (page - 1) * notifyPageSize
	list, err := s.notifRepo.GetNotificationList(ctx, userID, typeFilter, notifyPageSize, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.notifRepo.CountNotifications(ctx, userID, typeFilter)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		res = append(res, toNotificationDTO(n))
	}

	return &dto.NotificationListDTO{
		Notifications: res,
		TotalPages:    (total + notifyPageSize - 1) / notifyPageSize,
	}, nil
}

// MarkRead 标记单条通知已读，只有接收者本人可操作
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uint64, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrParamInvalid
	}

	n, err := s.notifRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}

	if n.RecipientID != userID {
		return UnauthorizedError
	}
	if n.IsRead {
		return ErrNotificationAlreadyRead
	}

	if err := s.notifRepo.MarkAsRead(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// MarkAllRead 一键清除当前用户全部未读
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

// UnreadCount 未读通知计数
func (s *notificationServiceImpl) UnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error) {
	count, err := s.notifRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountDTO{Count: count}, nil
}

func toNotificationDTO(n *mongoPkg.Notification) *dto.NotificationDTO {
	d := &dto.NotificationDTO{}
	if err := copier.Copy(d, n); err != nil {
		log.Error("通知模型转换失败", "err", err)
	}
	d.ID = n.ID.Hex()
	return d
}
