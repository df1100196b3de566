package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *Notification) error
	GetNotificationList(ctx context.Context, recipientID uint64, typeFilter string, limit, offset int64) ([]*Notification, error)
	CountNotifications(ctx context.Context, recipientID uint64, typeFilter string) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Notification, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, recipientID uint64) error
	GetUnreadCount(ctx context.Context, recipientID uint64) (int64, error)
	GetPendingFriendRequest(ctx context.Context, senderID, recipientID uint64) (*Notification, error)
	ConvertType(ctx context.Context, id primitive.ObjectID, newType string) error
}

type notificationRepoImpl struct {
	col *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database) NotificationRepo {
	return &notificationRepoImpl{
		col: db.Collection("notification"),
	}
}

// CreateNotification 插入新通知
func (s *notificationRepoImpl) CreateNotification(ctx context.Context, n *Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return nil
}

// GetNotificationList 分页获取通知列表，未读在前，组内按时间倒序
func (s *notificationRepoImpl) GetNotificationList(ctx context.Context, recipientID uint64, typeFilter string, limit, offset int64) ([]*Notification, error) {
	filter := bson.M{"recipient_id": recipientID}
	if typeFilter != "" {
		filter["type"] = typeFilter
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "is_read", Value: 1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*Notification
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CountNotifications 统计通知总数，用于计算总页数
func (s *notificationRepoImpl) CountNotifications(ctx context.Context, recipientID uint64, typeFilter string) (int64, error) {
	filter := bson.M{"recipient_id": recipientID}
	if typeFilter != "" {
		filter["type"] = typeFilter
	}
	return s.col.CountDocuments(ctx, filter)
}

// GetByID 根据 ID 获取通知
func (s *notificationRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*Notification, error) {
	var n Notification
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAsRead 标记单条通知为已读
func (s *notificationRepoImpl) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllAsRead 一键清除未读
func (s *notificationRepoImpl) MarkAllAsRead(ctx context.Context, recipientID uint64) error {
	filter := bson.M{"recipient_id": recipientID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

// GetUnreadCount 获取未读通知总数
func (s *notificationRepoImpl) GetUnreadCount(ctx context.Context, recipientID uint64) (int64, error) {
	filter := bson.M{"recipient_id": recipientID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}

// GetPendingFriendRequest 查找未处理的好友请求通知
func (s *notificationRepoImpl) GetPendingFriendRequest(ctx context.Context, senderID, recipientID uint64) (*Notification, error) {
	var n Notification
	filter := bson.M{
		"sender_id":    senderID,
		"recipient_id": recipientID,
		"type":         NotifyFriendRequest,
	}
	err := s.col.FindOne(ctx, filter).Decode(&n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// ConvertType 改写通知类型并强制置为已读（好友请求被接受/拒绝时）
func (s *notificationRepoImpl) ConvertType(ctx context.Context, id primitive.ObjectID, newType string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"type": newType, "is_read": true}}
	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
