package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepo interface {
	SaveMessage(ctx context.Context, msg *Message) error
	GetPage(ctx context.Context, convID uint64, skip, limit int64) ([]*Message, error)
	MarkRead(ctx context.Context, ids []primitive.ObjectID) error
	CountUnread(ctx context.Context, convID uint64, viewerID uint64) (int64, error)
}

type messageRepoImpl struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepoImpl{
		col: db.Collection("message"),
	}
}

// SaveMessage 将消息存入 MongoDB 并回填生成的 ObjectID
func (s *messageRepoImpl) SaveMessage(ctx context.Context, msg *Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}

// GetPage 按 (created_at, _id) 降序取一页
// 调用方会多取一条用来判断 hasMore，这里不做截断
func (s *messageRepoImpl) GetPage(ctx context.Context, convID uint64, skip, limit int64) ([]*Message, error) {
	filter := bson.M{"conversation_id": convID}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var messages []*Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

// MarkRead 批量将消息置为已读，只允许 false -> true
func (s *messageRepoImpl) MarkRead(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

// CountUnread 统计会话里他人发来且未读的消息数
func (s *messageRepoImpl) CountUnread(ctx context.Context, convID uint64, viewerID uint64) (int64, error) {
	filter := bson.M{
		"conversation_id": convID,
		"is_read":         false,
		"sender_id":       bson.M{"$ne": viewerID},
	}
	return s.col.CountDocuments(ctx, filter)
}
