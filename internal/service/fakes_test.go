package service

import (
	"Harbor/internal/model"
	mongoPkg "Harbor/internal/pkg/mongo"
	"Harbor/internal/repository"
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// 内存版仓库实现，行为对齐真实存储的排序与筛选语义

type fakeConversationRepo struct {
	nextID       uint64
	convs        map[uint64]*model.Conversation
	participants map[uint64][]uint64
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		convs:        make(map[uint64]*model.Conversation),
		participants: make(map[uint64][]uint64),
	}
}

func (f *fakeConversationRepo) GetConversation(_ context.Context, convID uint64) (*model.Conversation, error) {
	conv, ok := f.convs[convID]
	if !ok {
		return &model.Conversation{}, gorm.ErrRecordNotFound
	}
	return conv, nil
}

func (f *fakeConversationRepo) GetConversationByPeerKey(_ context.Context, peerKey string) (*model.Conversation, error) {
	for _, conv := range f.convs {
		if conv.PeerKey == peerKey {
			return conv, nil
		}
	}
	return &model.Conversation{}, gorm.ErrRecordNotFound
}

func (f *fakeConversationRepo) CreateConversation(_ context.Context, conv *model.Conversation, participantIDs []uint64) error {
	f.nextID++
	conv.ID = f.nextID
	f.convs[conv.ID] = conv
	f.participants[conv.ID] = append([]uint64(nil), participantIDs...)
	return nil
}

func (f *fakeConversationRepo) IsParticipant(_ context.Context, convID, userID uint64) (bool, error) {
	for _, uid := range f.participants[convID] {
		if uid == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConversationRepo) GetParticipantIDs(_ context.Context, convID uint64) ([]uint64, error) {
	return append([]uint64(nil), f.participants[convID]...), nil
}

func (f *fakeConversationRepo) GetConversationIDsForUser(_ context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	for convID, uids := range f.participants {
		for _, uid := range uids {
			if uid == userID {
				ids = append(ids, convID)
			}
		}
	}
	return ids, nil
}

func (f *fakeConversationRepo) ListForUser(_ context.Context, userID uint64, offset, limit int) ([]*model.Conversation, error) {
	var convs []*model.Conversation
	for convID, uids := range f.participants {
		for _, uid := range uids {
			if uid == userID {
				convs = append(convs, f.convs[convID])
			}
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].LastMessageAt.After(convs[j].LastMessageAt)
	})
	if offset >= len(convs) {
		return nil, nil
	}
	convs = convs[offset:]
	if len(convs) > limit {
		convs = convs[:limit]
	}
	return convs, nil
}

func (f *fakeConversationRepo) CountForUser(_ context.Context, userID uint64) (int64, error) {
	var count int64
	for _, uids := range f.participants {
		for _, uid := range uids {
			if uid == userID {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeConversationRepo) TouchLastMessage(_ context.Context, convID uint64, messageID, preview string, senderID uint64, at time.Time) error {
	conv, ok := f.convs[convID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	conv.LastMessageID = messageID
	conv.LastMsgPreview = preview
	conv.LastSenderID = senderID
	conv.LastMessageAt = at
	return nil
}

var _ repository.ConversationRepo = (*fakeConversationRepo)(nil)

type fakeMessageRepo struct {
	msgs []*mongoPkg.Message
}

func (f *fakeMessageRepo) SaveMessage(_ context.Context, msg *mongoPkg.Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeMessageRepo) GetPage(_ context.Context, convID uint64, skip, limit int64) ([]*mongoPkg.Message, error) {
	var filtered []*mongoPkg.Message
	for _, m := range f.msgs {
		if m.ConversationID == convID {
			filtered = append(filtered, m)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return strings.Compare(filtered[i].ID.Hex(), filtered[j].ID.Hex()) > 0
	})
	if skip >= int64(len(filtered)) {
		return nil, nil
	}
	filtered = filtered[skip:]
	if int64(len(filtered)) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		for _, m := range f.msgs {
			if m.ID == id {
				m.IsRead = true
			}
		}
	}
	return nil
}

func (f *fakeMessageRepo) CountUnread(_ context.Context, convID, viewerID uint64) (int64, error) {
	var count int64
	for _, m := range f.msgs {
		if m.ConversationID == convID && !m.IsRead && m.SenderID != viewerID {
			count++
		}
	}
	return count, nil
}

var _ mongoPkg.MessageRepo = (*fakeMessageRepo)(nil)

type fakeNotificationRepo struct {
	notifs []*mongoPkg.Notification
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, n *mongoPkg.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	f.notifs = append(f.notifs, n)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationList(_ context.Context, recipientID uint64, typeFilter string, limit, offset int64) ([]*mongoPkg.Notification, error) {
	var filtered []*mongoPkg.Notification
	for _, n := range f.notifs {
		if n.RecipientID != recipientID {
			continue
		}
		if typeFilter != "" && n.Type != typeFilter {
			continue
		}
		filtered = append(filtered, n)
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].IsRead != filtered[j].IsRead {
			return !filtered[i].IsRead
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	if offset >= int64(len(filtered)) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if int64(len(filtered)) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (f *fakeNotificationRepo) CountNotifications(_ context.Context, recipientID uint64, typeFilter string) (int64, error) {
	var count int64
	for _, n := range f.notifs {
		if n.RecipientID == recipientID && (typeFilter == "" || n.Type == typeFilter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*mongoPkg.Notification, error) {
	for _, n := range f.notifs {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, id primitive.ObjectID) error {
	for _, n := range f.notifs {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, recipientID uint64) error {
	for _, n := range f.notifs {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, recipientID uint64) (int64, error) {
	var count int64
	for _, n := range f.notifs {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) GetPendingFriendRequest(_ context.Context, senderID, recipientID uint64) (*mongoPkg.Notification, error) {
	for _, n := range f.notifs {
		if n.SenderID == senderID && n.RecipientID == recipientID && n.Type == mongoPkg.NotifyFriendRequest {
			return n, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeNotificationRepo) ConvertType(_ context.Context, id primitive.ObjectID, newType string) error {
	for _, n := range f.notifs {
		if n.ID == id {
			n.Type = newType
			n.IsRead = true
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

var _ mongoPkg.NotificationRepo = (*fakeNotificationRepo)(nil)

type fakeFriendRepo struct {
	nextID  uint64
	friends []*model.Friend
}

func (f *fakeFriendRepo) Create(_ context.Context, friend *model.Friend) error {
	f.nextID++
	friend.ID = f.nextID
	f.friends = append(f.friends, friend)
	return nil
}

func (f *fakeFriendRepo) GetByPair(_ context.Context, requesterID, recipientID uint64) (*model.Friend, error) {
	for _, fr := range f.friends {
		if fr.RequesterID == requesterID && fr.RecipientID == recipientID {
			return fr, nil
		}
	}
	return &model.Friend{}, gorm.ErrRecordNotFound
}

func (f *fakeFriendRepo) GetByEitherDirection(_ context.Context, userA, userB uint64) (*model.Friend, error) {
	for _, fr := range f.friends {
		if (fr.RequesterID == userA && fr.RecipientID == userB) ||
			(fr.RequesterID == userB && fr.RecipientID == userA) {
			return fr, nil
		}
	}
	return &model.Friend{}, gorm.ErrRecordNotFound
}

func (f *fakeFriendRepo) UpdateStatus(_ context.Context, id uint64, status string) error {
	for _, fr := range f.friends {
		if fr.ID == id {
			fr.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeFriendRepo) Delete(_ context.Context, id uint64) error {
	for i, fr := range f.friends {
		if fr.ID == id {
			f.friends = append(f.friends[:i], f.friends[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeFriendRepo) ListAccepted(_ context.Context, userID uint64) ([]*model.Friend, error) {
	var res []*model.Friend
	for _, fr := range f.friends {
		if fr.Status == "accepted" && (fr.RequesterID == userID || fr.RecipientID == userID) {
			res = append(res, fr)
		}
	}
	return res, nil
}

var _ repository.FriendRepo = (*fakeFriendRepo)(nil)

type fakeReactionRepo struct {
	nextID    uint64
	reactions []*model.Reaction
}

func (f *fakeReactionRepo) GetByPostAndUser(_ context.Context, postID, userID uint64) (*model.Reaction, error) {
	for _, r := range f.reactions {
		if r.PostID == postID && r.UserID == userID {
			return r, nil
		}
	}
	return &model.Reaction{}, gorm.ErrRecordNotFound
}

func (f *fakeReactionRepo) Create(_ context.Context, reaction *model.Reaction) error {
	f.nextID++
	reaction.ID = f.nextID
	f.reactions = append(f.reactions, reaction)
	return nil
}

func (f *fakeReactionRepo) UpdateType(_ context.Context, id uint64, reactionType string) error {
	for _, r := range f.reactions {
		if r.ID == id {
			r.Type = reactionType
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReactionRepo) Delete(_ context.Context, id uint64) error {
	for i, r := range f.reactions {
		if r.ID == id {
			f.reactions = append(f.reactions[:i], f.reactions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeReactionRepo) GroupByType(_ context.Context, postID uint64) ([]*repository.ReactionGroup, error) {
	counts := make(map[string]int64)
	for _, r := range f.reactions {
		if r.PostID == postID {
			counts[r.Type]++
		}
	}
	var groups []*repository.ReactionGroup
	for typ, count := range counts {
		groups = append(groups, &repository.ReactionGroup{Type: typ, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Type < groups[j].Type })
	return groups, nil
}

func (f *fakeReactionRepo) ListUserIDsByType(_ context.Context, postID uint64, reactionType string) ([]uint64, error) {
	var ids []uint64
	for _, r := range f.reactions {
		if r.PostID == postID && r.Type == reactionType {
			ids = append(ids, r.UserID)
		}
	}
	return ids, nil
}

var _ repository.ReactionRepo = (*fakeReactionRepo)(nil)

type fakePostRepo struct {
	authors map[uint64]uint64
}

func (f *fakePostRepo) GetAuthorID(_ context.Context, postID uint64) (uint64, error) {
	author, ok := f.authors[postID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	return author, nil
}

var _ repository.PostRepo = (*fakePostRepo)(nil)
