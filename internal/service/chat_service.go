package service

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/model"
	"Harbor/internal/pkg/consts"
	"Harbor/internal/pkg/hub"
	"Harbor/internal/pkg/minio"
	mongoPkg "Harbor/internal/pkg/mongo"
	"Harbor/internal/pkg/redis"
	"Harbor/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// ChatService 会话与消息服务接口定义
type ChatService interface {
	StartChat(ctx context.Context, userID, targetUserID uint64) (uint64, error)
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	GetMessages(ctx context.Context, userID, convID uint64, page int) (*dto.MessagePageDTO, error)
	GetRecentChats(ctx context.Context, userID uint64, page int) (*dto.ChatListDTO, error)
}

type chatServiceImpl struct {
	convRepo    repository.ConversationRepo
	messageRepo mongoPkg.MessageRepo
	hub         *hub.Hub
}

func NewChatService(convRepo repository.ConversationRepo, messageRepo mongoPkg.MessageRepo, h *hub.Hub) ChatService {
	return &chatServiceImpl{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		hub:         h,
	}
}

// StartChat 找到或创建双人会话，与参与者顺序无关
// 新会话创建后把在线参与者的连接拉进房间，后续消息即时可达
func (s *chatServiceImpl) StartChat(ctx context.Context, userID, targetUserID uint64) (uint64, error) {
	if targetUserID == 0 || targetUserID == userID {
		return 0, ErrTargetUserInvalid
	}

	peerKey := repository.PeerKey(userID, targetUserID)
	conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey)
	if err == nil {
		return conv.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	newConv := &model.Conversation{
		PeerKey:       peerKey,
		LastMessageAt: time.Now(),
	}
	err = s.convRepo.CreateConversation(ctx, newConv, []uint64{userID, targetUserID})
	if err != nil {
		// 并发创建同一会话时唯一键兜底，改走查询
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			conv, err = s.convRepo.GetConversationByPeerKey(ctx, peerKey)
			if err != nil {
				return 0, err
			}
			return conv.ID, nil
		}
		return 0, err
	}

	room := hub.ConversationRoom(newConv.ID)
	for _, uid := range []uint64{userID, targetUserID} {
		if c, ok := s.hub.ConnOf(uid); ok {
			s.hub.JoinRoom(c, room)
		}
	}

	return newConv.ID, nil
}

// SendMessage 发送消息：落库、推进会话指针、向房间广播
func (s *chatServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	if req.Content == "" && req.Media == nil {
		return nil, ErrParamInvalid
	}

	convID := req.ConversationID
	if convID == 0 {
		id, err := s.StartChat(ctx, senderID, req.TargetUserID)
		if err != nil {
			return nil, err
		}
		convID = id
	} else {
		isMember, err := s.convRepo.IsParticipant(ctx, convID, senderID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrNotConversationMember
		}
	}

	var media *mongoPkg.MediaRef
	if req.Media != nil {
		if !validMediaKind(req.Media.Kind) {
			return nil, ErrFileNotSupported
		}
		media = &mongoPkg.MediaRef{Object: req.Media.Object, Kind: req.Media.Kind}
		// 附件已被消息引用，从临时登记里摘除，清理任务不再回收
		if err := redis.HDel(ctx, consts.MediaTempKey, media.Object); err != nil {
			log.WarnContext(ctx, "摘除临时媒体登记失败", "object", media.Object, "err", err)
		}
	}

	msg := &mongoPkg.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Content:        req.Content,
		Media:          media,
		CreatedAt:      time.Now(),
	}
	if err := s.messageRepo.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}

	preview := req.Content
	if preview == "" && media != nil {
		preview = fmt.Sprintf("[%s]", media.Kind)
	}
	if err := s.convRepo.TouchLastMessage(ctx, convID, msg.ID.Hex(), preview, senderID, msg.CreatedAt); err != nil {
		log.ErrorContext(ctx, "推进会话最新消息指针失败", "convID", convID, "err", err)
	}

	d := s.toMessageDTO(ctx, msg)
	s.hub.PublishRoom(hub.ConversationRoom(convID), "newMessage", d)

	return d, nil
}

// GetMessages 分页拉取消息并顺带完成已读转换
// 每页固定取 MessagePageSize 条，多取一条只用来判断 hasMore
// 返回前把他人发来的未读消息批量置为已读，响应里直接体现已读后的状态
func (s *chatServiceImpl) GetMessages(ctx context.Context, userID, convID uint64, page int) (*dto.MessagePageDTO, error) {
	if page < 1 {
		return nil, ErrParamInvalid
	}

	isMember, err := s.convRepo.IsParticipant(ctx, convID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotConversationMember
	}

	skip := int64(page-1) * consts.MessagePageSize
	messages, err := s.messageRepo.GetPage(ctx, convID, skip, consts.MessagePageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > consts.MessagePageSize
	if hasMore {
		messages = messages[:consts.MessagePageSize]
	}

	// 仓库返回的是新到旧，翻转为时间正序
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	var unreadIDs []primitive.ObjectID
	for _, m := range messages {
		if m.SenderID != userID && !m.IsRead {
			unreadIDs = append(unreadIDs, m.ID)
			m.IsRead = true
		}
	}
	if len(unreadIDs) > 0 {
		if err := s.messageRepo.MarkRead(ctx, unreadIDs); err != nil {
			log.ErrorContext(ctx, "批量标记已读失败", "convID", convID, "count", len(unreadIDs), "err", err)
		}
	}

	res := make([]*dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		res = append(res, s.toMessageDTO(ctx, m))
	}

	return &dto.MessagePageDTO{Messages: res, HasMore: hasMore}, nil
}

// GetRecentChats 按最后活跃时间倒序返回会话列表
// 首页 FirstChatPageSize 条，之后每页 ChatPageSize 条
func (s *chatServiceImpl) GetRecentChats(ctx context.Context, userID uint64, page int) (*dto.ChatListDTO, error) {
	if page < 1 {
		return nil, ErrParamInvalid
	}

	var offset, limit int
	if page == 1 {
		offset, limit = 0, consts.FirstChatPageSize
	} else {
		offset = consts.FirstChatPageSize + (page-2)*consts.ChatPageSize
		limit = consts.ChatPageSize
	}

	convs, err := s.convRepo.ListForUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.convRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	chats := make([]*dto.ChatDTO, 0, len(convs))
	for _, conv := range convs {
		peerID, err := parsePeerID(conv.PeerKey, userID)
		if err != nil {
			log.WarnContext(ctx, "会话标识解析失败", "convID", conv.ID, "peerKey", conv.PeerKey, "err", err)
			continue
		}

		unread, err := s.messageRepo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}

		chats = append(chats, &dto.ChatDTO{
			ConversationID: conv.ID,
			PeerID:         peerID,
			LastMsgPreview: conv.LastMsgPreview,
			LastSenderID:   conv.LastSenderID,
			LastMessageAt:  conv.LastMessageAt,
			UnreadCount:    unread,
		})
	}

	return &dto.ChatListDTO{
		Chats:   chats,
		HasMore: total > int64(offset+len(convs)),
	}, nil
}

func (s *chatServiceImpl) toMessageDTO(ctx context.Context, m *mongoPkg.Message) *dto.MessageDTO {
	d := &dto.MessageDTO{
		ID:             m.ID.Hex(),
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
	if m.Media != nil {
		d.MediaURL = minio.ResolveURL(ctx, m.Media.Object)
		d.MediaKind = m.Media.Kind
	}
	return d
}

func validMediaKind(kind string) bool {
	switch kind {
	case consts.MimePrefixImage, consts.MimePrefixVideo, consts.MimePrefixAudio:
		return true
	}
	return false
}

func parsePeerID(peerKey string, currentUserID uint64) (uint64, error) {
	var u1, u2 uint64
	if _, err := fmt.Sscanf(peerKey, "%d_%d", &u1, &u2); err != nil {
		return 0, err
	}
	if u1 == currentUserID {
		return u2, nil
	}
	return u1, nil
}
