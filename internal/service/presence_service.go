package service

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/pkg/consts"
	"Harbor/internal/pkg/hub"
	"Harbor/internal/pkg/redis"
	"Harbor/internal/repository"
	"context"
	log "log/slog"
)

// PresenceService 在线状态服务接口定义
type PresenceService interface {
	Announce(ctx context.Context, userID uint64, c *hub.Conn) error
	Forget(ctx context.Context, c *hub.Conn)
	OnlineUsers() *dto.OnlineUsersDTO
}

type presenceServiceImpl struct {
	convRepo repository.ConversationRepo
	hub      *hub.Hub
	mirror   PresenceMirror
}

// PresenceMirror 在线集合的外部镜像，仅用于旁路查询，不参与投递决策
type PresenceMirror interface {
	Add(ctx context.Context, userID uint64) error
	Remove(ctx context.Context, userID uint64) error
}

func NewPresenceService(convRepo repository.ConversationRepo, h *hub.Hub, mirror PresenceMirror) PresenceService {
	return &presenceServiceImpl{
		convRepo: convRepo,
		hub:      h,
		mirror:   mirror,
	}
}

// Announce 用户上线：把连接登记进 Hub 并加入其全部会话房间
// 同一用户重复上线时新连接接管推送，旧连接自然淘汰
func (s *presenceServiceImpl) Announce(ctx context.Context, userID uint64, c *hub.Conn) error {
	convIDs, err := s.convRepo.GetConversationIDsForUser(ctx, userID)
	if err != nil {
		return err
	}

	rooms := make([]hub.Room, 0, len(convIDs))
	for _, id := range convIDs {
		rooms = append(rooms, hub.ConversationRoom(id))
	}

	s.hub.Register(userID, c, rooms)

	if s.mirror != nil {
		if err := s.mirror.Add(ctx, userID); err != nil {
			log.WarnContext(ctx, "presence mirror add failed", "userID", userID, "err", err)
		}
	}

	log.InfoContext(ctx, "用户上线", "userID", userID, "rooms", len(rooms))
	s.broadcastOnlineUsers()
	return nil
}

// Forget 用户下线：注销连接，只有当该连接仍是当前连接时才清除在线标记
func (s *presenceServiceImpl) Forget(ctx context.Context, c *hub.Conn) {
	userID, removed := s.hub.Forget(c)
	if !removed {
		return
	}

	if s.mirror != nil {
		if err := s.mirror.Remove(ctx, userID); err != nil {
			log.WarnContext(ctx, "presence mirror remove failed", "userID", userID, "err", err)
		}
	}

	log.InfoContext(ctx, "用户下线", "userID", userID)
	s.broadcastOnlineUsers()
}

// OnlineUsers 当前在线用户列表
func (s *presenceServiceImpl) OnlineUsers() *dto.OnlineUsersDTO {
	return &dto.OnlineUsersDTO{UserIDs: s.hub.OnlineUserIDs()}
}

// broadcastOnlineUsers 在线名单变化后推给所有在线用户
func (s *presenceServiceImpl) broadcastOnlineUsers() {
	online := s.OnlineUsers()
	for _, uid := range online.UserIDs {
		s.hub.PublishUser(uid, "onlineUsers", online)
	}
}

// redisPresenceMirror 把在线集合镜像到 Redis，供其他模块旁路查询
type redisPresenceMirror struct{}

func NewRedisPresenceMirror() PresenceMirror {
	return &redisPresenceMirror{}
}

func (m *redisPresenceMirror) Add(ctx context.Context, userID uint64) error {
	return redis.SAdd(ctx, consts.OnlineUsersKey, userID)
}

func (m *redisPresenceMirror) Remove(ctx context.Context, userID uint64) error {
	return redis.SRem(ctx, consts.OnlineUsersKey, userID)
}
