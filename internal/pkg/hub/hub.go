package hub

import (
	log "log/slog"
	"sync"

	"github.com/goccy/go-json"
)

// Event 推送信封
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub 在线状态与房间成员的唯一持有者
// 四张表只在持锁期间变更，锁内不做任何 I/O；推送走各连接的发送队列，不占锁等待网络
type Hub struct {
	mu        sync.RWMutex
	users     map[uint64]*Conn          // 正向表：用户 -> 当前连接
	conns     map[*Conn]uint64          // 反向表：连接 -> 用户
	rooms     map[Room]map[*Conn]struct{}
	connRooms map[*Conn]map[Room]struct{}
}

func NewHub() *Hub {
	return &Hub{
		users:     make(map[uint64]*Conn),
		conns:     make(map[*Conn]uint64),
		rooms:     make(map[Room]map[*Conn]struct{}),
		connRooms: make(map[*Conn]map[Room]struct{}),
	}
}

// Register 登记在线状态并整体替换该连接的房间集合
// 同一用户的旧连接只从正向表摘除，不强制断开，其自身断开时自然清理
func (h *Hub) Register(userID uint64, c *Conn, rooms []Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.users[userID]; ok && old != c {
		log.Info("presence superseded by newer connection", "userID", userID)
	}
	h.users[userID] = c
	h.conns[c] = userID

	h.detachRoomsLocked(c)
	for _, room := range rooms {
		h.joinRoomLocked(c, room)
	}
}

// Forget 注销连接及其全部房间关系
// 只有当该连接仍是用户的当前连接时才摘除正向表，防止迟到的断开挤掉新会话
func (h *Hub) Forget(c *Conn) (userID uint64, removed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userID, ok := h.conns[c]
	if !ok {
		return 0, false
	}

	delete(h.conns, c)
	h.detachRoomsLocked(c)

	if h.users[userID] == c {
		delete(h.users, userID)
		return userID, true
	}
	return userID, false
}

// JoinRoom 追加加入一个房间，连接未登记时忽略
func (h *Hub) JoinRoom(c *Conn, room Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; !ok {
		return
	}
	h.joinRoomLocked(c, room)
}

// IsOnline 用户是否有活跃连接
func (h *Hub) IsOnline(userID uint64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.users[userID]
	return ok
}

// ConnOf 返回用户的当前连接
func (h *Hub) ConnOf(userID uint64) (*Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.users[userID]
	return c, ok
}

// OnlineUserIDs 当前在线用户 ID 列表
func (h *Hub) OnlineUserIDs() []uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uint64, 0, len(h.users))
	for uid := range h.users {
		ids = append(ids, uid)
	}
	return ids
}

// PublishRoom 向房间内所有连接推送事件
// 单个连接投递失败只计数，不影响其他连接，也不向调用方返回错误
func (h *Hub) PublishRoom(room Room, event string, data interface{}) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Error("marshal room event failed", "room", string(room), "event", event, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		c.enqueue(payload)
	}
}

// PublishUser 向指定用户的当前连接推送事件，用户不在线时为空操作
func (h *Hub) PublishUser(userID uint64, event string, data interface{}) bool {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Error("marshal user event failed", "userID", userID, "event", event, "err", err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.users[userID]
	if !ok {
		return false
	}
	return c.enqueue(payload)
}

// SendTo 向单个连接推送事件，用于请求-应答式交互
func (h *Hub) SendTo(c *Conn, event string, data interface{}) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Error("marshal direct event failed", "event", event, "err", err)
		return
	}
	c.enqueue(payload)
}

func (h *Hub) joinRoomLocked(c *Conn, room Room) {
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Conn]struct{})
	}
	h.rooms[room][c] = struct{}{}

	if h.connRooms[c] == nil {
		h.connRooms[c] = make(map[Room]struct{})
	}
	h.connRooms[c][room] = struct{}{}
}

func (h *Hub) detachRoomsLocked(c *Conn) {
	for room := range h.connRooms[c] {
		delete(h.rooms[room], c)
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(h.connRooms, c)
}
