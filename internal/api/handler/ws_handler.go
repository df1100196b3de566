package handler

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/pkg/hub"
	"Harbor/internal/pkg/response"
	"Harbor/internal/pkg/security"
	"Harbor/internal/service"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	hub             *hub.Hub
	presenceService service.PresenceService
}

func NewWsHandler(h *hub.Hub, presenceService service.PresenceService) *WsHandler {
	return &WsHandler{hub: h, presenceService: presenceService}
}

// Connect 建立实时连接：鉴权、升级、登记在线状态、进入读写循环
func (s *WsHandler) Connect(c *gin.Context) {
	// 鉴权
	token := c.Query("token")
	if token == "" {
		response.Error(c, service.UnauthorizedError)
		return
	}
	claims, err := security.ValidateToken(token)
	if err != nil {
		log.Warn("WS 鉴权失败", "err", err)
		response.Error(c, service.UnauthorizedError)
		return
	}
	userID := claims.UserID

	// 升级 Websocket
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}

	conn := hub.NewConn(ws)
	defer func() {
		s.presenceService.Forget(c.Request.Context(), conn)
		conn.Close()
	}()

	if err := s.presenceService.Announce(c.Request.Context(), userID, conn); err != nil {
		log.Error("用户上线登记失败", "userID", userID, "err", err)
		return
	}

	go conn.WritePump()

	log.Info("用户 WS 连接已建立", "userID", userID)

	// 读循环：处理客户端上行事件，读失败即视为断开
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			log.Info("用户 WS 连接已断开", "userID", userID)
			return
		}

		var event dto.ClientEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Warn("WS 上行事件解析失败", "userID", userID, "err", err)
			continue
		}

		switch event.Event {
		case "forwardMessage":
			s.handleForwardMessage(userID, event.Data)
		case "getOnlineUsers":
			s.hub.SendTo(conn, "onlineUsers", s.presenceService.OnlineUsers())
		default:
			log.Warn("未知的 WS 上行事件", "userID", userID, "event", event.Event)
		}
	}
}

// handleForwardMessage 把客户端转发的消息原样中继给会话房间
// 不落库也不校验成员关系，纯实时转发；房间成员收到的仍是 newMessage 事件
func (s *WsHandler) handleForwardMessage(userID uint64, data []byte) {
	var fwd dto.ForwardMessageData
	if err := json.Unmarshal(data, &fwd); err != nil {
		log.Warn("转发消息解析失败", "userID", userID, "err", err)
		return
	}
	if fwd.ConversationID == 0 {
		return
	}
	s.hub.PublishRoom(hub.ConversationRoom(fwd.ConversationID), "newMessage", fwd.Message)
}
