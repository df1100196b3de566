package api

import "Harbor/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	WsHandler           *handler.WsHandler
	ChatHandler         *handler.ChatHandler
	NotificationHandler *handler.NotificationHandler
	FriendHandler       *handler.FriendHandler
	ReactionHandler     *handler.ReactionHandler
	MediaHandler        *handler.MediaHandler
}
