package api

import (
	"Harbor/internal/api/middleware"
	"Harbor/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		// 实时连接走查询参数鉴权，不经过 Auth 中间件
		imGroup := apiGroup.Group("/im")
		{
			imGroup.GET("", group.WsHandler.Connect)
		}

		chatGroup := apiGroup.Group("/chat")
		chatGroup.Use(middleware.AuthMiddleware())
		{
			chatGroup.POST("/start", group.ChatHandler.StartChat)
			chatGroup.POST("/send", group.ChatHandler.SendMessage)
			chatGroup.GET("/messages/:conversation_id", group.ChatHandler.GetMessages)
			chatGroup.GET("/list", group.ChatHandler.GetRecentChats)
		}

		notificationGroup := apiGroup.Group("/notification")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("/list", group.NotificationHandler.GetList)
			notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notificationGroup.POST("/read", group.NotificationHandler.MarkRead)
			notificationGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
		}

		friendGroup := apiGroup.Group("/friend")
		friendGroup.Use(middleware.AuthMiddleware())
		{
			friendGroup.POST("/request", group.FriendHandler.SendRequest)
			friendGroup.POST("/accept", group.FriendHandler.Accept)
			friendGroup.POST("/decline", group.FriendHandler.Decline)
			friendGroup.GET("/list", group.FriendHandler.GetFriends)
			friendGroup.GET("/relationship/:user_id", group.FriendHandler.GetRelationship)
		}

		reactionGroup := apiGroup.Group("/post/action")
		reactionGroup.Use(middleware.AuthMiddleware())
		{
			reactionGroup.POST("/reactions", group.ReactionHandler.React)
			reactionGroup.GET("/reactions/:post_id", group.ReactionHandler.GetReactions)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware())
		{
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
