package handler

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/pkg/response"
	"Harbor/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// StartChat 找到或创建与目标用户的会话
func (s *ChatHandler) StartChat(c *gin.Context) {
	var req dto.StartChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	convID, err := s.chatService.StartChat(c.Request.Context(), userID, req.TargetUserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"conversationId": convID})
}

// SendMessage 发送消息接口
func (s *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	senderID := c.GetUint64("user_id")

	res, err := s.chatService.SendMessage(c.Request.Context(), senderID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetMessages 分页拉取消息，服务端顺带完成已读转换
func (s *ChatHandler) GetMessages(c *gin.Context) {
	convID, err := strconv.ParseUint(c.Param("conversation_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	userID := c.GetUint64("user_id")

	res, err := s.chatService.GetMessages(c.Request.Context(), userID, convID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetRecentChats 获取会话列表
func (s *ChatHandler) GetRecentChats(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	userID := c.GetUint64("user_id")

	res, err := s.chatService.GetRecentChats(c.Request.Context(), userID, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
