package handler

import (
	"Harbor/internal/api/dto"
	"Harbor/internal/pkg/response"
	"Harbor/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendService service.FriendService
}

func NewFriendHandler(friendService service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// SendRequest 发送好友请求
func (s *FriendHandler) SendRequest(c *gin.Context) {
	var req dto.FriendRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	if err := s.friendService.SendRequest(c.Request.Context(), userID, req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Accept 接受好友请求，req.UserID 为请求发起方
func (s *FriendHandler) Accept(c *gin.Context) {
	var req dto.FriendRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	if err := s.friendService.Accept(c.Request.Context(), userID, req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Decline 拒绝好友请求
func (s *FriendHandler) Decline(c *gin.Context) {
	var req dto.FriendRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	if err := s.friendService.Decline(c.Request.Context(), userID, req.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetFriends 好友列表
func (s *FriendHandler) GetFriends(c *gin.Context) {
	userID := c.GetUint64("user_id")

	res, err := s.friendService.Friends(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetRelationship 查询与某用户的关系状态
func (s *FriendHandler) GetRelationship(c *gin.Context) {
	otherID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	userID := c.GetUint64("user_id")

	res, err := s.friendService.Relationship(c.Request.Context(), userID, otherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
