package dto

// FriendRequestReq 好友请求操作请求体
type FriendRequestReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// FriendDTO 好友列表项响应
type FriendDTO struct {
	UserID uint64 `json:"userId"`
}

// RelationshipDTO 与某用户的好友关系状态
// status 取值: friends / request_sent / request_received / none
type RelationshipDTO struct {
	Status string `json:"status"`
}
