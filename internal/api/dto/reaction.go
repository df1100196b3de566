package dto

// ReactReq 对帖子表情操作请求体
type ReactReq struct {
	PostID uint64 `json:"post_id" binding:"required"`
	Type   string `json:"type" binding:"required"` // cool/love/haha/sad/angry
}

// ReactResultDTO 表情操作结果
// action 取值: added / replaced / removed
type ReactResultDTO struct {
	Action string `json:"action"`
	Type   string `json:"type,omitempty"`
}

// ReactionGroupDTO 帖子表情按类型聚合，附带该类型下的表态用户
type ReactionGroupDTO struct {
	Type    string   `json:"type"`
	Count   int64    `json:"count"`
	UserIDs []uint64 `json:"userIds"`
}

// ReactionsDTO 帖子表情统计响应
type ReactionsDTO struct {
	PostID uint64              `json:"postId"`
	Groups []*ReactionGroupDTO `json:"groups"`
	Mine   string              `json:"mine,omitempty"` // 当前用户的表情类型，未表态为空
}
