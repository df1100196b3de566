package consts

const (
	MimePrefixImage = "image"
	MimePrefixVideo = "video"
	MimePrefixAudio = "audio"
)

// 会话列表首页为 7 条、后续页 10 条，沿用前端首屏渲染的约定值，不要改成推导值
const (
	FirstChatPageSize = 7
	ChatPageSize      = 10
	MessagePageSize   = 10
)

// 好友关系状态
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// 帖子表情类型
const (
	ReactionCool  = "cool"
	ReactionLove  = "love"
	ReactionHaha  = "haha"
	ReactionSad   = "sad"
	ReactionAngry = "angry"
)

// ValidReactionType 校验表情类型是否在枚举内
func ValidReactionType(t string) bool {
	switch t {
	case ReactionCool, ReactionLove, ReactionHaha, ReactionSad, ReactionAngry:
		return true
	}
	return false
}
