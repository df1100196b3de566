package consts

const (
	OnlineUsersKey = "presence:online"
	MediaTempKey   = "media:temp"
)
