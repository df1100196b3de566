package hub

import "strconv"

// Room 房间标识，目前只有会话房间一种
type Room string

// ConversationRoom 由会话 ID 派生房间名，全工程唯一的构造入口
func ConversationRoom(convID uint64) Room {
	return Room("conversation:" + strconv.FormatUint(convID, 10))
}
