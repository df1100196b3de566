package service

import (
	"errors"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrConversationNotFound    = errors.New("会话不存在")
	ErrNotConversationMember   = errors.New("不是会话成员")
	ErrTargetUserInvalid       = errors.New("目标用户无效")
	ErrMessageNotFound         = errors.New("消息不存在")
	ErrNotificationNotFound    = errors.New("通知不存在")
	ErrNotificationAlreadyRead = errors.New("通知已是已读状态")
	ErrNotificationTypeInvalid = errors.New("不支持的通知类型")
	ErrFriendRequestExist      = errors.New("好友请求已存在")
	ErrFriendRequestNotFound   = errors.New("好友请求不存在")
	ErrAlreadyFriends          = errors.New("已经是好友")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrReactionTypeInvalid     = errors.New("不支持的表情类型")
	ErrActionDuplicate         = errors.New("重复操作")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrConversationNotFound:    NotFound,
	ErrNotConversationMember:   Unauthorized,
	ErrTargetUserInvalid:       BadRequest,
	ErrMessageNotFound:         NotFound,
	ErrNotificationNotFound:    NotFound,
	ErrNotificationAlreadyRead: Ok,
	ErrNotificationTypeInvalid: BadRequest,
	ErrFriendRequestExist:      BadRequest,
	ErrFriendRequestNotFound:   NotFound,
	ErrAlreadyFriends:          BadRequest,
	ErrPostNotFound:            NotFound,
	ErrReactionTypeInvalid:     BadRequest,
	ErrActionDuplicate:         BadRequest,
	ErrFileNotSupported:        BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
