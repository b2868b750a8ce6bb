package service

import "errors"

// 服务层通用错误
var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrInvalidToken       = errors.New("Token 无效")
	ErrUsernameTaken      = errors.New("用户名已被占用")
	ErrSessionNotFound    = errors.New("定制会话不存在或已过期")
	ErrNotSessionOwner    = errors.New("无权操作该定制会话")
)
