package model

import (
	"time"

	"gorm.io/gorm"
)

// ==================== 基础模型 ====================

type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ==================== 用户 ====================

// 用户状态
const (
	UserStatusDisabled = 0
	UserStatusActive   = 1
)

// 系统角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SysUser 系统用户
// 凭证登录后签发 Bearer Token，admin 角色可访问后台视图
type SysUser struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // 哈希密码
	Email    string `gorm:"size:100" json:"email"`
	Role     string `gorm:"size:20;default:'user'" json:"role"`
	Status   int    `gorm:"default:1;comment:0禁用 1正常" json:"status"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// 审计字段
	CreatedBy int64 `gorm:"index" json:"created_by"`
}

func (SysUser) TableName() string {
	return "sys_users"
}

// IsAdmin 是否管理员
func (u *SysUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
