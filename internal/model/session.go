package model

import (
	"errors"
	"strings"
	"time"
)

// ==================== 业务常量 ====================

const (
	// MaxArtworkBytes 上传图片大小上限 10MiB
	MaxArtworkBytes = 10 * 1024 * 1024

	// NotificationTTL 通知展示时长
	NotificationTTL = 3000 * time.Millisecond
)

// 校验失败提示（面向用户的文案，保持与前端一致）
var (
	ErrArtworkMissing = errors.New("Please upload a design first")
	ErrNameMissing    = errors.New("Please enter a product name")
	ErrQuantityTooLow = errors.New("Quantity must be at least 1")
)

// ==================== 领域对象 ====================

// Artwork 已上传的设计图
// 转码为自包含 data URI 后整体替换，不存在部分更新的中间态
type Artwork struct {
	DataURI   string `json:"data_uri"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Notification 单槽位瞬时通知
// Token 用于识别"这条通知"，过期定时器只清除自己那条
type Notification struct {
	Message   string    `json:"message"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CustomizationSession 商品定制会话（选择状态）
// 仅内存态，一次购物交互一个会话，互相独立
type CustomizationSession struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Artwork     *Artwork `json:"artwork,omitempty"`
	ColorKey    string   `json:"color_key"`
	SizeKey     string   `json:"size_key"`
	ProductName string   `json:"product_name"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`

	Notification     *Notification `json:"notification,omitempty"`
	SizeChartVisible bool          `json:"size_chart_visible"`
}

// NewCustomizationSession 创建带默认选择的会话
func NewCustomizationSession(id string, userID int64) *CustomizationSession {
	now := time.Now()
	return &CustomizationSession{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		ColorKey:  DefaultColorKey,
		SizeKey:   DefaultSizeKey,
		Quantity:  1,
	}
}

// ==================== 校验与派生 ====================

// CanHandoff 检查是否满足交接条件
// 按固定顺序短路：设计图 -> 商品名 -> 数量，返回第一个未满足项
func (s *CustomizationSession) CanHandoff() error {
	if s.Artwork == nil {
		return ErrArtworkMissing
	}
	if strings.TrimSpace(s.ProductName) == "" {
		return ErrNameMissing
	}
	if s.Quantity < 1 {
		return ErrQuantityTooLow
	}
	return nil
}

// CanContinue 展示层的"继续"按钮门控
// 是 CanHandoff 前两条规则的简化复刻，二者必须保持逻辑一致
func (s *CustomizationSession) CanContinue() bool {
	return s.Artwork != nil && strings.TrimSpace(s.ProductName) != ""
}

// SetArtwork 整体替换设计图
func (s *CustomizationSession) SetArtwork(a *Artwork) {
	s.Artwork = a
	s.UpdatedAt = time.Now()
}

// Touch 更新活跃时间
func (s *CustomizationSession) Touch() {
	s.UpdatedAt = time.Now()
}

// ==================== 交接载荷 ====================

// HandoffPayload 传递给下一阶段（定位/结算）的定制结果
// 只有 CanHandoff 通过时才构造
type HandoffPayload struct {
	UploadedImage    string `json:"uploadedImage"`
	UploadedFileName string `json:"uploadedFileName"`
	SelectedColor    string `json:"selectedColor"`
	SelectedSize     string `json:"selectedSize"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Quantity         int    `json:"quantity"`
}

// BuildHandoffPayload 从会话构造交接载荷（文本字段去除首尾空白）
// 调用方必须先通过 CanHandoff 校验
func (s *CustomizationSession) BuildHandoffPayload() *HandoffPayload {
	return &HandoffPayload{
		UploadedImage:    s.Artwork.DataURI,
		UploadedFileName: s.Artwork.FileName,
		SelectedColor:    s.ColorKey,
		SelectedSize:     s.SizeKey,
		Name:             strings.TrimSpace(s.ProductName),
		Description:      strings.TrimSpace(s.Description),
		Quantity:         s.Quantity,
	}
}
