package dto

import (
	"encoding/json"
	"time"

	"tshirt_studio_v1/internal/model"
)

// ==================== 请求 ====================

// QuantityInput 数量输入
// 输入框内容按字符串传，但也兼容数字形态的 JSON；两种形态都原样
// 保留文本，由服务端统一钳制，不在绑定层拒绝
type QuantityInput string

// UnmarshalJSON 兼容 "3" 与 3 两种写法
func (q *QuantityInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = QuantityInput(s)
		return nil
	}
	// 非字符串的 JSON 标量（数字/布尔/null）：保留字面文本交给钳制逻辑
	*q = QuantityInput(data)
	return nil
}

// String 原始文本
func (q QuantityInput) String() string {
	return string(q)
}

// UpdateSelectionRequest 选择项变更请求
// 所有字段可选，缺省字段不变；quantity 原样传输入框内容，由服务端钳制
type UpdateSelectionRequest struct {
	ColorKey    *string        `json:"color_key"`
	SizeKey     *string        `json:"size_key"`
	ProductName *string        `json:"product_name"`
	Description *string        `json:"description"`
	Quantity    *QuantityInput `json:"quantity"`
}

// ==================== 响应 ====================

// NotificationView 通知视图
type NotificationView struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionView 会话视图：选择状态 + 派生值
type SessionView struct {
	ID          string         `json:"id"`
	Artwork     *model.Artwork `json:"artwork,omitempty"`
	ColorKey    string         `json:"color_key"`
	ColorHex    string         `json:"color_hex"` // 当前颜色解析出的色值
	SizeKey     string         `json:"size_key"`
	ProductName string         `json:"product_name"`
	Description string         `json:"description"`
	Quantity    int            `json:"quantity"`

	Notification     *NotificationView `json:"notification,omitempty"`
	SizeChartVisible bool              `json:"size_chart_visible"`
	CanContinue      bool              `json:"can_continue"` // 展示层"继续"按钮门控

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSessionView 从会话快照组装视图
func NewSessionView(sess *model.CustomizationSession) *SessionView {
	view := &SessionView{
		ID:               sess.ID,
		Artwork:          sess.Artwork,
		ColorKey:         sess.ColorKey,
		ColorHex:         model.ResolveColorHex(sess.ColorKey),
		SizeKey:          sess.SizeKey,
		ProductName:      sess.ProductName,
		Description:      sess.Description,
		Quantity:         sess.Quantity,
		SizeChartVisible: sess.SizeChartVisible,
		CanContinue:      sess.CanContinue(),
		CreatedAt:        sess.CreatedAt,
		UpdatedAt:        sess.UpdatedAt,
	}
	if sess.Notification != nil {
		view.Notification = &NotificationView{
			Message:   sess.Notification.Message,
			ExpiresAt: sess.Notification.ExpiresAt,
		}
	}
	return view
}

// HandoffResponse 交接成功响应
type HandoffResponse struct {
	Payload *model.HandoffPayload `json:"payload"`
	Session *SessionView          `json:"session"`
}
