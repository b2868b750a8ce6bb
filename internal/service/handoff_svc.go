package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"tshirt_studio_v1/internal/model"
	"tshirt_studio_v1/pkg/client"
)

// ==================== HandoffSubmitter 交接器 ====================

// HandoffSubmitter 定制结果交接接口
// 接收方负责后续的定位与提交流程，本服务只负责投递一次
type HandoffSubmitter interface {
	Submit(ctx context.Context, payload *model.HandoffPayload) error
}

// ==================== HTTP 实现 ====================

// HTTPHandoffSubmitter 通过 API 客户端把载荷投递给定位阶段
type HTTPHandoffSubmitter struct {
	api  *client.APIClient
	path string
}

// NewHTTPHandoffSubmitter 创建 HTTP 交接器
// path: 定位阶段的接收端点，如 /api/positioning/orders
func NewHTTPHandoffSubmitter(api *client.APIClient, path string) *HTTPHandoffSubmitter {
	return &HTTPHandoffSubmitter{api: api, path: path}
}

// Submit 投递载荷（单次调用，失败不重试）
func (h *HTTPHandoffSubmitter) Submit(ctx context.Context, payload *model.HandoffPayload) error {
	resp, err := h.api.Post(ctx, h.path, payload)
	if err != nil {
		return fmt.Errorf("交接投递失败: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("交接被下游拒绝: 状态码 %d", resp.StatusCode())
	}
	return nil
}

// ==================== 内存实现 ====================

// CaptureSubmitter 内存交接器
// 本地开发与测试用，记录收到的所有载荷
type CaptureSubmitter struct {
	mu       sync.Mutex
	payloads []*model.HandoffPayload
}

// NewCaptureSubmitter 创建内存交接器
func NewCaptureSubmitter() *CaptureSubmitter {
	return &CaptureSubmitter{}
}

// Submit 记录载荷
func (c *CaptureSubmitter) Submit(ctx context.Context, payload *model.HandoffPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, payload)
	log.Printf("交接载荷已接收: name=%s color=%s size=%s qty=%d",
		payload.Name, payload.SelectedColor, payload.SelectedSize, payload.Quantity)
	return nil
}

// Payloads 返回已接收载荷的副本
func (c *CaptureSubmitter) Payloads() []*model.HandoffPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.HandoffPayload, len(c.payloads))
	copy(out, c.payloads)
	return out
}
