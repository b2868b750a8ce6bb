package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== UploadRateLimiter 上传限流器 ====================

// UploadRateLimiter 上传接口限流器
// 图片转码是整个流程里唯一的重操作，防止同一用户连点上传
type UploadRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalUploadLimiter = &UploadRateLimiter{}

// GetUploadLimiter 获取全局限流器
func GetUploadLimiter() *UploadRateLimiter {
	return globalUploadLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键，如 "upload:42"
// interval: 冷却间隔
func (r *UploadRateLimiter) Check(key string, interval time.Duration) CheckResult {
	// 获取或创建锁条目
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)
	if elapsed < interval {
		return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// ==================== Gin 中间件 ====================

// UploadRateLimit 上传接口限流中间件（按用户维度）
func UploadRateLimit(interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("upload:%d", c.GetInt64(ContextKeyUserID))

		result := globalUploadLimiter.Check(key, interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": fmt.Sprintf("操作过于频繁，请 %.0f 秒后重试", result.RetryAfter.Seconds()),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
