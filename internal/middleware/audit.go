package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ==================== 审计上下文 ====================

// AuditContext Key
type auditContextKey struct{}

// AuditInfo 审计信息
type AuditInfo struct {
	UserID   int64
	Username string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, userID int64, username string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{
		UserID:   userID,
		Username: username,
	})
}

// GetAuditInfo 从 context 获取审计信息
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// GetAuditUserID 从 context 获取审计用户 ID
func GetAuditUserID(ctx context.Context) int64 {
	if info := GetAuditInfo(ctx); info != nil {
		return info.UserID
	}
	return 0
}

// Audit 审计中间件
// 在 JWTAuth 之后挂载，把当前用户写入 request context，供 service 层记录操作人
func Audit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextKeyUserID)
		if userID > 0 {
			ctx := WithAuditInfo(c.Request.Context(), userID, c.GetString(ContextKeyUsername))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
