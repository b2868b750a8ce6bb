package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tshirt_studio_v1/internal/middleware"
	"tshirt_studio_v1/internal/model"
	"tshirt_studio_v1/internal/repository"
	"tshirt_studio_v1/internal/service"
)

// ==================== 测试辅助 ====================

// setupUserRouter 装配真实 service + sqlite 内存库的认证路由
func setupUserRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&model.SysUser{})

	ctl := NewUserController(service.NewUserService(repository.NewUserRepository(db)))

	r := gin.New()
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ctl.Register)
		auth.POST("/login", ctl.Login)
		auth.POST("/refresh", ctl.RefreshToken)
		auth.GET("/me", middleware.JWTAuth(), ctl.Me)
	}

	users := r.Group("/api/users")
	users.Use(middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
	{
		users.GET("", ctl.ListUsers)
	}
	return r
}

func registerViaAPI(t *testing.T, r http.Handler, username string) map[string]interface{} {
	t.Helper()
	w := performAuthed(r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username": username,
		"password": "secret-123",
		"email":    username + "@example.com",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)["data"].(map[string]interface{})
}

// ==================== 认证接口测试 ====================

func TestRegister_Endpoint(t *testing.T) {
	r := setupUserRouter(t)

	data := registerViaAPI(t, r, "alice")
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	// 密码哈希绝不出现在响应里
	_, leaked := user["password"]
	assert.False(t, leaked)

	// 重名注册：409
	w := performAuthed(r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"username": "alice",
		"password": "another-pass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_InvalidParams(t *testing.T) {
	r := setupUserRouter(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"用户名过短", map[string]interface{}{"username": "ab", "password": "secret-123"}},
		{"密码过短", map[string]interface{}{"username": "alice", "password": "123"}},
		{"空请求体", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performAuthed(r, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLogin_Endpoint(t *testing.T) {
	r := setupUserRouter(t)
	registerViaAPI(t, r, "alice")

	w := performAuthed(r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"username": "alice",
		"password": "secret-123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])

	w = performAuthed(r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken_Endpoint(t *testing.T) {
	r := setupUserRouter(t)
	data := registerViaAPI(t, r, "alice")

	w := performAuthed(r, http.MethodPost, "/api/auth/refresh", "", map[string]interface{}{
		"refresh_token": data["refresh_token"],
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// 用 Access Token 冒充 Refresh Token：401
	w = performAuthed(r, http.MethodPost, "/api/auth/refresh", "", map[string]interface{}{
		"refresh_token": data["access_token"],
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_Endpoint(t *testing.T) {
	r := setupUserRouter(t)
	data := registerViaAPI(t, r, "alice")
	token := data["access_token"].(string)

	w := performAuthed(r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "alice", me["username"])

	w = performAuthed(r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ==================== 后台接口测试 ====================

// 管理接口按角色门控：普通用户 403，admin 放行
func TestListUsers_RoleGate(t *testing.T) {
	r := setupUserRouter(t)
	data := registerViaAPI(t, r, "alice")
	userToken := data["access_token"].(string)

	w := performAuthed(r, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := middleware.GenerateAccessToken(999, "root", model.RoleAdmin)
	assert.NoError(t, err)

	w = performAuthed(r, http.MethodGet, "/api/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), list["total"])
}
