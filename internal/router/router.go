package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tshirt_studio_v1/internal/controller"
	"tshirt_studio_v1/internal/middleware"
	"tshirt_studio_v1/internal/model"

	_ "tshirt_studio_v1/docs"
)

// Controllers 控制器集合
type Controllers struct {
	User    *controller.UserController
	Session *controller.SessionController
}

// uploadCooldown 上传接口冷却间隔
const uploadCooldown = 2 * time.Second

// SetupRouter 注册所有路由
func SetupRouter(ctl *Controllers) *gin.Engine {
	r := gin.Default()

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// auth 认证组（无需登录）
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctl.User.Register)
			auth.POST("/login", ctl.User.Login)
			auth.POST("/refresh", ctl.User.RefreshToken)
			auth.GET("/me", middleware.JWTAuth(), ctl.User.Me)
		}

		// catalog 目录组（参考数据，无需登录）
		catalog := api.Group("/catalog")
		{
			catalog.GET("/colors", ctl.Session.GetColors)
			catalog.GET("/sizes", ctl.Session.GetSizes)
			catalog.GET("/size-chart", ctl.Session.GetSizeChart)
		}

		// sessions 定制会话组
		sessions := api.Group("/sessions", middleware.JWTAuth(), middleware.Audit())
		{
			sessions.POST("", ctl.Session.CreateSession)
			sessions.GET("/:id", ctl.Session.GetSession)
			sessions.PATCH("/:id", ctl.Session.UpdateSelection)
			sessions.DELETE("/:id", ctl.Session.DeleteSession)
			sessions.POST("/:id/artwork", middleware.UploadRateLimit(uploadCooldown), ctl.Session.UploadArtwork)
			sessions.POST("/:id/size-chart/open", ctl.Session.OpenSizeChart)
			sessions.POST("/:id/size-chart/close", ctl.Session.CloseSizeChart)
			sessions.GET("/:id/preview", ctl.Session.GetPreview)
			sessions.POST("/:id/handoff", ctl.Session.RequestHandoff)
		}

		// users 后台管理组（仅 admin）
		users := api.Group("/users", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
		{
			users.GET("", ctl.User.ListUsers)
		}
	}

	return r
}
