package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"tshirt_studio_v1/internal/controller"
	"tshirt_studio_v1/internal/repository"
	"tshirt_studio_v1/internal/router"
	"tshirt_studio_v1/internal/service"
	"tshirt_studio_v1/internal/task"
	"tshirt_studio_v1/pkg/client"
	"tshirt_studio_v1/pkg/database"
)

func main() {
	// 0. 加载 .env（不存在则忽略，沿用进程环境）
	_ = godotenv.Load()

	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User    repository.UserRepository
	Session repository.SessionRepository
}

// Services 服务集合
type Services struct {
	User          *service.UserService
	Customization *service.CustomizationService
	Preview       *service.PreviewService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=tshirt_admin password=1234 dbname=tshirt_studio port=5432 sslmode=disable")
	return database.InitDB(dsn)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:    repository.NewUserRepository(db),
		Session: repository.NewSessionRepository(),
	}

	// -------- 交接器 --------
	handoff := initHandoffSubmitter()

	// -------- 业务服务 --------
	services := &Services{
		User:          service.NewUserService(repos.User),
		Customization: service.NewCustomizationService(repos.Session, handoff),
		Preview:       service.NewPreviewService(),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		User:    controller.NewUserController(services.User),
		Session: controller.NewSessionController(services.Customization, services.Preview),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initHandoffSubmitter 初始化交接器
// 配置了定位阶段地址时走 HTTP 投递，否则用内存交接器兜底（本地开发）
func initHandoffSubmitter() service.HandoffSubmitter {
	handoffURL := getEnv("HANDOFF_BASE_URL", "")
	if handoffURL == "" {
		log.Println("未配置 HANDOFF_BASE_URL，交接载荷仅记录在内存")
		return service.NewCaptureSubmitter()
	}

	store := client.NewCredentialStore(getEnv("CLIENT_STATE_DIR", os.TempDir()))
	api := client.NewAPIClient(handoffURL, store)
	return service.NewHTTPHandoffSubmitter(api, getEnv("HANDOFF_PATH", "/api/positioning/orders"))
}

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	cleanupTask := task.NewSessionCleanupTask(deps.Repos.Session)
	cleanupTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r http.Handler) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动，监听端口 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到退出信号，开始优雅关闭...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务关闭异常: %v", err)
	}
	log.Println("服务已退出")
}

// getEnv 读取环境变量，缺省时返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
