package database

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tshirt_studio_v1/internal/model"
)

// 连接池默认值，可用环境变量覆盖
const (
	defaultMaxIdleConns = 10
	defaultMaxOpenConns = 100
)

// InitDB 初始化定制平台数据库
// 定制会话本身只存内存，这里只落账号体系（sys_users）
// dsn: 数据库连接字符串
func InitDB(dsn string) *gorm.DB {
	// 开发环境打印所有 SQL，方便排查账号/权限问题
	dbLogger := logger.Default.LogMode(logger.Info)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		log.Fatalf("定制平台数据库连接失败: %v", err)
	}

	// 获取底层的 sqlDB 对象，用于设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("获取底层 SQL DB 失败: %v", err)
	}

	sqlDB.SetMaxIdleConns(getEnvInt("DB_MAX_IDLE_CONNS", defaultMaxIdleConns))
	sqlDB.SetMaxOpenConns(getEnvInt("DB_MAX_OPEN_CONNS", defaultMaxOpenConns))
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("定制平台数据库连接成功")

	if err := db.AutoMigrate(&model.SysUser{}); err != nil {
		log.Fatalf("账号表自动迁移失败: %v", err)
	}

	return db
}

// getEnvInt 读取整型环境变量，缺省或非法时返回默认值
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return defaultValue
	}
	return n
}
