package task

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"tshirt_studio_v1/internal/repository"
)

// ==================== SessionCleanupTask 会话清理任务 ====================

// SessionCleanupTask 定制会话清理定时任务
// 会话仅内存存活，闲置超过 TTL 即回收，回收时同步停掉挂起的通知定时器，
// 避免定时器在会话销毁后触发、改写已丢弃的状态
type SessionCleanupTask struct {
	sessionRepo repository.SessionRepository
	cron        *cron.Cron

	idleTTL time.Duration
}

// NewSessionCleanupTask 创建会话清理任务
func NewSessionCleanupTask(sessionRepo repository.SessionRepository) *SessionCleanupTask {
	return &SessionCleanupTask{
		sessionRepo: sessionRepo,
		cron:        cron.New(cron.WithSeconds()),
		idleTTL:     30 * time.Minute,
	}
}

// SetIdleTTL 设置闲置回收阈值
func (t *SessionCleanupTask) SetIdleTTL(ttl time.Duration) {
	t.idleTTL = ttl
}

// Start 启动定时任务
func (t *SessionCleanupTask) Start() {
	// 每分钟巡检一次
	_, _ = t.cron.AddFunc("0 * * * * *", func() {
		if purged := t.sessionRepo.PurgeIdle(t.idleTTL); purged > 0 {
			log.Printf("[SessionCleanupTask] 已回收 %d 个闲置会话", purged)
		}
	})

	t.cron.Start()
	log.Println("[SessionCleanupTask] 会话清理任务已启动")
}

// Stop 停止定时任务
func (t *SessionCleanupTask) Stop() {
	t.cron.Stop()
	log.Println("[SessionCleanupTask] 会话清理任务已停止")
}
