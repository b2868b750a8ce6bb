package repository

import (
	"sync"
	"time"

	"tshirt_studio_v1/internal/model"
)

// ==================== SessionRepository 定制会话仓库 ====================

// SessionRepository 定制会话仓库接口
// 会话仅存活于内存，进程结束即丢弃（不持久化进行中的定制）
type SessionRepository interface {
	Save(sess *model.CustomizationSession)
	Get(id string) (*model.CustomizationSession, bool)
	// Update 在会话锁内执行变更，返回变更后的快照
	// 同一会话的所有变更串行化，等价于浏览器端的单线程事件模型
	Update(id string, fn func(*model.CustomizationSession)) (*model.CustomizationSession, bool)
	// SwapClearTimer 登记新的通知清除定时器，并停掉旧的
	SwapClearTimer(id string, t *time.Timer)
	Delete(id string)
	// PurgeIdle 清理闲置超过 ttl 的会话，返回清理数量
	PurgeIdle(ttl time.Duration) int
}

// ==================== 实现 ====================

// sessionEntry 内部条目，会话 + 专属锁 + 通知定时器
type sessionEntry struct {
	mu    sync.Mutex
	sess  *model.CustomizationSession
	timer *time.Timer
}

type sessionRepository struct {
	entries sync.Map // id -> *sessionEntry
}

// NewSessionRepository 创建内存会话仓库
func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

// Save 保存会话
func (r *sessionRepository) Save(sess *model.CustomizationSession) {
	r.entries.Store(sess.ID, &sessionEntry{sess: sess})
}

// Get 读取会话快照
func (r *sessionRepository) Get(id string) (*model.CustomizationSession, bool) {
	val, ok := r.entries.Load(id)
	if !ok {
		return nil, false
	}
	entry := val.(*sessionEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return snapshot(entry.sess), true
}

// Update 在锁内变更会话
func (r *sessionRepository) Update(id string, fn func(*model.CustomizationSession)) (*model.CustomizationSession, bool) {
	val, ok := r.entries.Load(id)
	if !ok {
		return nil, false
	}
	entry := val.(*sessionEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	fn(entry.sess)
	return snapshot(entry.sess), true
}

// SwapClearTimer 替换通知定时器
// 旧定时器必须停掉，避免旧通知的定时器清掉新通知
func (r *sessionRepository) SwapClearTimer(id string, t *time.Timer) {
	val, ok := r.entries.Load(id)
	if !ok {
		if t != nil {
			t.Stop()
		}
		return
	}
	entry := val.(*sessionEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.timer != nil {
		entry.timer.Stop()
	}
	entry.timer = t
}

// Delete 删除会话并停掉挂起的定时器
func (r *sessionRepository) Delete(id string) {
	val, ok := r.entries.LoadAndDelete(id)
	if !ok {
		return
	}
	entry := val.(*sessionEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.timer != nil {
		entry.timer.Stop()
		entry.timer = nil
	}
}

// PurgeIdle 清理闲置会话
func (r *sessionRepository) PurgeIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	purged := 0

	r.entries.Range(func(key, val interface{}) bool {
		entry := val.(*sessionEntry)
		entry.mu.Lock()
		idle := entry.sess.UpdatedAt.Before(cutoff)
		entry.mu.Unlock()

		if idle {
			r.Delete(key.(string))
			purged++
		}
		return true
	})
	return purged
}

// snapshot 复制会话，调用方拿到的对象不受后续变更影响
func snapshot(s *model.CustomizationSession) *model.CustomizationSession {
	out := *s
	if s.Artwork != nil {
		a := *s.Artwork
		out.Artwork = &a
	}
	if s.Notification != nil {
		n := *s.Notification
		out.Notification = &n
	}
	return &out
}
