package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ==================== 凭证记录 ====================

// storageKey 持久化文件名，整个客户端只有这一条记录
const storageKey = "user"

// UserRecord 持久化的用户记录（用户属性 + Bearer Token）
// 记录不存在即视为未登录
type UserRecord struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// ==================== 事件 ====================

// Event 登录态变更事件
type Event int

const (
	EventLogin Event = iota + 1
	EventLogout
)

// ==================== CredentialStore 凭证存储 ====================

// CredentialStore 单条凭证记录的显式 get/set/clear 管理
// 替代散落各处的隐式全局读取；登录/登出通过订阅机制广播
type CredentialStore struct {
	mu            sync.RWMutex
	path          string
	current       *UserRecord
	loadErr       error // 已存在但无法解析的记录，容忍但保留错误
	authenticated bool
	subs          []func(Event, *UserRecord)
}

// NewCredentialStore 创建凭证存储，dir 为客户端本地存储目录
func NewCredentialStore(dir string) *CredentialStore {
	s := &CredentialStore{
		path: filepath.Join(dir, storageKey+".json"),
	}
	s.load()
	return s
}

// load 读取已持久化的记录
// 解析失败不致命：保留错误供调用方记录日志，按未登录处理
func (s *CredentialStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.loadErr = err
		}
		return
	}

	var rec UserRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.loadErr = fmt.Errorf("凭证记录解析失败: %w", err)
		return
	}
	s.current = &rec
	s.authenticated = true
}

// Get 读取当前记录，记录不存在返回 nil
// 第二个返回值为残留的解析错误（有错误时记录视为不存在）
func (s *CredentialStore) Get() (*UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, s.loadErr
	}
	rec := *s.current
	return &rec, nil
}

// Authenticated 当前是否已登录
func (s *CredentialStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Set 写入记录并持久化，同时置已登录标记
func (s *CredentialStore) Set(rec *UserRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.mu.Unlock()
		return err
	}
	copied := *rec
	s.current = &copied
	s.authenticated = true
	s.loadErr = nil
	subs := append([]func(Event, *UserRecord){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(EventLogin, &copied)
	}
	return nil
}

// Clear 清除记录（登出）
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.mu.Unlock()
		return err
	}
	s.current = nil
	s.authenticated = false
	s.loadErr = nil
	subs := append([]func(Event, *UserRecord){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(EventLogout, nil)
	}
	return nil
}

// Subscribe 订阅登录态变更
func (s *CredentialStore) Subscribe(fn func(Event, *UserRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
