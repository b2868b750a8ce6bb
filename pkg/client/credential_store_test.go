package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCredentialStore_SetGetClear(t *testing.T) {
	store := NewCredentialStore(t.TempDir())

	// 初始为未登录
	rec, err := store.Get()
	assert.NoError(t, err)
	assert.Nil(t, rec)
	assert.False(t, store.Authenticated())

	err = store.Set(&UserRecord{ID: 1, Username: "alice", Role: "user", Token: "tok-1"})
	assert.NoError(t, err)
	assert.True(t, store.Authenticated())

	rec, err = store.Get()
	assert.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)
	assert.Equal(t, "tok-1", rec.Token)

	assert.NoError(t, store.Clear())
	rec, err = store.Get()
	assert.NoError(t, err)
	assert.Nil(t, rec)
	assert.False(t, store.Authenticated())

	// 重复清除是空操作
	assert.NoError(t, store.Clear())
}

// 记录跨进程存活：新实例从磁盘恢复
func TestCredentialStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first := NewCredentialStore(dir)
	assert.NoError(t, first.Set(&UserRecord{ID: 1, Username: "alice", Token: "tok-1"}))

	second := NewCredentialStore(dir)
	assert.True(t, second.Authenticated())
	rec, err := second.Get()
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", rec.Token)
}

// 损坏的记录容忍为未登录，不得崩溃
func TestCredentialStore_CorruptRecordTolerated(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))

	store := NewCredentialStore(dir)
	assert.False(t, store.Authenticated())

	rec, err := store.Get()
	assert.Nil(t, rec)
	assert.Error(t, err)

	// 重新登录后错误被覆盖
	assert.NoError(t, store.Set(&UserRecord{ID: 1, Username: "alice", Token: "tok-1"}))
	rec, err = store.Get()
	assert.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)
}

func TestCredentialStore_Subscribe(t *testing.T) {
	store := NewCredentialStore(t.TempDir())

	var events []Event
	store.Subscribe(func(e Event, rec *UserRecord) {
		events = append(events, e)
		if e == EventLogin {
			assert.Equal(t, "alice", rec.Username)
		} else {
			assert.Nil(t, rec)
		}
	})

	assert.NoError(t, store.Set(&UserRecord{ID: 1, Username: "alice", Token: "tok-1"}))
	assert.NoError(t, store.Clear())
	assert.Equal(t, []Event{EventLogin, EventLogout}, events)
}

// Get 返回的是副本，调用方改动不污染存储
func TestCredentialStore_GetReturnsCopy(t *testing.T) {
	store := NewCredentialStore(t.TempDir())
	assert.NoError(t, store.Set(&UserRecord{ID: 1, Username: "alice", Token: "tok-1"}))

	rec, _ := store.Get()
	rec.Token = "tampered"

	fresh, _ := store.Get()
	assert.Equal(t, "tok-1", fresh.Token)
}
