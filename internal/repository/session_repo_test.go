package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tshirt_studio_v1/internal/model"
)

func TestSessionRepository_SaveAndGet(t *testing.T) {
	repo := NewSessionRepository()
	sess := model.NewCustomizationSession("s1", 1)
	repo.Save(sess)

	got, ok := repo.Get("s1")
	assert.True(t, ok)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, int64(1), got.UserID)

	_, ok = repo.Get("missing")
	assert.False(t, ok)
}

// 快照隔离：拿到的副本不随后续变更而变
func TestSessionRepository_SnapshotIsolation(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(model.NewCustomizationSession("s1", 1))

	before, _ := repo.Get("s1")

	repo.Update("s1", func(s *model.CustomizationSession) {
		s.ProductName = "Logo Tee"
		s.Artwork = &model.Artwork{FileName: "logo.png"}
	})

	assert.Empty(t, before.ProductName)
	assert.Nil(t, before.Artwork)

	after, _ := repo.Get("s1")
	assert.Equal(t, "Logo Tee", after.ProductName)
	assert.Equal(t, "logo.png", after.Artwork.FileName)

	// 反向修改快照也不得污染仓库内的会话
	after.Artwork.FileName = "hacked.png"
	fresh, _ := repo.Get("s1")
	assert.Equal(t, "logo.png", fresh.Artwork.FileName)
}

// 同一会话的并发变更串行化
func TestSessionRepository_ConcurrentUpdates(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(model.NewCustomizationSession("s1", 1))

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo.Update("s1", func(s *model.CustomizationSession) {
				s.Quantity++
			})
		}()
	}
	wg.Wait()

	got, _ := repo.Get("s1")
	assert.Equal(t, 101, got.Quantity) // 初始为 1
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(model.NewCustomizationSession("s1", 1))

	fired := make(chan struct{}, 1)
	repo.SwapClearTimer("s1", time.AfterFunc(50*time.Millisecond, func() {
		fired <- struct{}{}
	}))

	repo.Delete("s1")
	_, ok := repo.Get("s1")
	assert.False(t, ok)

	// 删除时定时器被停掉
	select {
	case <-fired:
		t.Fatal("删除后定时器不应再触发")
	case <-time.After(120 * time.Millisecond):
	}

	// 重复删除是空操作
	repo.Delete("s1")
}

func TestSessionRepository_SwapClearTimerStopsOld(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(model.NewCustomizationSession("s1", 1))

	oldFired := make(chan struct{}, 1)
	repo.SwapClearTimer("s1", time.AfterFunc(50*time.Millisecond, func() {
		oldFired <- struct{}{}
	}))

	newFired := make(chan struct{}, 1)
	repo.SwapClearTimer("s1", time.AfterFunc(50*time.Millisecond, func() {
		newFired <- struct{}{}
	}))

	select {
	case <-oldFired:
		t.Fatal("被替换的定时器不应触发")
	case <-newFired:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("新定时器未触发")
	}
}

func TestSessionRepository_PurgeIdle(t *testing.T) {
	repo := NewSessionRepository()

	stale := model.NewCustomizationSession("stale", 1)
	stale.UpdatedAt = time.Now().Add(-time.Hour)
	repo.Save(stale)

	fresh := model.NewCustomizationSession("fresh", 1)
	repo.Save(fresh)

	purged := repo.PurgeIdle(30 * time.Minute)
	assert.Equal(t, 1, purged)

	_, ok := repo.Get("stale")
	assert.False(t, ok)
	_, ok = repo.Get("fresh")
	assert.True(t, ok)
}
