package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==================== 测试辅助 ====================

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	return NewCredentialStore(t.TempDir())
}

// ==================== 出站 Token 附带 ====================

func TestAPIClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newTestStore(t)
	assert.NoError(t, store.Set(&UserRecord{ID: 1, Username: "alice", Token: "tok-1"}))

	c := NewAPIClient(srv.URL, store)
	_, err := c.Get(context.Background(), "/api/sessions/s1")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

// 无凭证记录时匿名放行，不附带 Authorization 头
func TestAPIClient_AnonymousWithoutRecord(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL, newTestStore(t))
	_, err := c.Get(context.Background(), "/api/catalog/colors")
	assert.NoError(t, err)
	assert.Empty(t, gotAuth)
}

// ==================== 错误分类 ====================

func TestAPIClient_Classify401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL, newTestStore(t))
	_, err := c.Get(context.Background(), "/api/auth/me")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// 非 401 的业务错误不归类为未授权
func TestAPIClient_OtherStatusNotClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL, newTestStore(t))
	resp, err := c.Post(context.Background(), "/api/sessions/s1/handoff", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
}

func TestAPIClient_NetworkError(t *testing.T) {
	// 关掉的服务器：连接必然失败
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewAPIClient(srv.URL, newTestStore(t))
	_, err := c.Get(context.Background(), "/api/catalog/colors")
	assert.ErrorIs(t, err, ErrNetwork)
}

// ==================== Coordinator 处置 ====================

func TestCoordinator_HandleUnauthorized(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Set(&UserRecord{ID: 1, Username: "alice", Token: "tok-1"}))

	navigated := false
	co := NewCoordinator(store, func() { navigated = true })

	err := co.Handle(ErrUnauthorized)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// 401 的处置：清凭证 + 回首页
	assert.False(t, store.Authenticated())
	assert.True(t, navigated)
}

// 网络错误只展示不登出
func TestCoordinator_NetworkErrorKeepsSession(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Set(&UserRecord{ID: 1, Username: "alice", Token: "tok-1"}))

	navigated := false
	co := NewCoordinator(store, func() { navigated = true })

	err := co.Handle(ErrNetwork)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.True(t, store.Authenticated())
	assert.False(t, navigated)

	assert.NoError(t, co.Handle(nil))
}
