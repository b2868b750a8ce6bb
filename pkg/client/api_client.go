package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 错误分类 ====================

// 客户端错误分类
// 低层组件只分类不处置，处置（强制登出/跳转）collect 在 Coordinator
var (
	// ErrUnauthorized 响应 401，token 过期或无效
	ErrUnauthorized = errors.New("未授权，请重新登录")
	// ErrNetwork 网络层失败（无响应 / 连接 / CORS 一类）
	ErrNetwork = errors.New("网络错误，请检查后端服务是否可达")
)

// ==================== APIClient ====================

// requestTimeout 全局请求超时
const requestTimeout = 10 * time.Second

// APIClient 统一出站请求入口
// 出站请求自动附带 Bearer Token；401 与网络错误分类后返回给调用方
type APIClient struct {
	http  *resty.Client
	store *CredentialStore
}

// DefaultBaseURL 从环境读取后端地址
func DefaultBaseURL() string {
	if url := os.Getenv("BACKEND_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// NewAPIClient 创建 API 客户端
func NewAPIClient(baseURL string, store *CredentialStore) *APIClient {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json")

	c := &APIClient{http: httpClient, store: store}

	// 出站拦截：有凭证记录就带 token；记录损坏则记日志后匿名放行
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		rec, err := store.Get()
		if err != nil {
			log.Printf("读取凭证记录失败: %v", err)
			return nil
		}
		if rec != nil && rec.Token != "" {
			req.SetAuthToken(rec.Token)
		}
		return nil
	})

	return c
}

// Get 发起 GET 请求
func (c *APIClient) Get(ctx context.Context, path string) (*resty.Response, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	return c.classify(resp, err)
}

// Post 发起 POST 请求
func (c *APIClient) Post(ctx context.Context, path string, body interface{}) (*resty.Response, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(path)
	return c.classify(resp, err)
}

// Patch 发起 PATCH 请求
func (c *APIClient) Patch(ctx context.Context, path string, body interface{}) (*resty.Response, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(body).Patch(path)
	return c.classify(resp, err)
}

// classify 响应分类
// 网络失败记一条诊断日志后抛给调用方，不自动重试
func (c *APIClient) classify(resp *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		log.Printf("请求失败（网络层）: %v", err)
		return resp, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return resp, ErrUnauthorized
	}
	return resp, nil
}

// ==================== Coordinator 顶层处置 ====================

// Coordinator 登录态处置协调器
// 401 的全局副作用（清凭证 + 回到首页）只在这里发生，不在客户端内部
type Coordinator struct {
	store        *CredentialStore
	navigateHome func()
}

// NewCoordinator 创建协调器
// navigateHome: 回到应用根路由的回调
func NewCoordinator(store *CredentialStore, navigateHome func()) *Coordinator {
	return &Coordinator{store: store, navigateHome: navigateHome}
}

// Handle 处理一次调用返回的错误
// 401 触发强制登出 + 跳转；其他错误原样返回交由调用方展示
func (co *Coordinator) Handle(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnauthorized) {
		if clearErr := co.store.Clear(); clearErr != nil {
			log.Printf("清除凭证失败: %v", clearErr)
		}
		if co.navigateHome != nil {
			co.navigateHome()
		}
	}
	return err
}
