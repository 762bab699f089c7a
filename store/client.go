package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"todo-board/model"
)

// DefaultTimeout 调用方 context 没有截止时间时单个请求的超时
const DefaultTimeout = 10 * time.Second

// APIError 集合 API 返回的非 2xx 响应
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("todo api: status %d", e.Status)
	}
	return fmt.Sprintf("todo api: %s (%d): %s", e.Code, e.Status, e.Message)
}

// Is 使 errors.Is(err, ErrNotFound) 能匹配 404
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client 访问 cmd/server 提供的集合 API
type Client struct {
	base   string
	http   *http.Client
	tokens func() (string, error)
}

// ClientOption 客户端配置项
type ClientOption func(*Client)

// WithHTTPClient 替换默认的 http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithToken 每个请求都携带固定的 Bearer Token
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.tokens = func() (string, error) { return token, nil }
	}
}

// WithTokenSource 每次请求前调用 fn 获取 Bearer Token
func WithTokenSource(fn func() (string, error)) ClientOption {
	return func(c *Client) { c.tokens = fn }
}

// NewClient 创建访问 endpoint（例如 http://localhost:7789）下 API 的客户端
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must be http or https", endpoint)
	}

	c := &Client{
		base: strings.TrimRight(endpoint, "/") + "/api/v1/todos",
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, r)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens()
		if err != nil {
			return fmt.Errorf("obtain token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// FetchAll 按创建时间倒序获取全部文档，缺失的分类和背景色填充默认值
func (c *Client) FetchAll(ctx context.Context) ([]model.Todo, error) {
	var list struct {
		Todos []model.Todo `json:"todos"`
	}
	if err := c.do(ctx, http.MethodGet, "", nil, &list); err != nil {
		return nil, err
	}

	todos := make([]model.Todo, len(list.Todos))
	for i, t := range list.Todos {
		todos[i] = t.WithDefaults()
	}
	return todos, nil
}

// Create 插入草稿并返回服务端分配的 id
func (c *Client) Create(ctx context.Context, draft model.Draft) (string, error) {
	var created model.Todo
	if err := c.do(ctx, http.MethodPost, "", draft, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("create: server returned no id")
	}
	return created.ID, nil
}

// Update 将 fields 合并到指定 id 的文档
func (c *Client) Update(ctx context.Context, id string, fields model.Fields) error {
	return c.do(ctx, http.MethodPut, "/"+url.PathEscape(id), fields, nil)
}

// Delete 删除指定 id 的文档，id 不存在时返回 ErrNotFound
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/"+url.PathEscape(id), nil, nil)
}

var _ Store = (*Client)(nil)
