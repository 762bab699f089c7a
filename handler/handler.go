package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"todo-board/database"
	"todo-board/model"

	"github.com/charmbracelet/log"
)

// Response 统一响应格式
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo 错误信息
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TodoList 列表响应体
type TodoList struct {
	Todos []model.Todo `json:"todos"`
	Total int          `json:"total"`
}

// CreateTodoRequest 创建待办事项请求体，省略的字段使用默认值
type CreateTodoRequest struct {
	Title           string         `json:"title" example:"Buy groceries"`
	Description     string         `json:"description" example:"Milk, bread, and fruits"`
	Priority        model.Priority `json:"priority,omitempty" example:"2"`
	IsCompleted     bool           `json:"isCompleted" example:"false"`
	Category        model.Category `json:"category,omitempty" example:"SHOPPING"`
	BackgroundColor string         `json:"backgroundColor,omitempty" example:"#FFF9C4"`
}

// UpdateTodoRequest 更新待办事项请求体，只合并提供的字段
type UpdateTodoRequest struct {
	Title           *string         `json:"title,omitempty" example:"Update weekly report"`
	Description     *string         `json:"description,omitempty" example:"Finish and send by EOD"`
	Priority        *model.Priority `json:"priority,omitempty" example:"1"`
	IsCompleted     *bool           `json:"isCompleted,omitempty" example:"true"`
	Category        *model.Category `json:"category,omitempty" example:"WORK"`
	BackgroundColor *string         `json:"backgroundColor,omitempty" example:"#81C784"`
}

// Collection 是 handler 依赖的文档集合
type Collection interface {
	FetchAll(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id string) (*model.Todo, error)
	Create(ctx context.Context, draft model.Draft) (string, error)
	Update(ctx context.Context, id string, fields model.Fields) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*database.TodoStats, error)
}

// Handler 处理器结构体
type Handler struct {
	db     Collection
	logger *log.Logger
}

// 超时配置
const (
	ListTimeout   = 5 * time.Second // 列表查询超时
	CreateTimeout = 3 * time.Second // 创建超时
	UpdateTimeout = 3 * time.Second // 更新超时
	DeleteTimeout = 2 * time.Second // 删除超时
	StatsTimeout  = 5 * time.Second // 统计查询超时
)

// NewHandler 创建新的处理器
func NewHandler(db Collection, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{db: db, logger: logger}
}

// sendJSON 发送JSON响应
func (h *Handler) sendJSON(w http.ResponseWriter, status int, response Response) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(response); err != nil {
		// 编码失败直接返回纯文本，不能再调用 sendError（会递归）
		h.logger.Error("failed to encode response", "err", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error: Failed to encode response"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// SendError 发送错误响应
func (h *Handler) SendError(w http.ResponseWriter, status int, code, message string) {
	response := Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
	h.sendJSON(w, status, response)
}

// handleStoreError 将存储层错误映射为 HTTP 响应
func (h *Handler) handleStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		h.SendError(w, http.StatusNotFound, "NOT_FOUND", "待办事项不存在")
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("request timeout", "op", op, "err", err)
		h.SendError(w, http.StatusRequestTimeout, "TIMEOUT", "请求超时，请稍后重试")
	case errors.Is(err, context.Canceled):
		// 客户端取消请求，不需要响应
		h.logger.Debug("request canceled", "op", op, "err", err)
	default:
		h.logger.Error("store operation failed", "op", op, "err", err)
		h.SendError(w, http.StatusInternalServerError, "DATABASE_ERROR", op+" 失败")
	}
}

// decodeJSON 解析请求体，限制 1MB
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.SendError(w, http.StatusBadRequest, "INVALID_JSON", fmt.Sprintf("JSON解析失败: %v", err))
		return false
	}
	return true
}

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 返回应用当前健康状态
// @Tags health
// @Produce json
// @Success 200 {object} handler.Response
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := Response{
		Success: true,
		Data: map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
		Message: "服务运行正常",
	}
	h.sendJSON(w, http.StatusOK, response)
}

// ListTodos 获取全部待办事项
// @Summary 获取待办事项列表
// @Description 按创建时间倒序返回集合中的全部文档，过滤由客户端完成
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handler.Response{data=handler.TodoList}
// @Failure 401 {object} handler.Response
// @Failure 500 {object} handler.Response
// @Router /todos [get]
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ListTimeout)
	defer cancel()

	todos, err := h.db.FetchAll(ctx)
	if err != nil {
		h.handleStoreError(w, "查询", err)
		return
	}

	response := Response{
		Success: true,
		Data: TodoList{
			Todos: todos,
			Total: len(todos),
		},
		Message: "获取待办事项成功",
	}
	h.sendJSON(w, http.StatusOK, response)
}

// CreateTodo 创建待办事项
// @Summary 创建待办事项
// @Description 创建一个新的文档，ID 和时间戳由服务端生成
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param todo body handler.CreateTodoRequest true "待办事项内容"
// @Success 201 {object} handler.Response{data=model.Todo}
// @Failure 400 {object} handler.Response
// @Failure 401 {object} handler.Response
// @Failure 500 {object} handler.Response
// @Router /todos [post]
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), CreateTimeout)
	defer cancel()

	defer r.Body.Close()

	var req CreateTodoRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	draft := model.NewDraft(req.Title, req.Description)
	draft.IsCompleted = req.IsCompleted
	if req.Priority != 0 {
		draft.Priority = req.Priority
	}
	if req.Category != "" {
		draft.Category = req.Category
	}
	if req.BackgroundColor != "" {
		draft.BackgroundColor = req.BackgroundColor
	}

	if msg := validateDraft(draft); msg != "" {
		h.SendError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	id, err := h.db.Create(ctx, draft)
	if err != nil {
		h.handleStoreError(w, "创建", err)
		return
	}

	todo, err := h.db.Get(ctx, id)
	if err != nil {
		h.handleStoreError(w, "创建", err)
		return
	}

	h.logger.Info("todo created", "id", id)

	response := Response{
		Success: true,
		Data:    todo,
		Message: "创建待办事项成功",
	}
	h.sendJSON(w, http.StatusCreated, response)
}

// UpdateTodo 部分更新待办事项
// @Summary 更新待办事项
// @Description 合并提供的字段并刷新 updatedAt，未提供的字段保持不变
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "待办事项ID"
// @Param todo body handler.UpdateTodoRequest true "待办事项更新内容"
// @Success 200 {object} handler.Response{data=model.Todo}
// @Failure 400 {object} handler.Response
// @Failure 401 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Failure 500 {object} handler.Response
// @Router /todos/{id} [put]
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), UpdateTimeout)
	defer cancel()

	defer r.Body.Close()

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.SendError(w, http.StatusBadRequest, "INVALID_ID", "无效的ID")
		return
	}

	var req UpdateTodoRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	fields := model.Fields{
		Title:           req.Title,
		Description:     req.Description,
		Priority:        req.Priority,
		IsCompleted:     req.IsCompleted,
		Category:        req.Category,
		BackgroundColor: req.BackgroundColor,
	}
	if msg := validateFields(fields); msg != "" {
		h.SendError(w, http.StatusBadRequest, "VALIDATION_ERROR", msg)
		return
	}

	if err := h.db.Update(ctx, id, fields); err != nil {
		h.handleStoreError(w, "更新", err)
		return
	}

	todo, err := h.db.Get(ctx, id)
	if err != nil {
		h.handleStoreError(w, "更新", err)
		return
	}

	response := Response{
		Success: true,
		Data:    todo,
		Message: "更新待办事项成功",
	}
	h.sendJSON(w, http.StatusOK, response)
}

// DeleteTodo 删除待办事项
// @Summary 删除待办事项
// @Description 根据 ID 删除文档，不存在时返回 404
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "待办事项ID"
// @Success 200 {object} handler.Response
// @Failure 401 {object} handler.Response
// @Failure 404 {object} handler.Response
// @Failure 500 {object} handler.Response
// @Router /todos/{id} [delete]
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), DeleteTimeout)
	defer cancel()

	defer r.Body.Close()

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.SendError(w, http.StatusBadRequest, "INVALID_ID", "无效的ID")
		return
	}

	if err := h.db.Delete(ctx, id); err != nil {
		h.handleStoreError(w, "删除", err)
		return
	}

	h.logger.Info("todo deleted", "id", id)

	response := Response{
		Success: true,
		Message: "删除待办事项成功",
	}
	h.sendJSON(w, http.StatusOK, response)
}

// GetStats 获取统计信息
// @Summary 获取统计信息
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handler.Response{data=database.TodoStats}
// @Failure 500 {object} handler.Response
// @Router /todos/stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), StatsTimeout)
	defer cancel()

	stats, err := h.db.Stats(ctx)
	if err != nil {
		h.handleStoreError(w, "统计", err)
		return
	}

	response := Response{
		Success: true,
		Data:    stats,
		Message: "获取统计信息成功",
	}
	h.sendJSON(w, http.StatusOK, response)
}
