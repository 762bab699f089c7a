// Package controller 持有权威的内存待办列表。远端存储接受修改后才更新本地，
// 每次变更都同步写入本地缓存，并派生过滤后的视图。
package controller

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"todo-board/cache"
	"todo-board/model"
	"todo-board/store"

	"github.com/charmbracelet/log"
)

// Cache 本地持久化键值存储
type Cache interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// State 展示层渲染所需的全部状态
type State struct {
	Todos          []model.Todo
	Filter         model.Filter
	CategoryFilter model.CategoryFilter
	AddDialogOpen  bool
	Dark           bool
}

// Controller 协调界面、远端存储和本地缓存
//
// 远端调用不持有状态锁，并发的修改各自完成，以最后一次本地写入为准。
type Controller struct {
	store   store.Store
	cache   Cache
	logger  *log.Logger
	now     func() time.Time
	onTheme func(dark bool)

	mu    sync.Mutex
	state State
}

// Option 控制器配置项
type Option func(*Controller)

// WithLogger 设置记录被吞掉的错误所用的 logger
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock 替换 time.Now，用于时间戳和“今天”过滤器
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithThemeHook 构造时以及每次切换主题时以当前主题调用
func WithThemeHook(fn func(dark bool)) Option {
	return func(c *Controller) { c.onTheme = fn }
}

// New 创建控制器并同步从缓存恢复列表，远端列表需调用 Start 加载
func New(s store.Store, cc Cache, opts ...Option) *Controller {
	c := &Controller{
		store:  s,
		cache:  cc,
		logger: log.Default(),
		now:    time.Now,
		state: State{
			Todos:          []model.Todo{},
			Filter:         model.FilterAll,
			CategoryFilter: model.CategoryAll,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.state.Todos = c.loadCachedTodos()
	c.state.Dark = c.loadTheme()
	if c.onTheme != nil {
		c.onTheme(c.state.Dark)
	}

	return c
}

func (c *Controller) loadCachedTodos() []model.Todo {
	raw, ok, err := c.cache.Get(cache.KeyTodos)
	if err != nil {
		c.logger.Warn("failed to read cached todos", "err", err)
		return []model.Todo{}
	}
	if !ok {
		return []model.Todo{}
	}

	var todos []model.Todo
	if err := json.Unmarshal([]byte(raw), &todos); err != nil {
		c.logger.Warn("discarding unparseable todo cache", "err", err)
		return []model.Todo{}
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos
}

func (c *Controller) loadTheme() bool {
	raw, _, err := c.cache.Get(cache.KeyTheme)
	if err != nil {
		c.logger.Warn("failed to read theme", "err", err)
		return false
	}
	return raw == "dark"
}

// Start 拉取远端列表并整体替换本地状态，失败时保留缓存中的列表
func (c *Controller) Start(ctx context.Context) {
	todos, err := c.store.FetchAll(ctx)
	if err != nil {
		c.logger.Error("failed to fetch todos", "err", err)
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setTodosLocked(todos)
}

// setTodosLocked 替换列表并写入缓存，调用方需持有锁
func (c *Controller) setTodosLocked(todos []model.Todo) {
	c.state.Todos = todos

	data, err := json.Marshal(todos)
	if err != nil {
		c.logger.Error("failed to encode todos for cache", "err", err)
		return
	}
	if err := c.cache.Set(cache.KeyTodos, string(data)); err != nil {
		c.logger.Error("failed to write todo cache", "err", err)
	}
}

func indexOf(todos []model.Todo, id string) int {
	return slices.IndexFunc(todos, func(t model.Todo) bool { return t.ID == id })
}

func (c *Controller) find(id string) (model.Todo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.state.Todos, id)
	if i < 0 {
		return model.Todo{}, false
	}
	return c.state.Todos[i], true
}

// Add 以默认字段创建待办事项并插入列表头部，空白标题直接忽略
func (c *Controller) Add(ctx context.Context, title, description string) {
	if strings.TrimSpace(title) == "" {
		return
	}

	draft := model.NewDraft(title, description)
	id, err := c.store.Create(ctx, draft)
	if err != nil {
		c.logger.Error("failed to add todo", "err", err)
		return
	}

	todo := draft.Todo(id, c.now())

	c.mu.Lock()
	defer c.mu.Unlock()

	todos := make([]model.Todo, 0, len(c.state.Todos)+1)
	todos = append(todos, todo)
	todos = append(todos, c.state.Todos...)
	c.setTodosLocked(todos)
	c.state.AddDialogOpen = false
}

// update 通用修改流程：按 id 查找，发送变更字段，远端成功后再合并到本地
func (c *Controller) update(ctx context.Context, op, id string, change func(model.Todo) model.Fields, touch bool) {
	current, ok := c.find(id)
	if !ok {
		return
	}

	fields := change(current)
	if err := c.store.Update(ctx, id, fields); err != nil {
		c.logger.Error("failed to "+op, "id", id, "err", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.state.Todos, id)
	if i < 0 {
		return
	}
	todos := slices.Clone(c.state.Todos)
	todos[i] = todos[i].Apply(fields)
	if touch {
		todos[i].UpdatedAt = c.now()
	}
	c.setTodosLocked(todos)
}

// Toggle 切换完成状态
func (c *Controller) Toggle(ctx context.Context, id string) {
	c.update(ctx, "toggle todo", id, func(t model.Todo) model.Fields {
		return model.Fields{IsCompleted: model.Ptr(!t.IsCompleted)}
	}, false)
}

// ChangePriority 在重要和普通之间切换
func (c *Controller) ChangePriority(ctx context.Context, id string) {
	c.update(ctx, "update priority", id, func(t model.Todo) model.Fields {
		next := model.PriorityImportant
		if t.Priority == model.PriorityImportant {
			next = model.PriorityNormal
		}
		return model.Fields{Priority: model.Ptr(next)}
	}, false)
}

// ChangeColor 修改背景色
func (c *Controller) ChangeColor(ctx context.Context, id, color string) {
	c.update(ctx, "update color", id, func(model.Todo) model.Fields {
		return model.Fields{BackgroundColor: model.Ptr(color)}
	}, false)
}

// ChangeCategory 修改分类，枚举之外的值被忽略
func (c *Controller) ChangeCategory(ctx context.Context, id string, category model.Category) {
	if !category.Valid() {
		c.logger.Debug("ignoring unknown category", "id", id, "category", category)
		return
	}
	c.update(ctx, "update category", id, func(model.Todo) model.Fields {
		return model.Fields{Category: model.Ptr(category)}
	}, false)
}

// Edit 替换标题和描述，并刷新本地 updatedAt
func (c *Controller) Edit(ctx context.Context, id, title, description string) {
	c.update(ctx, "update todo", id, func(model.Todo) model.Fields {
		return model.Fields{Title: model.Ptr(title), Description: model.Ptr(description)}
	}, true)
}

// Delete 远端删除成功后从列表中移除
func (c *Controller) Delete(ctx context.Context, id string) {
	if err := c.store.Delete(ctx, id); err != nil {
		c.logger.Error("failed to delete todo", "id", id, "err", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	todos := slices.DeleteFunc(slices.Clone(c.state.Todos), func(t model.Todo) bool { return t.ID == id })
	c.setTodosLocked(todos)
}

// Reorder 将可见列表中 source 位置的项移动到 destination 位置，
// 只改变本地顺序和缓存。
//
// 无论向上还是向下移动，都插入到目标项在完整列表中的下标。
// 过滤器隐藏了两者之间的项时，结果可能与放下的位置相差一格。
func (c *Controller) Reorder(source, destination int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := Visible(c.state.Todos, c.state.Filter, c.state.CategoryFilter, c.now())
	if source < 0 || source >= len(visible) || destination < 0 || destination >= len(visible) {
		return
	}

	from := indexOf(c.state.Todos, visible[source].ID)
	to := indexOf(c.state.Todos, visible[destination].ID)
	if from < 0 || to < 0 {
		return
	}

	todos := slices.Clone(c.state.Todos)
	moved := todos[from]
	todos = slices.Delete(todos, from, from+1)
	todos = slices.Insert(todos, to, moved)
	c.setTodosLocked(todos)
}

// SetFilter 设置当前视图过滤器
func (c *Controller) SetFilter(f model.Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filter = f
}

// Filter 当前视图过滤器
func (c *Controller) Filter() model.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Filter
}

// SetCategoryFilter 只显示某个分类，或 CategoryAll
func (c *Controller) SetCategoryFilter(f model.CategoryFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CategoryFilter = f
}

// CategoryFilter 当前分类过滤条件
func (c *Controller) CategoryFilter() model.CategoryFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CategoryFilter
}

// VisibleTodos 需要渲染的列表
func (c *Controller) VisibleTodos() []model.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Visible(c.state.Todos, c.state.Filter, c.state.CategoryFilter, c.now())
}

// Todos 权威列表的副本
func (c *Controller) Todos() []model.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.Todos)
}

// Snapshot 完整状态的副本
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Todos = slices.Clone(c.state.Todos)
	return s
}

func (c *Controller) OpenAddDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.AddDialogOpen = true
}

func (c *Controller) CloseAddDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.AddDialogOpen = false
}

func (c *Controller) AddDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.AddDialogOpen
}
