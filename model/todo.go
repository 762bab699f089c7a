package model

import (
	"regexp"
	"time"
)

// DefaultBackgroundColor 便签默认背景色（淡黄色）
const DefaultBackgroundColor = "#FFF9C4"

// Priority 优先级
type Priority int

const (
	PriorityImportant Priority = 1
	PriorityNormal    Priority = 2
	// PriorityLow 仅为兼容保留，业务逻辑不会产生该值
	PriorityLow Priority = 3
)

// Valid 判断优先级是否合法
func (p Priority) Valid() bool {
	return p == PriorityImportant || p == PriorityNormal || p == PriorityLow
}

// Todo 表示一个待办事项（便签）
type Todo struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Priority        Priority  `json:"priority"`
	IsCompleted     bool      `json:"isCompleted"`
	Category        Category  `json:"category"`
	BackgroundColor string    `json:"backgroundColor"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Draft 创建待办事项时提交的内容，不含 ID 和时间戳
type Draft struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Priority        Priority `json:"priority"`
	IsCompleted     bool     `json:"isCompleted"`
	Category        Category `json:"category"`
	BackgroundColor string   `json:"backgroundColor"`
}

// NewDraft 使用默认值创建一个草稿
func NewDraft(title, description string) Draft {
	return Draft{
		Title:           title,
		Description:     description,
		Priority:        PriorityNormal,
		IsCompleted:     false,
		Category:        CategoryOther,
		BackgroundColor: DefaultBackgroundColor,
	}
}

// Todo 根据存储返回的 ID 和本地时间构造完整的待办事项
func (d Draft) Todo(id string, now time.Time) Todo {
	return Todo{
		ID:              id,
		Title:           d.Title,
		Description:     d.Description,
		Priority:        d.Priority,
		IsCompleted:     d.IsCompleted,
		Category:        d.Category,
		BackgroundColor: d.BackgroundColor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Fields 部分更新，nil 表示不修改
type Fields struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Priority        *Priority `json:"priority,omitempty"`
	IsCompleted     *bool     `json:"isCompleted,omitempty"`
	Category        *Category `json:"category,omitempty"`
	BackgroundColor *string   `json:"backgroundColor,omitempty"`
}

// Empty 没有任何需要修改的字段
func (f Fields) Empty() bool {
	return f.Title == nil && f.Description == nil && f.Priority == nil &&
		f.IsCompleted == nil && f.Category == nil && f.BackgroundColor == nil
}

// Apply 返回合并了 f 中字段的副本
func (t Todo) Apply(f Fields) Todo {
	if f.Title != nil {
		t.Title = *f.Title
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
	if f.IsCompleted != nil {
		t.IsCompleted = *f.IsCompleted
	}
	if f.Category != nil {
		t.Category = *f.Category
	}
	if f.BackgroundColor != nil {
		t.BackgroundColor = *f.BackgroundColor
	}
	return t
}

// WithDefaults 为缺失的分类和背景色填充默认值
func (t Todo) WithDefaults() Todo {
	if t.Category == "" {
		t.Category = CategoryOther
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = DefaultBackgroundColor
	}
	return t
}

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidColor 判断是否为 #RRGGBB 格式
func ValidColor(c string) bool {
	return colorPattern.MatchString(c)
}

// MemoColor 调色板中的一种颜色
type MemoColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MemoColors 便签调色板，前五个为深色，后五个为浅色
var MemoColors = []MemoColor{
	{Name: "deep yellow", Value: "#FFE082"},
	{Name: "deep pink", Value: "#F48FB1"},
	{Name: "deep green", Value: "#81C784"},
	{Name: "deep blue", Value: "#64B5F6"},
	{Name: "deep orange", Value: "#FFB74D"},
	{Name: "light yellow", Value: "#FFF9C4"},
	{Name: "light pink", Value: "#FCEAFF"},
	{Name: "light green", Value: "#F1F8E9"},
	{Name: "light blue", Value: "#E3F2FD"},
	{Name: "light orange", Value: "#FFF3E0"},
}

// Ptr 返回 v 的指针，便于构造 Fields
func Ptr[T any](v T) *T {
	return &v
}
