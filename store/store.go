// Package store 列表控制器与远端 todos 集合之间的边界
package store

import (
	"context"
	"errors"

	"todo-board/model"
)

// ErrNotFound 远端集合中没有该 id 的文档
var ErrNotFound = errors.New("todo not found")

// Store 列表控制器依赖的文档操作
type Store interface {
	// FetchAll 按创建时间倒序返回全部文档
	FetchAll(ctx context.Context) ([]model.Todo, error)
	// Create 插入文档并返回存储分配的 id
	Create(ctx context.Context, draft model.Draft) (string, error)
	// Update 将给定字段合并到已有文档
	Update(ctx context.Context, id string, fields model.Fields) error
	// Delete 删除文档
	Delete(ctx context.Context, id string) error
}
