// Package cache 客户端本地的键值存储，在远端集合返回之前为列表提供初始数据
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// 列表控制器使用的键
const (
	KeyTodos = "todos"
	KeyTheme = "theme"
)

// File 每个键对应 dir 下的一个文件
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile 创建以 dir 为根目录的缓存，目录在第一次写入时创建
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(f.dir, key), nil
}

// Get 读取 key 对应的值，key 不存在不算错误
func (f *File) Get(key string) (string, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return "", false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cache %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set 覆盖 key 对应的值
func (f *File) Set(key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	// 先写临时文件再重命名，崩溃时不会留下半个列表
	tmp, err := os.CreateTemp(f.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write cache %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close cache %s: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cache %s: %w", key, err)
	}
	return nil
}

// Memory 进程内缓存，零值可直接使用
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory 创建空的内存缓存
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get 读取 key 对应的值
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set 覆盖 key 对应的值
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}
