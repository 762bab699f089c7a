package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFile_GetMissing(t *testing.T) {
	c := NewFile(filepath.Join(t.TempDir(), "nested"))

	v, ok, err := c.Get(KeyTodos)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("expected missing key, got %q %v", v, ok)
	}
}

func TestFile_SetGet(t *testing.T) {
	dir := t.TempDir()
	c := NewFile(dir)

	if err := c.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := c.Get(KeyTheme)
	if err != nil || !ok || v != "light" {
		t.Fatalf("expected light, got %q %v %v", v, ok, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the cache file to remain, got %d entries", len(entries))
	}

	// 同一目录上的第二个实例能读到该值
	v, _, _ = NewFile(dir).Get(KeyTheme)
	if v != "light" {
		t.Fatalf("expected value to persist across instances, got %q", v)
	}
}

func TestFile_RejectsBadKeys(t *testing.T) {
	c := NewFile(t.TempDir())
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		if err := c.Set(key, "x"); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	if _, ok, _ := m.Get(KeyTodos); ok {
		t.Fatal("expected empty memory cache")
	}
	m.Set(KeyTodos, "[]")
	if v, ok, _ := m.Get(KeyTodos); !ok || v != "[]" {
		t.Fatalf("expected [] got %q %v", v, ok)
	}
}

func TestMemoryZeroValue(t *testing.T) {
	var m Memory
	if _, ok, err := m.Get(KeyTheme); ok || err != nil {
		t.Fatalf("expected missing key on zero value, got ok=%v err=%v", ok, err)
	}
	if err := m.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := m.Get(KeyTheme); !ok || v != "dark" {
		t.Fatalf("expected dark, got %q (ok=%v)", v, ok)
	}
}
