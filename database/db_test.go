package database

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"todo-board/model"

	"github.com/charmbracelet/log"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(DriverSQLite, ":memory:", log.New(io.Discard))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixedClock 每次调用前进一分钟的时钟
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func TestCreateAndFetchAllOrdersByCreatedAtDesc(t *testing.T) {
	db := newTestDB(t)
	db.now = fixedClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		id, err := db.Create(ctx, model.NewDraft(title, ""))
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		ids = append(ids, id)
	}

	todos, err := db.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}

	want := []string{ids[2], ids[1], ids[0]}
	for i, todo := range todos {
		if todo.ID != want[i] {
			t.Fatalf("expected todo %d to be %s, got %s", i, want[i], todo.ID)
		}
		if !todo.CreatedAt.Equal(todo.UpdatedAt) {
			t.Fatalf("expected createdAt == updatedAt on creation, got %v and %v", todo.CreatedAt, todo.UpdatedAt)
		}
	}
	if todos[2].Title != "first" || todos[2].Category != model.CategoryOther || todos[2].BackgroundColor != model.DefaultBackgroundColor {
		t.Fatalf("unexpected stored document: %+v", todos[2])
	}
}

func TestFetchAllEmpty(t *testing.T) {
	db := newTestDB(t)

	todos, err := db.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", todos)
	}
}

func TestFetchAllDefaultsMissingFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC()
	_, err := db.conn.Exec(
		`INSERT INTO todos (id, title, description, priority, is_completed, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"legacy", "legacy doc", "", 2, false, now, now,
	)
	if err != nil {
		t.Fatalf("insert legacy row: %v", err)
	}

	todo, err := db.Get(ctx, "legacy")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if todo.Category != model.CategoryOther {
		t.Fatalf("expected category OTHER, got %q", todo.Category)
	}
	if todo.BackgroundColor != model.DefaultBackgroundColor {
		t.Fatalf("expected default background, got %q", todo.BackgroundColor)
	}
}

func TestUpdateMergesFieldsAndStampsUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	db.now = fixedClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	id, err := db.Create(ctx, model.NewDraft("title", "desc"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, err := db.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	err = db.Update(ctx, id, model.Fields{
		IsCompleted:     model.Ptr(true),
		BackgroundColor: model.Ptr("#81C784"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	after, err := db.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !after.IsCompleted || after.BackgroundColor != "#81C784" {
		t.Fatalf("expected merged fields, got %+v", after)
	}
	if after.Title != "title" || after.Description != "desc" || after.Priority != model.PriorityNormal {
		t.Fatalf("expected untouched fields to survive, got %+v", after)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("expected createdAt unchanged, got %v want %v", after.CreatedAt, before.CreatedAt)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("expected updatedAt to move forward, got %v (was %v)", after.UpdatedAt, before.UpdatedAt)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Update(ctx, "missing", model.Fields{Title: model.Ptr("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from update, got %v", err)
	}
	if err := db.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from delete, got %v", err)
	}
	if _, err := db.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.Create(ctx, model.NewDraft("doomed", ""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := db.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected second delete to fail with ErrNotFound, got %v", err)
	}

	todos, err := db.FetchAll(ctx)
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("expected no todos, got %d", len(todos))
	}
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	empty, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("stats on empty table: %v", err)
	}
	if empty.Total != 0 || empty.Completed != 0 {
		t.Fatalf("expected zero stats, got %+v", empty)
	}

	a, _ := db.Create(ctx, model.NewDraft("a", ""))
	b, _ := db.Create(ctx, model.NewDraft("b", ""))
	_, _ = db.Create(ctx, model.NewDraft("c", ""))

	if err := db.Update(ctx, a, model.Fields{IsCompleted: model.Ptr(true), Category: model.Ptr(model.CategoryWork)}); err != nil {
		t.Fatalf("update a: %v", err)
	}
	if err := db.Update(ctx, b, model.Fields{Priority: model.Ptr(model.PriorityImportant)}); err != nil {
		t.Fatalf("update b: %v", err)
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Completed != 1 || stats.Important != 1 || stats.Today != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ByCategory[model.CategoryWork] != 1 || stats.ByCategory[model.CategoryOther] != 2 {
		t.Fatalf("unexpected category counts: %+v", stats.ByCategory)
	}
	if _, ok := stats.ByCategory[model.CategoryStudy]; !ok {
		t.Fatal("expected every category to be present in stats")
	}
}

func TestRebind(t *testing.T) {
	pg := &DB{driver: DriverPostgres}
	if got := pg.rebind("UPDATE todos SET a = ?, b = ? WHERE id = ?"); got != "UPDATE todos SET a = $1, b = $2 WHERE id = $3" {
		t.Fatalf("unexpected postgres query: %s", got)
	}

	lite := &DB{driver: DriverSQLite}
	if got := lite.rebind("SELECT ? "); got != "SELECT ? " {
		t.Fatalf("expected sqlite query unchanged, got %s", got)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	if _, err := New("mysql", "whatever", nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestNewLogsToInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	db, err := New(DriverSQLite, ":memory:", log.New(&buf))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if !strings.Contains(buf.String(), "database initialized") {
		t.Fatalf("expected init message on injected logger, got %q", buf.String())
	}
}
