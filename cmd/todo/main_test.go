package main

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo-board/api"
	"todo-board/database"
	"todo-board/handler"
	"todo-board/model"

	"github.com/charmbracelet/log"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"todo": run,
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			return setupScriptEnv(env, nil)
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"todoid": cmdTodoID,
		},
	})
}

func TestAuthScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/auth",
		Setup: func(env *testscript.Env) error {
			return setupScriptEnv(env, []byte("script-secret"))
		},
	})
}

// setupScriptEnv 启动一个使用全新 SQLite 文件的 API 服务，并让 CLI 指向它
func setupScriptEnv(env *testscript.Env, secret []byte) error {
	logger := log.New(io.Discard)
	db, err := database.New(database.DriverSQLite, filepath.Join(env.WorkDir, "todos.db"), logger)
	if err != nil {
		return err
	}

	srv := httptest.NewServer(api.SetupRoutes(handler.NewHandler(db, logger), api.Options{
		AuthSecret: secret,
		Logger:     logger,
	}))
	env.Defer(func() {
		srv.Close()
		db.Close()
	})

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("TODO_CONFIG", filepath.Join(env.WorkDir, "config.toml"))
	env.Setenv("TODO_ENDPOINT", srv.URL)
	env.Setenv("TODO_CACHE_DIR", filepath.Join(env.WorkDir, "cache"))
	env.Setenv("TODO_LOG_LEVEL", "error")
	return nil
}

// cmdTodoID 按标题在 JSON 列表中查找待办事项，并把 ID 写入环境变量
func cmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TITLE VAR")
	}

	var items []model.Todo
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &items); err != nil {
		ts.Fatalf("parse todo list: %v", err)
	}

	for _, item := range items {
		if item.Title == args[1] {
			ts.Setenv(args[2], item.ID)
			return
		}
	}
	ts.Fatalf("todo with title %q not found", args[1])
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#81c784", want: "#81C784"},
		{in: "light blue", want: "#E3F2FD"},
		{in: "Deep-Pink", want: "#F48FB1"},
		{in: "#fff", wantErr: true},
		{in: "mauve", wantErr: true},
	}

	for _, tt := range tests {
		got, err := resolveColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("resolveColor(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("resolveColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("resolveColor(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestParseTTL(t *testing.T) {
	if d, err := parseTTL("0"); err != nil || d != 0 {
		t.Fatalf("expected 0 for no expiry, got %v, %v", d, err)
	}
	if d, err := parseTTL("90m"); err != nil || d.Minutes() != 90 {
		t.Fatalf("expected 90m, got %v, %v", d, err)
	}
	if _, err := parseTTL("soon"); err == nil {
		t.Fatal("expected error for invalid ttl")
	}
}

func TestRenderTodo(t *testing.T) {
	item := model.Todo{
		ID:              "abc",
		Title:           "Write report",
		Description:     "quarterly",
		Priority:        model.PriorityImportant,
		IsCompleted:     true,
		Category:        model.CategoryWork,
		BackgroundColor: "not-a-colour",
	}

	got := renderTodo(item)
	for _, want := range []string{"[x]", "!", "Work", "Write report - quarterly", "abc"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "WORK") {
		t.Fatalf("expected category label, got raw value in %q", got)
	}
}
