package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"todo-board/auth"

	"github.com/charmbracelet/log"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7789" || cfg.Server.Driver != "sqlite3" {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Client.Timeout.Duration != 10*time.Second {
		t.Fatalf("unexpected client timeout: %v", cfg.Client.Timeout)
	}
}

func TestLoadFileParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log-level = "debug"

[server]
addr = ":9000"
driver = "postgres"
dsn = "host=db user=todo dbname=todo sslmode=disable"
auth-secret = "s3cret"
allowed-origins = ["http://localhost:3000"]

[client]
endpoint = "http://todo.internal:9000"
timeout = "3s"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.Driver != "postgres" || cfg.Server.AuthSecret != "s3cret" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Fatalf("expected one allowed origin, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Client.Endpoint != "http://todo.internal:9000" || cfg.Client.Timeout.Duration != 3*time.Second {
		t.Fatalf("unexpected client config: %+v", cfg.Client)
	}
	if cfg.Client.CacheDir == "" {
		t.Fatal("expected cache dir default to survive partial config")
	}
	if cfg.Level() != log.DebugLevel {
		t.Fatalf("expected debug level, got %v", cfg.Level())
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[server]\nport = 1\n"), 0o644)

	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("expected unknown keys error, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TODO_ENDPOINT", "http://override:1")
	t.Setenv("TODO_AUTH_SECRET", "from-env")
	t.Setenv("TODO_CACHE_DIR", "/tmp/todo-cache")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Client.Endpoint != "http://override:1" || cfg.Client.CacheDir != "/tmp/todo-cache" {
		t.Fatalf("expected env overrides, got %+v", cfg.Client)
	}
	if cfg.Server.AuthSecret != "from-env" || cfg.Client.AuthSecret != "from-env" {
		t.Fatal("expected auth secret override on both sides")
	}
}

func TestPathHonoursEnv(t *testing.T) {
	t.Setenv("TODO_CONFIG", "/etc/todo.toml")
	p, err := Path()
	if err != nil || p != "/etc/todo.toml" {
		t.Fatalf("expected /etc/todo.toml, got %q %v", p, err)
	}
}

func TestLevelFallsBackToInfo(t *testing.T) {
	cfg := &Config{LogLevel: "loud"}
	if cfg.Level() != log.InfoLevel {
		t.Fatalf("expected info, got %v", cfg.Level())
	}
}

func TestClientTokenUsesConfiguredSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{subject: "", want: auth.DefaultSubject},
		{subject: "alice", want: "alice"},
	}

	for _, tt := range tests {
		c := Client{AuthSecret: "s3cret", AuthSubject: tt.subject}
		if got := c.Subject(); got != tt.want {
			t.Fatalf("expected subject %q, got %q", tt.want, got)
		}

		token, err := c.Token(time.Minute)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		got, err := auth.ParseToken([]byte("s3cret"), token)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if got != tt.want {
			t.Fatalf("expected token subject %q, got %q", tt.want, got)
		}
	}
}

func TestClientTokenRequiresSecret(t *testing.T) {
	if _, err := (Client{}).Token(time.Minute); err == nil {
		t.Fatal("expected error without a secret")
	}
}
