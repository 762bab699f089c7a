// Package config 读取 TOML 配置文件并应用环境变量覆盖
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"todo-board/auth"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config cmd/server 与 cmd/todo 共用的配置
type Config struct {
	Server   Server `toml:"server"`
	Client   Client `toml:"client"`
	LogLevel string `toml:"log-level"`
}

// Server 集合 API 服务端配置
type Server struct {
	Addr   string `toml:"addr"`
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
	// AuthSecret 非空时启用 Bearer Token 校验
	AuthSecret     string   `toml:"auth-secret"`
	AuthSubject    string   `toml:"auth-subject"`
	AllowedOrigins []string `toml:"allowed-origins"`
}

// Client 命令行客户端配置
type Client struct {
	Endpoint    string   `toml:"endpoint"`
	CacheDir    string   `toml:"cache-dir"`
	Timeout     Duration `toml:"timeout"`
	AuthSecret  string   `toml:"auth-secret"`
	AuthSubject string   `toml:"auth-subject"`
}

// Subject 客户端签发 token 使用的 subject，未配置时为 auth.DefaultSubject
func (c Client) Subject() string {
	if c.AuthSubject == "" {
		return auth.DefaultSubject
	}
	return c.AuthSubject
}

// Token 使用客户端密钥签发 token，ttl <= 0 表示不过期
func (c Client) Token(ttl time.Duration) (string, error) {
	return auth.IssueToken([]byte(c.AuthSecret), c.Subject(), ttl)
}

// Duration 解析 "5s" 这类 TOML 字符串
type Duration struct {
	time.Duration
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// Default 内置默认配置
func Default() *Config {
	cacheDir := filepath.Join(os.TempDir(), "todo-board")
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "todo-board")
	}

	return &Config{
		Server: Server{
			Addr:   ":7789",
			Driver: "sqlite3",
			DSN:    "./todos.db",
		},
		Client: Client{
			Endpoint: "http://localhost:7789",
			CacheDir: cacheDir,
			Timeout:  Duration{10 * time.Second},
		},
		LogLevel: "info",
	}
}

// Path 配置文件路径：优先 $TODO_CONFIG，否则为 ~/.config/todo-board/config.toml
func Path() (string, error) {
	if p := os.Getenv("TODO_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "todo-board", "config.toml"), nil
}

// Load 在默认值之上读取配置文件（如存在），再应用环境变量覆盖
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile 指定路径的 Load，文件不存在不算错误
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"TODO_ADDR", &cfg.Server.Addr},
		{"TODO_DB_DRIVER", &cfg.Server.Driver},
		{"TODO_DB_DSN", &cfg.Server.DSN},
		{"TODO_AUTH_SECRET", &cfg.Server.AuthSecret},
		{"TODO_AUTH_SECRET", &cfg.Client.AuthSecret},
		{"TODO_ENDPOINT", &cfg.Client.Endpoint},
		{"TODO_CACHE_DIR", &cfg.Client.CacheDir},
		{"TODO_LOG_LEVEL", &cfg.LogLevel},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}

// Level 解析 LogLevel，无法解析时使用 info
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
