// todo 命令行工具，列表控制器之上的一层薄展示层
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"todo-board/cache"
	"todo-board/config"
	"todo-board/controller"
	"todo-board/model"
	"todo-board/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:           "todo",
	Short:         "Sticky-note todo list backed by a todo-board server",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	flagEndpoint string
	flagCacheDir string
	flagFilter   string
	flagCategory string
	flagJSON     bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagEndpoint, "endpoint", "", "server endpoint (overrides config)")
	pf.StringVar(&flagCacheDir, "cache-dir", "", "local cache directory (overrides config)")
	pf.StringVarP(&flagFilter, "filter", "f", "all", "view filter: all, today, important, completed")
	pf.StringVarP(&flagCategory, "category", "c", "ALL", "category filter: ALL, PERSONAL, WORK, SHOPPING, STUDY, OTHER")
	pf.BoolVar(&flagJSON, "json", false, "print the visible list as JSON")
}

type session struct {
	ctrl   *controller.Controller
	ctx    context.Context
	cancel context.CancelFunc
}

// loadConfig 读取配置文件和环境变量，再应用命令行参数
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagEndpoint != "" {
		cfg.Client.Endpoint = flagEndpoint
	}
	if flagCacheDir != "" {
		cfg.Client.CacheDir = flagCacheDir
	}
	return cfg, nil
}

// openSession 根据配置和参数创建控制器，从缓存恢复并加载远端列表
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	filter, err := model.ParseFilter(flagFilter)
	if err != nil {
		return nil, err
	}
	category, err := model.ParseCategoryFilter(flagCategory)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  cfg.Level(),
		Prefix: "todo",
	})

	opts := []store.ClientOption{}
	if cfg.Client.AuthSecret != "" {
		cc := cfg.Client
		opts = append(opts, store.WithTokenSource(func() (string, error) {
			return cc.Token(5 * time.Minute)
		}))
	}
	client, err := store.NewClient(cfg.Client.Endpoint, opts...)
	if err != nil {
		return nil, err
	}

	ctrl := controller.New(client, cache.NewFile(cfg.Client.CacheDir),
		controller.WithLogger(logger),
		controller.WithThemeHook(lipgloss.SetHasDarkBackground),
	)
	ctrl.SetFilter(filter)
	ctrl.SetCategoryFilter(category)

	timeout := cfg.Client.Timeout.Duration
	if timeout <= 0 {
		timeout = store.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)

	ctrl.Start(ctx)

	return &session{ctrl: ctrl, ctx: ctx, cancel: cancel}, nil
}

func (s *session) Close() {
	s.cancel()
}

// printVisible 将当前视图输出到 stdout
func (s *session) printVisible(cmd *cobra.Command) error {
	todos := s.ctrl.VisibleTodos()
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), todos)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderList(todos, s.ctrl.Filter(), s.ctrl.CategoryFilter()))
	return nil
}
