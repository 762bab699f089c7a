package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo-board/api"
	"todo-board/config"
	"todo-board/database"
	"todo-board/handler"

	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		Prefix:          "todo-server",
	})
	log.SetDefault(logger)

	// 初始化数据库
	db, err := database.New(cfg.Server.Driver, cfg.Server.DSN, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", "err", err)
	}
	defer db.Close()

	h := handler.NewHandler(db, logger)

	mux := api.SetupRoutes(h, api.Options{
		AuthSecret:     []byte(cfg.Server.AuthSecret),
		AuthSubject:    cfg.Server.AuthSubject,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server started", "addr", cfg.Server.Addr, "auth", cfg.Server.AuthSecret != "")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "err", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}
}
