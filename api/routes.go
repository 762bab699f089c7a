package api

import (
	"net/http"

	"todo-board/auth"
	_ "todo-board/docs"
	"todo-board/handler"

	"github.com/charmbracelet/log"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Options 路由配置
type Options struct {
	// AuthSecret 为空时不校验 token
	AuthSecret  []byte
	AuthSubject string
	// AllowedOrigins 为空时允许任意来源
	AllowedOrigins []string
	Logger         *log.Logger
}

// recoverMiddleware 捕获 panic 防止服务崩溃
func recoverMiddleware(logger *log.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "err", err, "path", r.URL.Path)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()
			next(w, r)
		}
	}
}

// chain 链接多个中间件
func chain(f http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		f = middlewares[i](f)
	}
	return f
}

// SetupRoutes 注册全部路由并包裹 CORS
func SetupRoutes(h *handler.Handler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := http.NewServeMux()

	authMW := auth.NewMiddleware(opts.AuthSecret, opts.AuthSubject, func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("unauthorized request", "path", r.URL.Path, "err", err)
		h.SendError(w, http.StatusUnauthorized, "UNAUTHORIZED", "认证失败")
	})

	withMiddlewares := func(f http.HandlerFunc) http.HandlerFunc {
		return chain(f, recoverMiddleware(logger), authMW.Wrap)
	}

	registerTodoRoutes := func(base string) {
		mux.HandleFunc("GET "+base, withMiddlewares(h.ListTodos))
		mux.HandleFunc("POST "+base, withMiddlewares(h.CreateTodo))

		mux.HandleFunc("GET "+base+"/stats", withMiddlewares(h.GetStats))

		mux.HandleFunc("PUT "+base+"/{id}", withMiddlewares(h.UpdateTodo))
		mux.HandleFunc("DELETE "+base+"/{id}", withMiddlewares(h.DeleteTodo))
	}

	// Versioned routes with legacy aliases for backward compatibility
	registerTodoRoutes("/api/v1/todos")
	registerTodoRoutes("/api/todos")

	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(mux)
}
