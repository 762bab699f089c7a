package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"todo-board/model"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// 支持的驱动
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ErrNotFound 文档不存在
var ErrNotFound = errors.New("todo not found")

// DB 是 todos 文档集合的 SQL 实现
type DB struct {
	conn   *sql.DB
	driver string
	now    func() time.Time
	logger *log.Logger
}

// New 打开数据库并初始化表结构，logger 为 nil 时使用默认 logger
func New(driver, dsn string, logger *log.Logger) (*DB, error) {
	if logger == nil {
		logger = log.Default()
	}
	if driver == "" {
		driver = DriverSQLite
	}
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite 的 :memory: 库每个连接各自独立，写入本身也是串行的
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, driver: driver, now: time.Now, logger: logger}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}

	db.logger.Info("database initialized", "driver", driver)
	return db, nil
}

// initSchema 初始化数据库表
func (db *DB) initSchema() error {
	timestamp := "DATETIME"
	if db.driver == DriverPostgres {
		timestamp = "TIMESTAMPTZ"
	}

	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority INTEGER NOT NULL DEFAULT 2,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		category TEXT,
		background_color TEXT,
		created_at %[1]s NOT NULL,
		updated_at %[1]s NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at DESC);
	`, timestamp)

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func (db *DB) Close() error {
	return db.conn.Close()
}

// rebind 将 ? 占位符转换为 postgres 的 $n
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const selectColumns = `id, title, description, priority, is_completed, category, background_color, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (model.Todo, error) {
	var (
		todo       model.Todo
		category   sql.NullString
		background sql.NullString
	)

	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Priority,
		&todo.IsCompleted,
		&category,
		&background,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		return model.Todo{}, err
	}

	todo.Category = model.Category(category.String)
	todo.BackgroundColor = background.String
	return todo.WithDefaults(), nil
}

// FetchAll 按创建时间倒序返回全部文档
func (db *DB) FetchAll(ctx context.Context) ([]model.Todo, error) {
	query := "SELECT " + selectColumns + " FROM todos ORDER BY created_at DESC"

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return todos, nil
}

// Get 根据 ID 获取文档
func (db *DB) Get(ctx context.Context, id string) (*model.Todo, error) {
	query := db.rebind("SELECT " + selectColumns + " FROM todos WHERE id = ?")

	todo, err := scanTodo(db.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

// Create 插入新文档，由存储端生成 ID 和时间戳
func (db *DB) Create(ctx context.Context, draft model.Draft) (string, error) {
	query := db.rebind(`
		INSERT INTO todos (id, title, description, priority, is_completed, category, background_color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	id := uuid.NewString()
	now := db.now().UTC()

	_, err := db.conn.ExecContext(
		ctx,
		query,
		id,
		draft.Title,
		draft.Description,
		int(draft.Priority),
		draft.IsCompleted,
		string(draft.Category),
		draft.BackgroundColor,
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create todo: %w", err)
	}

	return id, nil
}

// Update 合并给定字段并刷新 updated_at，未提供的字段保持不变
func (db *DB) Update(ctx context.Context, id string, fields model.Fields) error {
	sets := []string{}
	args := []any{}

	if fields.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *fields.Title)
	}
	if fields.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *fields.Description)
	}
	if fields.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, int(*fields.Priority))
	}
	if fields.IsCompleted != nil {
		sets = append(sets, "is_completed = ?")
		args = append(args, *fields.IsCompleted)
	}
	if fields.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, string(*fields.Category))
	}
	if fields.BackgroundColor != nil {
		sets = append(sets, "background_color = ?")
		args = append(args, *fields.BackgroundColor)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, db.now().UTC(), id)

	query := db.rebind("UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?")

	result, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete 删除文档，不存在时返回 ErrNotFound
func (db *DB) Delete(ctx context.Context, id string) error {
	query := db.rebind(`DELETE FROM todos WHERE id = ?`)

	result, err := db.conn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
