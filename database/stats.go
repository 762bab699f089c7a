package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"todo-board/model"
)

// TodoStats 统计信息
type TodoStats struct {
	Total      int                    `json:"total"`       // 总数量
	Completed  int                    `json:"completed"`   // 已完成
	Important  int                    `json:"important"`   // 重要
	Today      int                    `json:"today"`       // 今天创建
	ByCategory map[model.Category]int `json:"by_category"` // 各分类数量
}

// Stats 获取待办事项统计信息，"今天" 按服务器本地日历日计算
func (db *DB) Stats(ctx context.Context) (*TodoStats, error) {
	now := db.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UTC()
	dayEnd := dayStart.Add(24 * time.Hour)

	query := db.rebind(`
		SELECT
			COUNT(*) as total,
			SUM(CASE WHEN is_completed THEN 1 ELSE 0 END) as completed,
			SUM(CASE WHEN priority = 1 THEN 1 ELSE 0 END) as important,
			SUM(CASE WHEN created_at >= ? AND created_at < ? THEN 1 ELSE 0 END) as today
		FROM todos
	`)

	var stats TodoStats
	var completed, important, today sql.NullInt64

	err := db.conn.QueryRowContext(ctx, query, dayStart, dayEnd).Scan(
		&stats.Total,
		&completed,
		&important,
		&today,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}

	// 空表时 SUM 返回 NULL
	stats.Completed = int(completed.Int64)
	stats.Important = int(important.Int64)
	stats.Today = int(today.Int64)

	stats.ByCategory = make(map[model.Category]int, len(model.Categories()))
	for _, c := range model.Categories() {
		stats.ByCategory[c] = 0
	}

	rows, err := db.conn.QueryContext(ctx, `SELECT COALESCE(category, ''), COUNT(*) FROM todos GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category stats: %w", err)
		}
		c := model.Category(category)
		if !c.Valid() {
			c = model.CategoryOther
		}
		stats.ByCategory[c] += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return &stats, nil
}
