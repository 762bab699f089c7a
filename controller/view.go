package controller

import (
	"time"

	"todo-board/model"
)

// Visible 派生要渲染的列表：先按分类过滤，再应用唯一生效的视图过滤器。
// 不修改输入切片。
func Visible(todos []model.Todo, filter model.Filter, category model.CategoryFilter, now time.Time) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if category != "" && !category.Matches(t.Category) {
			continue
		}
		if !matchesFilter(t, filter, now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesFilter(t model.Todo, filter model.Filter, now time.Time) bool {
	switch filter {
	case model.FilterImportant:
		return t.Priority == model.PriorityImportant
	case model.FilterCompleted:
		return t.IsCompleted
	case model.FilterToday:
		return sameDay(t.CreatedAt, now)
	default:
		return true
	}
}

// sameDay 在 now 所在时区比较日历日期
func sameDay(t, now time.Time) bool {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
