package handler

import (
	"strings"

	"todo-board/model"
)

// validateDraft 返回空字符串表示校验通过
func validateDraft(d model.Draft) string {
	if strings.TrimSpace(d.Title) == "" {
		return "标题不能为空"
	}
	if !d.Priority.Valid() {
		return "优先级无效"
	}
	if !d.Category.Valid() {
		return "分类无效"
	}
	if !model.ValidColor(d.BackgroundColor) {
		return "背景色必须为 #RRGGBB 格式"
	}
	return ""
}

func validateFields(f model.Fields) string {
	if f.Empty() {
		return "没有需要更新的字段"
	}
	if f.Title != nil && strings.TrimSpace(*f.Title) == "" {
		return "标题不能为空"
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return "优先级无效"
	}
	if f.Category != nil && !f.Category.Valid() {
		return "分类无效"
	}
	if f.BackgroundColor != nil && !model.ValidColor(*f.BackgroundColor) {
		return "背景色必须为 #RRGGBB 格式"
	}
	return ""
}
