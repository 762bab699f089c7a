package main

import (
	"fmt"
	"strings"

	"todo-board/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"})

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})

	// 调色板都是浅色，便签文字固定用深色
	memoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1F2937")).
			Padding(0, 1)

	doneStyle = memoStyle.Strikethrough(true)
)

func renderList(todos []model.Todo, filter model.Filter, category model.CategoryFilter) string {
	var b strings.Builder

	fmt.Fprintln(&b, headerStyle.Render(fmt.Sprintf("%s · %s (%d)", filter, category, len(todos))))
	if len(todos) == 0 {
		fmt.Fprintln(&b, mutedStyle.Render("no todos"))
		return b.String()
	}

	for i, t := range todos {
		fmt.Fprintf(&b, "%2d %s\n", i, renderTodo(t))
	}
	return b.String()
}

func renderTodo(t model.Todo) string {
	check := "[ ]"
	style := memoStyle
	if t.IsCompleted {
		check = "[x]"
		style = doneStyle
	}
	mark := " "
	if t.Priority == model.PriorityImportant {
		mark = "!"
	}

	line := fmt.Sprintf("%s %s %-8s %s", check, mark, t.Category.Label(), t.Title)
	if t.Description != "" {
		line += " - " + t.Description
	}

	color := t.BackgroundColor
	if !model.ValidColor(color) {
		color = model.DefaultBackgroundColor
	}
	return style.Background(lipgloss.Color(color)).Render(line) + " " + mutedStyle.Render(t.ID)
}

func renderPalette(colors []model.MemoColor) string {
	var b strings.Builder
	for _, c := range colors {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Value)).Render("    ")
		fmt.Fprintf(&b, "%s %s %s\n", swatch, c.Value, c.Name)
	}
	return b.String()
}
