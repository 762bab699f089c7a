package model

import (
	"fmt"
	"strings"
)

// Category 待办事项分类
type Category string

const (
	CategoryPersonal Category = "PERSONAL"
	CategoryWork     Category = "WORK"
	CategoryShopping Category = "SHOPPING"
	CategoryStudy    Category = "STUDY"
	CategoryOther    Category = "OTHER"
)

var categoryLabels = map[Category]string{
	CategoryPersonal: "Personal",
	CategoryWork:     "Work",
	CategoryShopping: "Shopping",
	CategoryStudy:    "Study",
	CategoryOther:    "Other",
}

// Categories 返回全部分类，顺序固定
func Categories() []Category {
	return []Category{CategoryPersonal, CategoryWork, CategoryShopping, CategoryStudy, CategoryOther}
}

// Valid 判断分类是否属于固定枚举
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label 分类的显示名称
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// ParseCategory 解析分类名称，忽略大小写
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// CategoryFilter 分类过滤条件：某个分类或 CategoryAll
type CategoryFilter string

// CategoryAll 不按分类过滤
const CategoryAll CategoryFilter = "ALL"

// Matches 判断分类是否满足过滤条件
func (f CategoryFilter) Matches(c Category) bool {
	return f == CategoryAll || Category(f) == c
}

// ParseCategoryFilter 解析分类过滤条件，空字符串视为 ALL
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == string(CategoryAll) {
		return CategoryAll, nil
	}
	c, err := ParseCategory(s)
	if err != nil {
		return "", err
	}
	return CategoryFilter(c), nil
}

// Filter 视图过滤器，同一时刻只有一个生效
type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterImportant Filter = "important"
	FilterCompleted Filter = "completed"
)

// ParseFilter 解析过滤器名称，空字符串视为 all
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterToday, FilterImportant, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}
