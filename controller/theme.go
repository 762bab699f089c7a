package controller

import "todo-board/cache"

// Dark 是否为深色模式
func (c *Controller) Dark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Dark
}

// SetDark 切换主题，持久化并通知主题回调
func (c *Controller) SetDark(dark bool) {
	c.mu.Lock()
	c.state.Dark = dark
	c.mu.Unlock()

	c.applyTheme(dark)
}

// ToggleTheme 反转主题并返回新值
func (c *Controller) ToggleTheme() bool {
	c.mu.Lock()
	dark := !c.state.Dark
	c.state.Dark = dark
	c.mu.Unlock()

	c.applyTheme(dark)
	return dark
}

func (c *Controller) applyTheme(dark bool) {
	value := "light"
	if dark {
		value = "dark"
	}
	if err := c.cache.Set(cache.KeyTheme, value); err != nil {
		c.logger.Error("failed to persist theme", "err", err)
	}
	if c.onTheme != nil {
		c.onTheme(dark)
	}
}
