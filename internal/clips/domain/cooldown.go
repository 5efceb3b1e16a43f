package domain

import "time"

// DefaultCooldown is how long a deleted clip's content is suppressed.
const DefaultCooldown = 10 * time.Second

// Cooldown remembers the content of the most recent delete. It is not safe
// for concurrent use; the clip store guards it with its insert lock.
type Cooldown struct {
	window  time.Duration
	content string
	armedAt time.Time
	armed   bool
}

// NewCooldown creates a disarmed cooldown with the given window.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{window: window}
}

// Arm starts the window for content at now, replacing any previous content.
func (c *Cooldown) Arm(content string, now time.Time) {
	c.content = content
	c.armedAt = now
	c.armed = true
}

// Clear disarms the cooldown.
func (c *Cooldown) Clear() {
	c.content = ""
	c.armedAt = time.Time{}
	c.armed = false
}

// Active reports whether content is still suppressed at now.
func (c *Cooldown) Active(content string, now time.Time) bool {
	if !c.armed || c.content != content {
		return false
	}
	return now.Sub(c.armedAt) < c.window
}

// Window returns the configured window.
func (c *Cooldown) Window() time.Duration {
	return c.window
}
