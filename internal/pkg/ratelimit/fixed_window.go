package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindowLimiter 进程内固定窗口限流器
// 窗口过期采用惰性重置，只在下一次访问同一键时回收
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	size    time.Duration
	limit   int
	now     func() time.Time
}

func NewFixedWindowLimiter(size time.Duration, limit int) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		windows: make(map[string]*window),
		size:    size,
		limit:   limit,
		now:     time.Now,
	}
}

// Allow 记一次访问并判断是否放行
func (l *FixedWindowLimiter) Allow(key string) bool {
	allowed, _ := l.AllowN(key)
	return allowed
}

// AllowN 同 Allow，并返回本窗口剩余额度
func (l *FixedWindowLimiter) AllowN(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.size)}
		l.windows[key] = w
	}

	if w.count >= l.limit {
		return false, 0
	}
	w.count++
	return true, l.limit - w.count
}

// RetryAfter 返回该键窗口重置剩余时长，未限流时为 0
func (l *FixedWindowLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok {
		return 0
	}
	remaining := w.resetAt.Sub(l.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}
