package ratelimit

import (
	"context"
	"sync"
	"time"
)

// maxTrackedKeys bounds the map before expired windows are swept.
const maxTrackedKeys = 10000

type window struct {
	start time.Time
	count int64
}

// MemoryLimiter is a process-local fixed-window counter. State is lost on
// restart and is not shared between instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// WithClock replaces the time source.
func (l *MemoryLimiter) WithClock(now func() time.Time) *MemoryLimiter {
	l.now = now
	return l
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.period)) {
		if !ok && len(l.windows) >= maxTrackedKeys {
			l.sweep(now)
		}
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++

	return decide(w.count, l.limit, w.start, l.period), nil
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for key, w := range l.windows {
		if !now.Before(w.start.Add(l.period)) {
			delete(l.windows, key)
		}
	}
}
