package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter keeps per-key counters in a process-local map. Expired
// entries are swept on read; there is no background reaper.
type MemoryLimiter struct {
	cfg Config

	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time // overridable in tests
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:     cfg,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Check(_ context.Context, key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	current, ok := l.entries[key]
	if !ok || current.resetTime.Before(now) {
		reset := now.Add(l.cfg.Window)
		l.entries[key] = &entry{count: 1, resetTime: reset}
		return Decision{Allowed: true, Remaining: l.cfg.Requests - 1, ResetTime: reset}
	}

	if current.count >= l.cfg.Requests {
		return Decision{Allowed: false, Remaining: 0, ResetTime: current.resetTime}
	}

	current.count++
	return Decision{Allowed: true, Remaining: l.cfg.Requests - current.count, ResetTime: current.resetTime}
}

func (l *MemoryLimiter) sweep(now time.Time) {
	for key, e := range l.entries {
		if e.resetTime.Before(now) {
			delete(l.entries, key)
		}
	}
}
