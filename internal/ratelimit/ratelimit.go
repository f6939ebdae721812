// Package ratelimit implements a fixed-window request counter held in
// process memory. Correctness is scoped to a single instance; a
// horizontally scaled deployment would need a shared store behind the
// same surface.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

const (
	// Window is the fixed duration shared by every action.
	Window = 60 * time.Second

	cleanupInterval = 5 * time.Minute
)

// Result reports one limiter decision. Remaining is meaningful when
// Allowed; RetryAfter (whole seconds, rounded up) when denied.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter int
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per (action, identifier) pair. Initialize once
// at process start and stop at shutdown.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

func New() *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.janitor()
	return l
}

// Check records one request for the pair and decides whether it is within
// budget. maxRequests is inclusive: exactly maxRequests calls succeed per
// window, the next one is denied until the window resets.
func (l *Limiter) Check(identifier, action string, maxRequests int) Result {
	key := action + ":" + identifier
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetAt) {
		l.entries[key] = &entry{count: 1, resetAt: now.Add(Window)}
		return Result{Allowed: true, Remaining: maxRequests - 1}
	}

	e.count++
	if e.count > maxRequests {
		retryAfter := int(math.Ceil(e.resetAt.Sub(now).Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		return Result{RetryAfter: retryAfter}
	}

	remaining := maxRequests - e.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: true, Remaining: remaining}
}

// Stop ends the background purge. Entries already stored remain usable.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) janitor() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.purge()
		case <-l.stop:
			return
		}
	}
}

// purge drops entries whose window has elapsed. A purged key simply
// starts a fresh window on its next request, so this only bounds memory.
func (l *Limiter) purge() {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if !now.Before(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
