package ratelimit

import (
	"context"
	"sync"
	"time"
)

type Limiter interface {
	// Allow consumes one request for key and reports whether it may proceed.
	Allow(ctx context.Context, key string) (bool, error)
}

type entry struct {
	tokens    float64
	lastCheck time.Time
}

// MemoryLimiter is a per-key token bucket held in process memory.
type MemoryLimiter struct {
	mu         sync.Mutex
	clients    map[string]*entry
	maxTokens  float64
	refillRate float64 // tokens per second
	now        func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryLimiter allows maxRequests bursts refilled over perDuration.
func NewMemoryLimiter(maxRequests int, perDuration time.Duration) *MemoryLimiter {
	rl := newMemoryLimiter(maxRequests, perDuration, time.Now)
	go rl.cleanup(5*time.Minute, 10*time.Minute)
	return rl
}

func newMemoryLimiter(maxRequests int, perDuration time.Duration, now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		clients:    make(map[string]*entry),
		maxTokens:  float64(maxRequests),
		refillRate: float64(maxRequests) / perDuration.Seconds(),
		now:        now,
		stop:       make(chan struct{}),
	}
}

func (rl *MemoryLimiter) cleanup(every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep(idle)
		}
	}
}

func (rl *MemoryLimiter) sweep(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, e := range rl.clients {
		if now.Sub(e.lastCheck) > idle {
			delete(rl.clients, key)
		}
	}
}

func (rl *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	e, exists := rl.clients[key]
	if !exists {
		rl.clients[key] = &entry{
			tokens:    rl.maxTokens - 1,
			lastCheck: now,
		}
		return true, nil
	}

	elapsed := now.Sub(e.lastCheck).Seconds()
	e.tokens += elapsed * rl.refillRate
	if e.tokens > rl.maxTokens {
		e.tokens = rl.maxTokens
	}
	e.lastCheck = now

	if e.tokens >= 1 {
		e.tokens--
		return true, nil
	}
	return false, nil
}

func (rl *MemoryLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}
