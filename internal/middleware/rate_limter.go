package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ==================== 令牌桶限流 ====================

// KeyedLimiter 按 key（IP、用户名）独立的令牌桶
type KeyedLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu      sync.Mutex
	entries map[string]*limiterEntry
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter every 内补充一个令牌，最多积攒 burst 个
func NewKeyedLimiter(every time.Duration, burst int) *KeyedLimiter {
	return &KeyedLimiter{
		limit:   rate.Every(every),
		burst:   burst,
		idleTTL: 30 * time.Minute,
		entries: make(map[string]*limiterEntry),
	}
}

// Allow 消耗一个令牌
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[key]
	if !ok {
		if len(l.entries) > 10000 {
			l.evictLocked(now)
		}
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (l *KeyedLimiter) evictLocked(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.entries, k)
		}
	}
}

// ==================== 冷却限流 ====================

// Cooldown 同一 key 在间隔内只允许执行一次（如 Excel 导出）
type Cooldown struct {
	locks sync.Map // key -> *cooldownEntry
}

type cooldownEntry struct {
	mu       sync.Mutex
	lastTime time.Time
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Check 检查并在允许时记录本次执行
func (r *Cooldown) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &cooldownEntry{})
	entry := actual.(*cooldownEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	elapsed := time.Since(entry.lastTime)
	if elapsed < interval {
		return CheckResult{Allowed: false, RetryAfter: interval - elapsed}
	}
	entry.lastTime = time.Now()
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key
func (r *Cooldown) Reset(key string) {
	r.locks.Delete(key)
}
