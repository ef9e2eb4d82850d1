package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter 固定窗口计数限流器
// 按 key（一般是客户端地址）在窗口内计数，超过上限则拒绝
type Limiter interface {
	// Allow 记一次访问，返回是否放行
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter 基于 Redis INCR + EXPIRE 的限流器
// 多实例部署时共享计数
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

// NewRedisLimiter 创建 Redis 限流器
func NewRedisLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		max:    max,
		window: window,
	}
}

// Allow 记一次访问，返回是否放行
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}

	// 第一次计数时设置窗口过期
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(l.max), nil
}

// MemoryLimiter 进程内固定窗口限流器
// Redis 不可用时的降级实现，单实例部署够用
type MemoryLimiter struct {
	mu        sync.Mutex
	counts    map[string]*windowCount
	max       int
	window    time.Duration
	nextSweep time.Time
}

type windowCount struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter 创建进程内限流器
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		counts: make(map[string]*windowCount),
		max:    max,
		window: window,
	}
}

// Allow 记一次访问，返回是否放行
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	wc, ok := l.counts[key]
	if !ok || now.After(wc.resetAt) {
		l.counts[key] = &windowCount{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}

	wc.count++
	return wc.count <= l.max, nil
}

// sweep 每个窗口周期顺带清理一次过期条目，防止map随不同key无限增长
// 调用方已持锁
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for key, wc := range l.counts {
		if now.After(wc.resetAt) {
			delete(l.counts, key)
		}
	}
	l.nextSweep = now.Add(l.window)
}
