package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mismo token bucket de recarga perezosa que MemoryRateLimiter, ejecutado de
// forma atómica dentro de Redis para poder compartir cuota entre instancias.
const redisAdmitScript = `
local capacity = tonumber(ARGV[1])
local interval = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local data = redis.call("HMGET", KEYS[1], "tokens", "last_refill")
local tokens = tonumber(data[1])
local last_refill = tonumber(data[2])
if tokens == nil then
  tokens = capacity
  last_refill = now
end
local elapsed = now - last_refill
if elapsed > 0 then
  local refill = math.floor(elapsed / interval * capacity)
  if refill > 0 then
    tokens = math.min(capacity, tokens + refill)
    last_refill = now
  end
end
local allowed = 0
if tokens > 0 then
  tokens = tokens - 1
  allowed = 1
end
redis.call("HSET", KEYS[1], "tokens", tokens, "last_refill", last_refill)
redis.call("PEXPIRE", KEYS[1], interval * 2)
return allowed
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisRateLimiter corre el token bucket como script Lua; ante errores de
// Redis admite (fail-open) para no tumbar el servicio por la cuota.
type RedisRateLimiter struct {
	client   redisEvaler
	capacity int
	interval time.Duration
	prefix   string
	now      func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, capacity int, interval time.Duration) *RedisRateLimiter {
	if client == nil {
		return nil
	}
	if capacity <= 0 {
		capacity = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &RedisRateLimiter{
		client:   client,
		capacity: capacity,
		interval: interval,
		prefix:   "chat:rl:",
		now:      time.Now,
	}
}

func (l *RedisRateLimiter) Admit(key string) Decision {
	if l == nil || l.client == nil {
		return Decision{Allowed: true}
	}

	key = strings.TrimSpace(key)
	if key == "" {
		key = "global"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	redisKey := l.prefix + key
	intervalMs := l.interval.Milliseconds()
	nowMs := l.now().UnixMilli()

	allowed, err := l.client.Eval(ctx, redisAdmitScript, []string{redisKey}, l.capacity, intervalMs, nowMs).Int()
	if err != nil {
		return Decision{Allowed: true}
	}
	if allowed != 1 {
		return Decision{Allowed: false, RetryAfter: retryAfter(l.interval)}
	}
	return Decision{Allowed: true}
}

var _ RateLimiter = (*RedisRateLimiter)(nil)
