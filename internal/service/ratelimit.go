package service

import (
	"hash/fnv"
	"strings"
	"sync"
	"time"
)

// Decision es el resultado de pasar por la puerta de admisión.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RateLimiter define el contrato de admisión por clave de cliente.
type RateLimiter interface {
	Admit(key string) Decision
}

const rateLimiterShards = 32

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastSeen   time.Time
}

type rateLimiterShard struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// MemoryRateLimiter implementa un token bucket con recarga perezosa por clave.
// Los locks van por shard para que claves distintas no se bloqueen entre sí,
// y los buckets ociosos se barren de forma amortizada en cada Admit.
type MemoryRateLimiter struct {
	shards   [rateLimiterShards]*rateLimiterShard
	capacity int
	interval time.Duration
	now      func() time.Time
}

func NewMemoryRateLimiter(capacity int, interval time.Duration) *MemoryRateLimiter {
	if capacity <= 0 {
		capacity = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	l := &MemoryRateLimiter{
		capacity: capacity,
		interval: interval,
		now:      time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &rateLimiterShard{buckets: make(map[string]*bucket)}
	}
	return l
}

// Admit consume un token de la clave; la secuencia recarga-chequeo-decremento
// es atómica por clave.
func (l *MemoryRateLimiter) Admit(key string) Decision {
	if l == nil {
		return Decision{Allowed: true}
	}

	key = strings.TrimSpace(key)
	if key == "" {
		key = "global"
	}

	now := l.now()
	shard := l.shardFor(key)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	shard.sweepLocked(now, l.interval)

	b, ok := shard.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		shard.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill)
	if elapsed > 0 {
		tokensToAdd := int(int64(elapsed) * int64(l.capacity) / int64(l.interval))
		if tokensToAdd > 0 {
			b.tokens = min(l.capacity, b.tokens+tokensToAdd)
			b.lastRefill = now
		}
	}
	b.lastSeen = now

	if b.tokens <= 0 {
		return Decision{Allowed: false, RetryAfter: retryAfter(l.interval)}
	}

	b.tokens--
	return Decision{Allowed: true}
}

func (l *MemoryRateLimiter) shardFor(key string) *rateLimiterShard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return l.shards[h.Sum32()%rateLimiterShards]
}

// sweepLocked elimina buckets sin uso por más de dos intervalos, a lo sumo
// una vez por intervalo y por shard.
func (s *rateLimiterShard) sweepLocked(now time.Time, interval time.Duration) {
	if now.Sub(s.lastSweep) < interval {
		return
	}
	s.lastSweep = now
	for key, b := range s.buckets {
		if now.Sub(b.lastSeen) > 2*interval {
			delete(s.buckets, key)
		}
	}
}

// retryAfter redondea el intervalo hacia arriba a segundos enteros.
func retryAfter(interval time.Duration) time.Duration {
	seconds := (interval + time.Second - 1) / time.Second
	return seconds * time.Second
}

var _ RateLimiter = (*MemoryRateLimiter)(nil)
