package judge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/gradekit/internal/answer"
)

// ErrCacheMiss is returned by VerdictCache.Get when no verdict is stored.
var ErrCacheMiss = errors.New("verdict not cached")

// VerdictCache stores verdicts by key.
type VerdictCache interface {
	Get(ctx context.Context, key string) (answer.Verdict, error)
	Set(ctx context.Context, key string, v answer.Verdict) error
}

// CacheKey identifies a request independently of case and surrounding
// whitespace.
func CacheKey(req answer.JudgeRequest) string {
	h := sha256.New()
	for _, s := range []string{req.Question, req.CorrectAnswer, req.Answer} {
		h.Write([]byte(answer.Normalize(s)))
		h.Write([]byte{0})
	}
	return "gradekit:verdict:" + hex.EncodeToString(h.Sum(nil))
}

type cachedJudge struct {
	inner  answer.Judge
	cache  VerdictCache
	logger *slog.Logger
}

// Cached puts cache in front of j. Cache failures are logged and fall
// through to j; judge errors are not cached.
func Cached(j answer.Judge, cache VerdictCache, logger *slog.Logger) answer.Judge {
	if logger == nil {
		logger = slog.Default()
	}
	return &cachedJudge{inner: j, cache: cache, logger: logger}
}

func (c *cachedJudge) Judge(ctx context.Context, req answer.JudgeRequest) (answer.Verdict, error) {
	key := CacheKey(req)
	v, err := c.cache.Get(ctx, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("verdict cache read failed", "error", err)
	}

	v, err = c.inner.Judge(ctx, req)
	if err != nil {
		return v, err
	}
	if err := c.cache.Set(ctx, key, v); err != nil {
		c.logger.Warn("verdict cache write failed", "error", err)
	}
	return v, nil
}

// RedisCache keeps verdicts in Redis as JSON with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to url (redis://...) and pings it.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (answer.Verdict, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return answer.Verdict{}, ErrCacheMiss
	}
	if err != nil {
		return answer.Verdict{}, fmt.Errorf("get %s: %w", key, err)
	}
	var v answer.Verdict
	if err := json.Unmarshal(b, &v); err != nil {
		return answer.Verdict{}, fmt.Errorf("decode cached verdict: %w", err)
	}
	return v, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, v answer.Verdict) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, b, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// MemoryCache is an unbounded in-process VerdictCache.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]answer.Verdict
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]answer.Verdict)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (answer.Verdict, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	if !ok {
		return answer.Verdict{}, ErrCacheMiss
	}
	return v, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, v answer.Verdict) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
