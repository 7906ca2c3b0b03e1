// Package ratelimit throttles login attempts with a token bucket kept in
// Redis, so that every server instance shares the same budget per account.
package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	loginKeyPrefix = "ratelimit:login:"
	bucketTTL      = 10 * time.Minute
)

// Result describes the outcome of a single Allow call.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// tokenBucketScript refills and consumes in one atomic step.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])
	local burst = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	local data = redis.call('HMGET', key, 'tokens', 'last_update')
	local tokens = tonumber(data[1]) or burst
	local last_update = tonumber(data[2]) or now

	tokens = math.min(burst, tokens + ((now - last_update) * rate))

	local allowed = 0
	local retry_after = 0
	if tokens >= 1 then
		tokens = tokens - 1
		allowed = 1
	else
		retry_after = math.ceil((1 - tokens) / rate)
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_update', now)
	redis.call('EXPIRE', key, ttl)

	return {allowed, retry_after, math.floor(tokens)}
`)

// RedisLimiter grants ratePerMinute attempts per key with bursts of up to
// burst attempts. A zero rate disables limiting.
type RedisLimiter struct {
	client        *redis.Client
	ratePerMinute int
	burst         int
	now           func() time.Time
}

// New connects to redisURL and verifies the connection with a PING.
func New(ctx context.Context, redisURL string, ratePerMinute, burst int) (*RedisLimiter, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(client, ratePerMinute, burst), nil
}

func NewWithClient(client *redis.Client, ratePerMinute, burst int) *RedisLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RedisLimiter{client: client, ratePerMinute: ratePerMinute, burst: burst, now: time.Now}
}

// Allow consumes one token for key. When Redis cannot be reached the
// attempt is allowed and the error is returned for logging.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	if l.ratePerMinute <= 0 {
		return Result{Allowed: true, Remaining: int64(l.burst)}, nil
	}

	rate := float64(l.ratePerMinute) / 60.0
	out, err := tokenBucketScript.Run(ctx, l.client,
		[]string{key},
		rate, l.burst, l.now().Unix(), int(bucketTTL.Seconds()),
	).Int64Slice()
	if err != nil {
		return Result{Allowed: true, Remaining: int64(l.burst)}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(out) != 3 {
		return Result{Allowed: true, Remaining: int64(l.burst)}, fmt.Errorf("rate limit script: unexpected reply %v", out)
	}

	return Result{
		Allowed:    out[0] == 1,
		RetryAfter: time.Duration(out[1]) * time.Second,
		Remaining:  out[2],
	}, nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

// LoginKey derives the bucket key for an email address. The address is
// normalized and hashed so raw emails never reach Redis.
func LoginKey(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return loginKeyPrefix + hex.EncodeToString(sum[:8])
}
