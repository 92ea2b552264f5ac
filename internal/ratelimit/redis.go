package ratelimit

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisLimiter shares counters across instances through a Redis INCR with a
// window-long expiry on the first hit of each window. On a Redis failure the
// request is allowed through; the limiter protects against abuse, it is not a
// correctness gate.
type RedisLimiter struct {
	cfg    Config
	client *redis.Client
}

func NewRedisLimiter(cfg Config, client *redis.Client) *RedisLimiter {
	return &RedisLimiter{cfg: cfg, client: client}
}

func (l *RedisLimiter) Check(ctx context.Context, key string) Decision {
	redisKey := "rate_limit:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Rate limit INCR failed, allowing request")
		return Decision{Allowed: true, Remaining: l.cfg.Requests}
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.cfg.Window).Err(); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Rate limit EXPIRE failed")
		}
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = l.cfg.Window
	}
	reset := nowFunc().Add(ttl)

	if int(count) > l.cfg.Requests {
		return Decision{Allowed: false, Remaining: 0, ResetTime: reset}
	}
	return Decision{Allowed: true, Remaining: l.cfg.Requests - int(count), ResetTime: reset}
}
