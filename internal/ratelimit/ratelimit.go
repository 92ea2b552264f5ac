package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// Limiter is the contract the submission path depends on. The in-memory
// implementation serves a single process; a multi-instance deployment swaps
// in the Redis-backed one without touching callers.
type Limiter interface {
	Check(ctx context.Context, key string) Decision
}

// Config bounds a limiter: at most Requests hits per Window per key.
type Config struct {
	Requests int
	Window   time.Duration
}

// SubmissionConfig throttles anonymous form submissions per client IP.
var SubmissionConfig = Config{Requests: 5, Window: time.Hour}

var nowFunc = time.Now
