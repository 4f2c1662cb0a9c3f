package ratelimiter

import (
	"context"
	"time"
)

// State is a bucket after a consume call. A negative Remaining means the
// call was over the limit.
type State struct {
	Remaining int
	ResetAt   time.Time
	Now       time.Time
}

// Store keeps bucket state per key.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (State, error)
	Reset(ctx context.Context, key string) error
}
