package repository

import (
	"context"
	"time"
)

// IdempotencyRepository remembers client-generated request keys so a rapid
// double submit is only applied once.
type IdempotencyRepository interface {
	// Reserve records key for ttl. It returns false when the key is already held.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// FlagRepository stores small durable boolean flags.
type FlagRepository interface {
	Flag(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, value bool) error
}
