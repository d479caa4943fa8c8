package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fastygo/timeblock/repository"
)

type idempotencyRepository struct {
	mu   sync.Mutex
	now  func() time.Time
	keys map[string]time.Time
}

// NewIdempotencyRepository keeps reserved request keys in memory until they expire.
func NewIdempotencyRepository() repository.IdempotencyRepository {
	return &idempotencyRepository{now: time.Now, keys: make(map[string]time.Time)}
}

func (r *idempotencyRepository) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, expires := range r.keys {
		if !expires.After(now) {
			delete(r.keys, k)
		}
	}
	if _, held := r.keys[key]; held {
		return false, nil
	}
	r.keys[key] = now.Add(ttl)
	return true, nil
}

func (r *idempotencyRepository) Release(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keys, key)
	return nil
}

type flagRepository struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagRepository returns a FlagRepository that forgets everything on exit.
func NewFlagRepository() repository.FlagRepository {
	return &flagRepository{flags: make(map[string]bool)}
}

func (r *flagRepository) Flag(_ context.Context, key string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flags[key], nil
}

func (r *flagRepository) SetFlag(_ context.Context, key string, value bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[key] = value
	return nil
}
