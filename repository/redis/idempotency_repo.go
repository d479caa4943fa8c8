package redis

import (
	"context"
	"time"

	goRedis "github.com/redis/go-redis/v9"

	"github.com/fastygo/timeblock/repository"
)

const idempotencyPrefix = "idempotency:"

type idempotencyRepository struct {
	client *goRedis.Client
}

// NewIdempotencyRepository reserves request keys with SET NX so every server
// instance sharing the Redis sees the same reservations.
func NewIdempotencyRepository(client *goRedis.Client) repository.IdempotencyRepository {
	return &idempotencyRepository{client: client}
}

func (r *idempotencyRepository) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, idempotencyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (r *idempotencyRepository) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, idempotencyPrefix+key).Err()
}
