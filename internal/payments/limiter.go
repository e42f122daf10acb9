package payments

import (
	"context"
	"time"

	"campaign-console/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// ToolLimiter bounds concurrent relay invocations per tool name using the
// shared Redis concurrency-cap scripts. It is a blast-radius limit, not an
// idempotency mechanism: duplicate sequential requests still go through.
type ToolLimiter struct {
	Redis *redis.Client
	Limit int
	TTL   time.Duration
}

func NewToolLimiter(rdb *redis.Client) *ToolLimiter {
	return &ToolLimiter{Redis: rdb, Limit: 16, TTL: 30 * time.Second}
}

// Acquire reserves a slot for the tool. On success it returns a release func.
func (l *ToolLimiter) Acquire(ctx context.Context, tool string) (bool, func(), error) {
	key := "relay:cap:" + tool
	ok, err := utils.AcquireConcurrencyCap(ctx, l.Redis, key, l.Limit, l.TTL)
	if err != nil || !ok {
		return false, nil, err
	}
	release := func() {
		// Release on a fresh context: the request context may already be done.
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = utils.ReleaseConcurrencyCap(rctx, l.Redis, key)
	}
	return true, release, nil
}
