package audit

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisKey    = "audit:events"
	defaultRedisMaxLen = 10000
)

// RedisRepo keeps a bounded, newest-first event list in Redis.
// Retention is by count, not time: the list is trimmed on every append.
type RedisRepo struct {
	rdb    *redis.Client
	key    string
	maxLen int64
}

func NewRedisRepo(rdb *redis.Client) *RedisRepo {
	return &RedisRepo{rdb: rdb, key: defaultRedisKey, maxLen: defaultRedisMaxLen}
}

func (r *RedisRepo) Append(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, r.key, b)
	pipe.LTrim(ctx, r.key, 0, r.maxLen-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to n newest events, newest first.
func (r *RedisRepo) Recent(ctx context.Context, n int64) ([]Event, error) {
	raw, err := r.rdb.LRange(ctx, r.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(raw))
	for _, item := range raw {
		var e Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			// Skip corrupt entries rather than failing the whole read.
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
