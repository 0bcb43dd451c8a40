package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session in one hash with a sliding TTL
type RedisStore struct {
	C   *redis.Client
	TTL time.Duration
}

func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		C:   redis.NewClient(&redis.Options{Addr: addr}),
		TTL: ttl,
	}
}

func sessionKey(sid string) string { return "session:" + sid }

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.C.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.C.Close()
}

func (r *RedisStore) Get(ctx context.Context, sid, key string) (string, bool, error) {
	k := sessionKey(sid)
	pipe := r.C.TxPipeline()
	get := pipe.HGet(ctx, k, key)
	if r.TTL > 0 {
		pipe.Expire(ctx, k, r.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return "", false, err
	}

	v, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, sid, key, value string) error {
	k := sessionKey(sid)
	pipe := r.C.TxPipeline()
	pipe.HSet(ctx, k, key, value)
	if r.TTL > 0 {
		pipe.Expire(ctx, k, r.TTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.C.HDel(ctx, sessionKey(sid), keys...).Err()
}
