package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisKV stores values in a Redis server under a key prefix.
type RedisKV struct {
	rdb    *redis.Client
	prefix string
}

// OpenRedis connects to the Redis server at addr and verifies it with a
// ping. Keys are namespaced with "promptquest:". The client's internal
// logging is routed to log; go-redis keeps a single process-wide logger.
func OpenRedis(ctx context.Context, addr string, log *zap.Logger) (*RedisKV, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	if log != nil {
		redis.SetLogger(&redisLogger{log: log.Named("redis").Sugar()})
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisKV{rdb: rdb, prefix: "promptquest:"}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.rdb.Close()
}

// redisLogger adapts zap to go-redis's Logging interface. The client
// only logs pool and reconnect chatter, so it goes to debug.
type redisLogger struct {
	log *zap.SugaredLogger
}

func (l *redisLogger) Printf(_ context.Context, format string, v ...interface{}) {
	l.log.Debugf(format, v...)
}
