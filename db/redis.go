package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

func ConnectRedis(redisURL string) error {
	if redisURL == "" {
		return fmt.Errorf("redis url is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(context.Background()).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock is a cross-process mutex held in Redis with SET NX PX. The TTL
// bounds how long a crashed holder can block other runs.
type RunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRunLock(client *redis.Client, key string, ttl time.Duration) *RunLock {
	return &RunLock{client: client, key: key, ttl: ttl}
}

// TryLock attempts to take the lock without waiting. When ok is true the
// caller must call unlock.
func (l *RunLock) TryLock(ctx context.Context) (unlock func(), ok bool, err error) {
	token := ulid.Make().String()

	ok, err = l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	unlock = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			slog.Warn("error releasing run lock", "key", l.key, "error", err)
		}
	}
	return unlock, true, nil
}
