package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotHeld is returned by Unlock when the key expired or belongs to another
// holder. The key is left untouched.
var ErrNotHeld = errors.New("lock: not held by this token")

// Locker grants a key to one holder at a time. Lock returns the holder token
// that Unlock must present.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// releaseScript deletes the key only while it still carries the caller's token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type RedisLock struct {
	client   *redis.Client
	newToken func() string
}

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client, newToken: uuid.NewString}
}

func lockKey(key string) string {
	return fmt.Sprintf("lock:%s", key)
}

func (r *RedisLock) Lock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	const op = "lock.RedisLock.Lock"

	token := r.newToken()
	ok, err := r.client.SetNX(ctx, lockKey(key), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (r *RedisLock) Unlock(ctx context.Context, key, token string) error {
	const op = "lock.RedisLock.Unlock"

	deleted, err := r.client.Eval(ctx, releaseScript, []string{lockKey(key)}, token).Int64()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotHeld)
	}
	return nil
}

// Noop always grants the lock. Used when no Redis is configured.
type Noop struct{}

func (Noop) Lock(context.Context, string, time.Duration) (string, bool, error) { return "noop", true, nil }
func (Noop) Unlock(context.Context, string, string) error                      { return nil }
