package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
)

var ErrLockTimeout = fmt.Errorf("timed out waiting for slot lock: %w", booking.ErrSlotBusy)

// Deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a SET NX PX lock shared by every API instance.
type RedisLocker struct {
	client *redis.Client
	log    *zap.Logger

	TTL   time.Duration
	Wait  time.Duration
	Retry time.Duration
}

func NewRedisLocker(client *redis.Client, log *zap.Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		log:    log,
		TTL:    10 * time.Second,
		Wait:   3 * time.Second,
		Retry:  25 * time.Millisecond,
	}
}

func key(serviceID uint) string {
	return fmt.Sprintf("booking:slot-lock:service:%d", serviceID)
}

func (l *RedisLocker) Lock(ctx context.Context, serviceID uint) (func(), error) {
	k := key(serviceID)
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.Wait)
	defer cancel()

	ticker := time.NewTicker(l.Retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.TTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("acquire %s: %w", k, err)
		}
		if ok {
			return func() {
				// The request context may already be cancelled.
				rctx, rcancel := context.WithTimeout(context.Background(), time.Second)
				defer rcancel()
				if err := releaseScript.Run(rctx, l.client, []string{k}, token).Err(); err != nil {
					l.log.Warn("release slot lock", zap.String("key", k), zap.Error(err))
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-ticker.C:
		}
	}
}
