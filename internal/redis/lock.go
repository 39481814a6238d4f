package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// ErrLockNotAcquired is returned when a lock stays held by another owner for
// the whole acquisition window.
var ErrLockNotAcquired = errors.New("lock not acquired")

const (
	lockTTL            = 10 * time.Second
	lockRetryInterval  = 25 * time.Millisecond
	lockRetryMax       = 250 * time.Millisecond
	lockAcquireTimeout = 5 * time.Second

	lockKeyPrefix = "lock:"
)

// releaseScript deletes the lock only when the stored token still belongs to
// this holder, so an expired lock taken over by someone else is never
// released from here.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// Locker serializes work on a shared key across all service instances. The
// recompute path uses one lock per submission so votes on the same sighting
// recompute one at a time while different sightings proceed in parallel.
type Locker struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewLocker creates a new locker on the given Redis client.
func NewLocker(client rueidis.Client, logger *zap.Logger) *Locker {
	return &Locker{
		client: client,
		logger: logger.Named("locker"),
	}
}

// WithLock runs fn while holding the named lock, releasing it afterwards.
// Acquisition retries with backoff until the acquisition window closes, then
// fails with ErrLockNotAcquired.
func (l *Locker) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	key := lockKeyPrefix + name
	token := uuid.NewString()

	if err := l.acquire(ctx, key, token); err != nil {
		return err
	}
	defer l.release(ctx, key, token)

	return fn(ctx)
}

func (l *Locker) acquire(ctx context.Context, key, token string) error {
	b := backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(lockAcquireTimeout),
		backoff.WithInitialInterval(lockRetryInterval),
		backoff.WithMaxInterval(lockRetryMax),
	)

	err := backoff.Retry(func() error {
		resp := l.client.Do(ctx,
			l.client.B().Set().Key(key).Value(token).Nx().Px(lockTTL).Build(),
		)
		if err := resp.Error(); err != nil {
			if rueidis.IsRedisNil(err) {
				// SET NX returned nil, the lock is held by someone else
				return ErrLockNotAcquired
			}
			return backoff.Permanent(fmt.Errorf("failed to acquire lock: %w", err))
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		if errors.Is(err, ErrLockNotAcquired) {
			return fmt.Errorf("%w: %s", ErrLockNotAcquired, key)
		}
		return err
	}

	return nil
}

func (l *Locker) release(ctx context.Context, key, token string) {
	err := l.client.Do(ctx,
		l.client.B().Eval().Script(releaseScript).Numkeys(1).Key(key).Arg(token).Build(),
	).Error()
	if err != nil {
		// The lock expires on its own; losing the early release only delays
		// the next holder.
		l.logger.Warn("Failed to release lock",
			zap.String("key", key),
			zap.Error(err))
	}
}
