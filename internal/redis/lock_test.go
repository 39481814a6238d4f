package redis_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wildsight/wildsight/internal/redis"
	"go.uber.org/zap"
)

func setupTest(t *testing.T) (*redis.Locker, func()) {
	t.Helper()
	// Start miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Create Redis client
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)

	// Create test logger
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	locker := redis.NewLocker(client, logger)

	cleanup := func() {
		mr.Close()
		client.Close()
		logger.Sync()
	}

	return locker, cleanup
}

func TestWithLock(t *testing.T) {
	t.Parallel()
	locker, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()
	ran := false

	err := locker.WithLock(ctx, "recompute:test", func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestWithLockReleasesAfterUse(t *testing.T) {
	t.Parallel()
	locker, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	// The second acquisition succeeds immediately because the first released.
	for range 2 {
		err := locker.WithLock(ctx, "recompute:reuse", func(ctx context.Context) error {
			return nil
		})
		require.NoError(t, err)
	}
}

func TestWithLockSerializes(t *testing.T) {
	t.Parallel()
	locker, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	var mu sync.Mutex
	var active, maxActive int

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := locker.WithLock(ctx, "recompute:serial", func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}

func TestWithLockIndependentKeys(t *testing.T) {
	t.Parallel()
	locker, cleanup := setupTest(t)
	defer cleanup()

	ctx := t.Context()

	// Holding one submission's lock must not block another submission.
	err := locker.WithLock(ctx, "recompute:a", func(ctx context.Context) error {
		return locker.WithLock(ctx, "recompute:b", func(ctx context.Context) error {
			return nil
		})
	})
	require.NoError(t, err)
}
