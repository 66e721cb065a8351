package pg

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_PoolSharesDialAndHonoursDeadline(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	release := make(chan struct{})
	down := errors.New("down")

	d := NewDB(Config{})
	d.connect = func(context.Context, Config) (*pgxpool.Pool, error) {
		calls.Add(1)
		<-release
		return nil, down
	}

	first := make(chan error, 1)
	go func() {
		_, err := d.Pool(context.Background())
		first <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := d.Pool(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrFailedToOpenDBConnection)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	close(release)
	assert.ErrorIs(t, <-first, down)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Connected())

	// failures are not cached
	_, err = d.Pool(context.Background())
	assert.ErrorIs(t, err, down)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDB_PoolDialSurvivesCallerCancel(t *testing.T) {
	t.Parallel()

	dialCtx := make(chan context.Context, 1)
	d := NewDB(Config{})
	d.connect = func(ctx context.Context, _ Config) (*pgxpool.Pool, error) {
		dialCtx <- ctx
		return nil, errors.New("down")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _ = d.Pool(ctx)

	select {
	case got := <-dialCtx:
		assert.NoError(t, got.Err())
	case <-time.After(time.Second):
		t.Fatal("dial did not start")
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Second, backoff(0, 0))
	assert.Equal(t, 200*time.Millisecond, backoff(100*time.Millisecond, 1))
	assert.Equal(t, 800*time.Millisecond, backoff(100*time.Millisecond, 3))
	assert.Equal(t, maxRetryInterval, backoff(time.Second, 10))
	assert.Equal(t, maxRetryInterval, backoff(time.Second, 40))
	assert.Equal(t, maxRetryInterval, backoff(time.Second, 200))
	assert.Equal(t, time.Minute, backoff(time.Minute, 5))
}
