package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHandler(t *testing.T) {
	t.Parallel()

	t.Run("read returns copy", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		h := NewMemoryHandler()

		require.NoError(t, h.Write(ctx, "id", map[string]any{"k": "v"}, 0))
		data, err := h.Read(ctx, "id")
		require.NoError(t, err)
		data["k"] = "changed"

		data, err = h.Read(ctx, "id")
		require.NoError(t, err)
		assert.Equal(t, "v", data["k"])
	})

	t.Run("missing and empty id", func(t *testing.T) {
		t.Parallel()
		h := NewMemoryHandler()
		_, err := h.Read(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = h.Read(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidID)
		assert.ErrorIs(t, h.Write(context.Background(), "", nil, 0), ErrInvalidID)
	})

	t.Run("ttl expiry and gc", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		h := NewMemoryHandler()
		h.now = func() time.Time { return now }

		require.NoError(t, h.Write(ctx, "short", map[string]any{}, time.Minute))
		require.NoError(t, h.Write(ctx, "forever", map[string]any{}, 0))

		now = now.Add(2 * time.Minute)
		_, err := h.Read(ctx, "short")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 2, h.Len())

		removed, err := h.GC(ctx, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		now = now.Add(2 * time.Hour)
		removed, err = h.GC(ctx, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)
		assert.Equal(t, 0, h.Len())
	})

	t.Run("destroy", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		h := NewMemoryHandler()
		require.NoError(t, h.Write(ctx, "id", nil, 0))
		require.NoError(t, h.Destroy(ctx, "id"))
		require.NoError(t, h.Destroy(ctx, "id"))
		_, err := h.Read(ctx, "id")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		h := NewMemoryHandler()

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				id := fmt.Sprintf("id-%d", i)
				assert.NoError(t, h.Write(ctx, id, map[string]any{"n": i}, time.Hour))
				data, err := h.Read(ctx, id)
				assert.NoError(t, err)
				assert.Equal(t, i, data["n"])
				_, _ = h.GC(ctx, time.Hour)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 50, h.Len())
	})
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	var nilMap map[string]any
	var nilPtr *int
	one := 1

	assert.False(t, truthy(nil))
	assert.False(t, truthy(nilMap))
	assert.False(t, truthy(nilPtr))
	assert.False(t, truthy(uint8(0)))
	assert.False(t, truthy(0.0))
	assert.True(t, truthy(&one))
	assert.True(t, truthy(map[string]int{"a": 1}))
	assert.True(t, truthy(struct{}{}))
	assert.True(t, truthy(-1))
}
