package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/engine/core/session"
)

type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) Read(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	data, _ := args.Get(0).(map[string]any)
	return data, args.Error(1)
}

func (m *mockHandler) Write(ctx context.Context, id string, data map[string]any, ttl time.Duration) error {
	return m.Called(ctx, id, data, ttl).Error(0)
}

func (m *mockHandler) Destroy(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockHandler) GC(ctx context.Context, maxLifetime time.Duration) (int64, error) {
	args := m.Called(ctx, maxLifetime)
	return args.Get(0).(int64), args.Error(1)
}

func sequentialIDs(ids ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		if i >= len(ids) {
			return "", errors.New("out of ids")
		}
		id := ids[i]
		i++
		return id, nil
	}
}

func TestHandlerStorage_Start(t *testing.T) {
	t.Parallel()

	t.Run("new session gets generated id", func(t *testing.T) {
		t.Parallel()
		h := &mockHandler{}
		s := session.NewHandlerStorage(h, session.WithIDGenerator(sequentialIDs("id-1")))

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, "id-1", s.ID())
		assert.True(t, s.IsStarted())
		h.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
	})

	t.Run("known id loads data", func(t *testing.T) {
		t.Parallel()
		h := &mockHandler{}
		h.On("Read", mock.Anything, "known").Return(map[string]any{"k": "v"}, nil)
		s := session.NewHandlerStorage(h)
		s.SetID("known")

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, "known", s.ID())
		assert.Equal(t, "v", s.Get("k", nil))
		h.AssertExpectations(t)
	})

	t.Run("unknown id is replaced", func(t *testing.T) {
		t.Parallel()
		h := &mockHandler{}
		h.On("Read", mock.Anything, "attacker-chosen").Return(nil, session.ErrNotFound)
		s := session.NewHandlerStorage(h, session.WithIDGenerator(sequentialIDs("fresh")))
		s.SetID("attacker-chosen")

		require.NoError(t, s.Start(context.Background()))
		assert.Equal(t, "fresh", s.ID())
		assert.Empty(t, s.All())
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection refused")
		h := &mockHandler{}
		h.On("Read", mock.Anything, "id").Return(nil, boom)
		s := session.NewHandlerStorage(h)
		s.SetID("id")

		err := s.Start(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.False(t, s.IsStarted())
	})

	t.Run("id generation failure", func(t *testing.T) {
		t.Parallel()
		s := session.NewHandlerStorage(&mockHandler{}, session.WithIDGenerator(sequentialIDs()))
		err := s.Start(context.Background())
		assert.ErrorIs(t, err, session.ErrTokenGeneration)
	})
}

func TestHandlerStorage_Regenerate(t *testing.T) {
	t.Parallel()

	t.Run("destroy removes old id", func(t *testing.T) {
		t.Parallel()
		h := &mockHandler{}
		h.On("Destroy", mock.Anything, "old").Return(nil)
		s := session.NewHandlerStorage(h, session.WithIDGenerator(sequentialIDs("old", "new")))
		require.NoError(t, s.Start(context.Background()))
		s.Set("k", 1)

		require.NoError(t, s.Regenerate(context.Background(), true))
		assert.Equal(t, "new", s.ID())
		assert.Equal(t, 1, s.Get("k", nil))
		h.AssertExpectations(t)
	})

	t.Run("without destroy keeps old data", func(t *testing.T) {
		t.Parallel()
		h := &mockHandler{}
		s := session.NewHandlerStorage(h, session.WithIDGenerator(sequentialIDs("old", "new")))
		require.NoError(t, s.Start(context.Background()))

		require.NoError(t, s.Regenerate(context.Background(), false))
		assert.Equal(t, "new", s.ID())
		h.AssertNotCalled(t, "Destroy", mock.Anything, mock.Anything)
	})

	t.Run("destroy failure keeps id", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("delete failed")
		h := &mockHandler{}
		h.On("Destroy", mock.Anything, "old").Return(boom)
		s := session.NewHandlerStorage(h, session.WithIDGenerator(sequentialIDs("old", "new")))
		require.NoError(t, s.Start(context.Background()))

		assert.ErrorIs(t, s.Regenerate(context.Background(), true), boom)
		assert.Equal(t, "old", s.ID())
	})

	t.Run("not started", func(t *testing.T) {
		t.Parallel()
		s := session.NewHandlerStorage(&mockHandler{})
		assert.ErrorIs(t, s.Regenerate(context.Background(), true), session.ErrNotStarted)
	})
}

func TestHandlerStorage_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes data with ttl", func(t *testing.T) {
		t.Parallel()
		h := &mockHandler{}
		h.On("Write", mock.Anything, "id", map[string]any{"k": "v"}, 15*time.Minute).Return(nil)
		s := session.NewHandlerStorage(h,
			session.WithIDGenerator(sequentialIDs("id")),
			session.WithTTL(15*time.Minute),
		)
		require.NoError(t, s.Start(context.Background()))
		s.Set("k", "v")

		require.NoError(t, s.Save(context.Background()))
		h.AssertExpectations(t)
	})

	t.Run("not started", func(t *testing.T) {
		t.Parallel()
		s := session.NewHandlerStorage(&mockHandler{})
		assert.ErrorIs(t, s.Save(context.Background()), session.ErrNotStarted)
	})
}

func TestHandlerStorage_FromConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	cfg.Name = "app_session"
	s := session.NewHandlerStorageFromConfig(session.NewMemoryHandler(), cfg)
	assert.Equal(t, "app_session", s.Name())
}

func TestHandlerStorage_AllReturnsCopy(t *testing.T) {
	t.Parallel()

	s := session.NewHandlerStorage(session.NewMemoryHandler())
	require.NoError(t, s.Start(context.Background()))
	s.Set("k", 1)

	all := s.All()
	all["k"] = 2
	assert.Equal(t, 1, s.Get("k", nil))

	s.Clear()
	assert.Empty(t, s.All())
}

func TestNewHandlerStorage_PanicsOnNilHandler(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { session.NewHandlerStorage(nil) })
}
