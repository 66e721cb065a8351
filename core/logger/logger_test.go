package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/engine/core/logger"
)

type requestIDKey struct{}

func TestNew_JSONOutput(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))

	log.Info("test message", logger.Component("test"))

	assert.Contains(t, buf.String(), `"msg":"test message"`)
	assert.Contains(t, buf.String(), `"component":"test"`)
}

func TestNew_LevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithLevel(slog.LevelWarn), logger.WithOutput(&buf))

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_ContextValue(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(
		logger.WithJSONFormatter(),
		logger.WithOutput(&buf),
		logger.WithContextValue("request_id", requestIDKey{}),
	)

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-1")
	log.InfoContext(ctx, "with ctx")
	log.With("k", "v").InfoContext(context.Background(), "without ctx value")

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"k":"v"`)
}

func TestNew_Development(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("engine"), logger.WithOutput(&buf))

	log.Debug("debug enabled")

	assert.Contains(t, buf.String(), "debug enabled")
	assert.Contains(t, buf.String(), "env=development")
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.NewFromConfig(logger.Config{
		AppName: "engine",
		Env:     "production",
		Level:   "warn",
		Format:  "json",
	}, logger.WithOutput(&buf))

	log.Info("dropped")
	log.Error("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"service":"engine"`)
	assert.Contains(t, out, `"env":"production"`)
}

func TestNop(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		logger.Nop().Error("nothing", logger.Error(assert.AnError))
	})
}
