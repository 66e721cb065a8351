package deprecation_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/engine/core/deprecation"
	"github.com/dmitrymomot/engine/core/logger"
)

func newNotifier(buf *bytes.Buffer, opts ...deprecation.Option) *deprecation.Notifier {
	return deprecation.New(logger.New(logger.WithJSONFormatter(), logger.WithOutput(buf)), opts...)
}

func TestNotice_LogsWarning(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n := newNotifier(&buf)

	assert.True(t, n.Notice(context.Background(), "Session::del has been deprecated.", "1.9"))

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, "Deprecated in 1.9: Session::del has been deprecated.")
	assert.Contains(t, out, `"version":"1.9"`)
	assert.Contains(t, out, `"component":"deprecation"`)
}

func TestNotice_EveryCall(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n := newNotifier(&buf)

	for range 3 {
		n.Notice(context.Background(), "same message", "1.9")
	}

	assert.Equal(t, 3, strings.Count(buf.String(), "same message"))
}

func TestNotice_EscalatesStaleVersions(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n := newNotifier(&buf, deprecation.WithCurrentVersion("2.0"))

	n.Notice(context.Background(), "previous major", "1.9")
	assert.Contains(t, buf.String(), `"level":"ERROR"`)

	buf.Reset()
	n.Notice(context.Background(), "current major", "2.0")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestNotice_WithCaller(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n := newNotifier(&buf, deprecation.WithCaller())

	//nolint:staticcheck // nil context is tolerated
	n.Notice(nil, "msg", "1.9")

	assert.Contains(t, buf.String(), `"caller"`)
}

func TestNew_NilLogger(t *testing.T) {
	t.Parallel()
	n := deprecation.New(nil)
	assert.NotPanics(t, func() {
		n.Notice(context.Background(), "msg", "1.9")
	})
}
