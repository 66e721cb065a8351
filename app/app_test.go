package app_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/engine/app"
	"github.com/dmitrymomot/engine/core/cookie"
	"github.com/dmitrymomot/engine/core/logger"
	"github.com/dmitrymomot/engine/core/server"
	"github.com/dmitrymomot/engine/core/session"
)

type sessionBody struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

func newApp(t *testing.T, cfg app.Config) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), app.WithConfig(cfg), app.WithLogger(logger.Nop()))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func defaultConfig() app.Config {
	return app.Config{
		Server:         server.DefaultConfig(),
		Session:        session.DefaultConfig(),
		CurrentVersion: "1.9",
	}
}

func getSession(t *testing.T, h http.Handler, c *http.Cookie) (sessionBody, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	if c != nil {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body sessionBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return body, cookies[0]
}

func TestApp_SessionEndpoints(t *testing.T) {
	t.Parallel()

	a := newApp(t, defaultConfig())
	h := a.Handler()

	first, sc := getSession(t, h, nil)
	assert.Equal(t, session.DefaultName, first.Name)
	assert.NotEmpty(t, first.Token)
	assert.Equal(t, first.ID, sc.Value)

	second, _ := getSession(t, h, sc)
	assert.Equal(t, first, second)

	req := httptest.NewRequest(http.MethodPost, "/session/regenerate", nil)
	req.AddCookie(sc)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var migrated sessionBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&migrated))
	assert.NotEqual(t, first.ID, migrated.ID)
	assert.Equal(t, first.Token, migrated.Token)

	req = httptest.NewRequest(http.MethodDelete, "/session", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultName, Value: migrated.ID})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	invalidated := rec.Result().Cookies()[0]
	assert.NotEqual(t, migrated.ID, invalidated.Value)

	after, _ := getSession(t, h, invalidated)
	assert.NotEqual(t, first.Token, after.Token)
}

func TestApp_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	a := newApp(t, defaultConfig())
	h := a.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	getSession(t, h, nil)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "engine_sessions_started_total 1")
}

func TestApp_CollectAndDestroy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	handler := session.NewMemoryHandler()
	cfg := defaultConfig()
	a, err := app.New(ctx, app.WithConfig(cfg), app.WithLogger(logger.Nop()), app.WithSaveHandler(handler))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	require.NoError(t, handler.Write(ctx, "id", map[string]any{}, 0))
	n, err := a.CollectSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, a.DestroySession(ctx, "id"))
	assert.Zero(t, handler.Len())
}

func TestApp_Autoload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "page"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page", "home.tmpl"), []byte("home"), 0o644))

	cfg := defaultConfig()
	cfg.AutoloadDirs = []string{dir}
	a := newApp(t, cfg)

	path, ok := a.Services().AutoloadManager().Lookup("page/home")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "page", "home.tmpl"), path)
}

func TestApp_Errors(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Session.Driver = "file"
	_, err := app.New(context.Background(), app.WithConfig(cfg), app.WithLogger(logger.Nop()))
	assert.ErrorIs(t, err, app.ErrUnknownDriver)

	cfg = defaultConfig()
	cfg.AutoloadDirs = []string{filepath.Join(t.TempDir(), "missing")}
	_, err = app.New(context.Background(), app.WithConfig(cfg), app.WithLogger(logger.Nop()))
	assert.Error(t, err)

	cfg = defaultConfig()
	cfg.Cookie.Secrets = "short"
	_, err = app.New(context.Background(), app.WithConfig(cfg), app.WithLogger(logger.Nop()))
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	_, err = app.New(context.Background(), app.WithLogger(nil))
	assert.Error(t, err)
}

func TestApp_SignedSessionCookie(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Cookie.Secrets = "app-cookie-secret-32-characters!"
	h := newApp(t, cfg).Handler()

	first, signed := getSession(t, h, nil)
	assert.NotEqual(t, first.ID, signed.Value)

	second, _ := getSession(t, h, signed)
	assert.Equal(t, first.ID, second.ID)

	forged, _ := getSession(t, h, &http.Cookie{Name: session.DefaultName, Value: first.ID})
	assert.NotEqual(t, first.ID, forged.ID)
}
