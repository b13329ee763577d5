package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forumkit/pkg/browser"
	"github.com/dmitrymomot/forumkit/pkg/cookie"
	"github.com/dmitrymomot/forumkit/pkg/crypto"
	"github.com/dmitrymomot/forumkit/pkg/session"
)

func newTestManager(t *testing.T, cfg session.Config) (*session.Manager, *session.MemoryBackend) {
	t.Helper()

	backend := session.NewMemoryBackend()
	store := session.NewStore(backend, crypto.NewEngine(), cfg.Encrypt)
	mgr := session.New(store, browser.NewProvider(),
		session.WithConfig(cfg),
		session.WithCookieManager(cookie.New()),
	)
	return mgr, backend
}

func newRequest(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:44321"
	r.Header.Set("User-Agent", "test-agent/1.0")
	r.Header.Set("Accept-Language", "en-US")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestManagerCheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("first visit creates a session", func(t *testing.T) {
		t.Parallel()

		mgr, backend := newTestManager(t, session.DefaultConfig())

		w := httptest.NewRecorder()
		sess, rotated, err := mgr.Check(ctx, w, newRequest(nil), false)
		require.NoError(t, err)
		require.NotNil(t, sess)

		assert.True(t, rotated)
		assert.NotEmpty(t, sess.ID)
		assert.NotEmpty(t, sess.Canary.Visit)
		assert.Equal(t, "203.0.113.7", sess.Canary.IP)
		assert.False(t, sess.Canary.Expired())
		assert.Equal(t, 1, backend.Len())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "is", cookies[0].Name)
		assert.Equal(t, sess.ID, cookies[0].Value)
	})

	t.Run("return visit resumes the session", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newTestManager(t, session.DefaultConfig())

		w := httptest.NewRecorder()
		first, _, err := mgr.Check(ctx, w, newRequest(nil), false)
		require.NoError(t, err)

		first.Set("user_id", "42")
		require.NoError(t, mgr.Save(ctx, newRequest(nil), first))

		second, rotated, err := mgr.Check(ctx, httptest.NewRecorder(), newRequest(w.Result().Cookies()), false)
		require.NoError(t, err)

		assert.False(t, rotated)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Canary.Visit, second.Canary.Visit)

		uid, ok := second.GetString("user_id")
		assert.True(t, ok)
		assert.Equal(t, "42", uid)
	})

	t.Run("reset regenerates id and clears data", func(t *testing.T) {
		t.Parallel()

		mgr, backend := newTestManager(t, session.DefaultConfig())

		w := httptest.NewRecorder()
		first, _, err := mgr.Check(ctx, w, newRequest(nil), false)
		require.NoError(t, err)

		first.Set("user_id", "42")
		require.NoError(t, mgr.Save(ctx, newRequest(nil), first))

		w2 := httptest.NewRecorder()
		second, rotated, err := mgr.Check(ctx, w2, newRequest(w.Result().Cookies()), true)
		require.NoError(t, err)

		assert.True(t, rotated)
		assert.NotEqual(t, first.ID, second.ID)
		assert.NotEqual(t, first.Canary.Visit, second.Canary.Visit)
		assert.Empty(t, second.Data)
		assert.Equal(t, 1, backend.Len())
	})

	t.Run("stale session keeps visit id but rotates session id", func(t *testing.T) {
		t.Parallel()

		cfg := session.DefaultConfig()
		cfg.TTL = time.Millisecond
		mgr, backend := newTestManager(t, cfg)

		w := httptest.NewRecorder()
		first, _, err := mgr.Check(ctx, w, newRequest(nil), false)
		require.NoError(t, err)

		first.Set("theme", "dark")
		require.NoError(t, mgr.Save(ctx, newRequest(nil), first))

		time.Sleep(5 * time.Millisecond)

		w2 := httptest.NewRecorder()
		second, rotated, err := mgr.Check(ctx, w2, newRequest(w.Result().Cookies()), false)
		require.NoError(t, err)

		assert.True(t, rotated)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.Canary.Visit, second.Canary.Visit)
		assert.False(t, second.Canary.Expired())
		assert.Equal(t, 1, backend.Len())

		theme, ok := second.GetString("theme")
		assert.True(t, ok)
		assert.Equal(t, "dark", theme)

		cookies := w2.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, second.ID, cookies[0].Value)
	})

	t.Run("changed browser signature starts a fresh session", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newTestManager(t, session.DefaultConfig())

		w := httptest.NewRecorder()
		first, _, err := mgr.Check(ctx, w, newRequest(nil), false)
		require.NoError(t, err)

		other := newRequest(w.Result().Cookies())
		other.Header.Set("User-Agent", "another-agent/2.0")

		second, rotated, err := mgr.Check(ctx, httptest.NewRecorder(), other, false)
		require.NoError(t, err)

		assert.True(t, rotated)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("unknown cookie value starts a fresh session", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newTestManager(t, session.DefaultConfig())

		r := newRequest([]*http.Cookie{{Name: "is", Value: "stale-or-forged"}})
		sess, rotated, err := mgr.Check(ctx, httptest.NewRecorder(), r, false)
		require.NoError(t, err)

		assert.True(t, rotated)
		assert.NotEqual(t, "stale-or-forged", sess.ID)
	})
}

func TestManagerMatchesIP(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr, _ := newTestManager(t, session.DefaultConfig())

	w := httptest.NewRecorder()
	sess, _, err := mgr.Check(ctx, w, newRequest(nil), false)
	require.NoError(t, err)

	assert.True(t, mgr.MatchesIP(sess, newRequest(nil)))

	moved := newRequest(nil)
	moved.RemoteAddr = "198.51.100.9:12345"
	assert.False(t, mgr.MatchesIP(sess, moved))

	assert.False(t, mgr.MatchesIP(nil, newRequest(nil)))
}

func TestManagerDestroy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mgr, backend := newTestManager(t, session.DefaultConfig())

	w := httptest.NewRecorder()
	_, _, err := mgr.Check(ctx, w, newRequest(nil), false)
	require.NoError(t, err)
	require.Equal(t, 1, backend.Len())

	w2 := httptest.NewRecorder()
	require.NoError(t, mgr.Destroy(ctx, w2, newRequest(w.Result().Cookies())))

	assert.Equal(t, 0, backend.Len())

	cookies := w2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
