package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forumkit/pkg/cookie"
)

func TestSetGet(t *testing.T) {
	t.Parallel()
	mgr := cookie.New()

	w := httptest.NewRecorder()
	mgr.Set(w, "user", "lookup$token", cookie.WithMaxAge(3600))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "user", cookies[0].Name)
	assert.Equal(t, "lookup$token", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(cookies[0])

	got, err := mgr.Get(r, "user")
	require.NoError(t, err)
	assert.Equal(t, "lookup$token", got)
}

func TestGetMissing(t *testing.T) {
	t.Parallel()
	mgr := cookie.New()

	r := httptest.NewRequest("GET", "/", nil)
	_, err := mgr.Get(r, "absent")
	require.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	mgr := cookie.New(cookie.WithPath("/forum"))

	w := httptest.NewRecorder()
	mgr.Delete(w, "user")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Equal(t, "/forum", cookies[0].Path)
	assert.True(t, cookies[0].Expires.Before(time.Now()))
}

func TestDefaultsAndOverrides(t *testing.T) {
	t.Parallel()
	mgr := cookie.New(cookie.WithSecure(true), cookie.WithDomain("forum.example.com"))

	w := httptest.NewRecorder()
	mgr.Set(w, "is", "abc", cookie.WithSameSite(http.SameSiteStrictMode))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, "forum.example.com", cookies[0].Domain)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	mgr := cookie.NewFromConfig(cookie.Config{
		Path:     "/board",
		Secure:   true,
		HttpOnly: true,
		SameSite: int(http.SameSiteStrictMode),
	})

	w := httptest.NewRecorder()
	mgr.Set(w, "is", "v")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "/board", cookies[0].Path)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}
