package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/forumkit/pkg/session"
)

func TestSessionData(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		sess := &session.Session{ID: "test"}
		sess.Set("user_id", int64(42))
		sess.Set("username", "alice")

		val, ok := sess.Get("user_id")
		assert.True(t, ok)
		assert.Equal(t, int64(42), val)

		str, ok := sess.GetString("username")
		assert.True(t, ok)
		assert.Equal(t, "alice", str)
	})

	t.Run("get missing key", func(t *testing.T) {
		t.Parallel()

		sess := &session.Session{ID: "test"}

		_, ok := sess.Get("absent")
		assert.False(t, ok)
	})

	t.Run("get string with wrong type", func(t *testing.T) {
		t.Parallel()

		sess := &session.Session{ID: "test"}
		sess.Set("count", 7)

		_, ok := sess.GetString("count")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		sess := &session.Session{ID: "test"}
		sess.Set("key", "value")
		sess.Delete("key")

		_, ok := sess.Get("key")
		assert.False(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		t.Parallel()

		sess := &session.Session{ID: "test"}
		sess.Set("a", 1)
		sess.Set("b", 2)
		sess.Clear()

		_, ok := sess.Get("a")
		assert.False(t, ok)
		_, ok = sess.Get("b")
		assert.False(t, ok)
	})

	t.Run("nil session is safe", func(t *testing.T) {
		t.Parallel()

		var sess *session.Session

		_, ok := sess.Get("key")
		assert.False(t, ok)

		_, ok = sess.GetString("key")
		assert.False(t, ok)

		assert.NotPanics(t, func() {
			sess.Set("key", "value")
			sess.Delete("key")
			sess.Clear()
		})
	})
}

func TestCanaryExpired(t *testing.T) {
	t.Parallel()

	t.Run("future expiry is fresh", func(t *testing.T) {
		t.Parallel()

		c := session.Canary{ExpiresAt: time.Now().Add(time.Hour)}
		assert.False(t, c.Expired())
	})

	t.Run("past expiry is stale", func(t *testing.T) {
		t.Parallel()

		c := session.Canary{ExpiresAt: time.Now().Add(-time.Minute)}
		assert.True(t, c.Expired())
	})

	t.Run("zero value is stale", func(t *testing.T) {
		t.Parallel()

		var c session.Canary
		assert.True(t, c.Expired())
	})
}
