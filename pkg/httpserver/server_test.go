package httpserver_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forumkit/pkg/httpserver"
	"github.com/dmitrymomot/forumkit/pkg/logger"
)

func freeAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServerRun(t *testing.T) {
	t.Parallel()

	t.Run("serves until context cancel", func(t *testing.T) {
		t.Parallel()

		cfg := httpserver.DefaultConfig()
		cfg.Addr = freeAddr(t)
		srv := httpserver.New(cfg, logger.New(logger.WithTextFormatter()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "ok")
			}))
		}()

		var resp *http.Response
		require.Eventually(t, func() bool {
			var err error
			resp, err = http.Get("http://" + cfg.Addr + "/")
			return err == nil
		}, 2*time.Second, 20*time.Millisecond)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("listen failure returns start error", func(t *testing.T) {
		t.Parallel()

		cfg := httpserver.DefaultConfig()
		cfg.Addr = "256.256.256.256:0"
		srv := httpserver.New(cfg, nil)

		err := srv.Run(context.Background(), http.NotFoundHandler())
		assert.ErrorIs(t, err, httpserver.ErrStart)
	})
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	log := logger.New(logger.WithTextFormatter())

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log)(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALIVE", w.Body.String())
	})

	t.Run("readiness passes", func(t *testing.T) {
		t.Parallel()

		ok := func(ctx context.Context) error { return nil }

		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log, ok, ok)(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "READY", w.Body.String())
	})

	t.Run("readiness fails", func(t *testing.T) {
		t.Parallel()

		ok := func(ctx context.Context) error { return nil }
		bad := func(ctx context.Context) error { return errors.New("db down") }

		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log, ok, bad)(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "NOT_READY", w.Body.String())
	})
}
