package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/forumkit/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness probes. Without
// dependency checks it answers 200 "ALIVE". With checks supplied, all
// must pass for 200 "READY"; any failure yields 500 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}
}
