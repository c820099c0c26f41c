package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/logging"
)

// RequestIDHeader carries the request scope ID back to the client.
const RequestIDHeader = "X-Request-Id"

// RequestScope opens a container request scope for every request and ends
// it once the handler returns, even if it panics. The scope travels in the
// request context, along with a logger tagged with the scope ID.
//
//	r.Use(gohttp.RequestScope(c, log))
func RequestScope(c *container.Container, log *zap.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, scope := c.BeginRequestScope(r.Context())
			l := log.With(zap.String("request_id", scope.ID()))
			ctx = logging.WithContext(ctx, l)
			w.Header().Set(RequestIDHeader, scope.ID())

			defer func() {
				err := scope.End()
				if err == nil || (errors.Is(err, container.ErrScopeNotActive) && c.Closed()) {
					return
				}
				l.Warn("request scope teardown failed", zap.Error(err))
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Logger returns the request-tagged logger installed by RequestScope, or
// fallback outside of it.
func Logger(r *http.Request, fallback *zap.Logger) *zap.Logger {
	return logging.FromContext(r.Context(), fallback)
}
