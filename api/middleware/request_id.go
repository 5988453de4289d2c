package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/retroventures/sourcehub-backend/pkg/logger"
)

const (
	requestIDHeader = "X-Request-Id"

	// Ids longer than this are treated as garbage and replaced.
	maxRequestIDLength = 64
)

// RequestID gives every request a correlation id, honoring one supplied by
// the edge proxy when it looks sane, and echoes it back on the response.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := incomingRequestID(r)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func incomingRequestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(requestIDHeader))
	if len(id) > maxRequestIDLength {
		return ""
	}
	return id
}
