package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/quintet-io/matchforge/pkg/domain/common"
)

// RequestIDHeader is the header clients may set to propagate a correlation
// id from an upstream gateway; a fresh one is generated when absent.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware stamps every request with a correlation id, carried
// both on the response header and on the request context so handlers can
// fold it into their log lines.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), common.RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
