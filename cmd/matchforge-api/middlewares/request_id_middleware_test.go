package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quintet-io/matchforge/cmd/matchforge-api/middlewares"
	"github.com/quintet-io/matchforge/pkg/domain/common"
)

func TestRequestIDMiddleware_GeneratesIDWhenAbsent(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(common.RequestIDKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/queue", nil)
	w := httptest.NewRecorder()
	middlewares.RequestIDMiddleware(next).ServeHTTP(w, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(middlewares.RequestIDHeader))
}

func TestRequestIDMiddleware_PreservesIncomingID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(common.RequestIDKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/queue", nil)
	req.Header.Set(middlewares.RequestIDHeader, "fixed-id")
	w := httptest.NewRecorder()
	middlewares.RequestIDMiddleware(next).ServeHTTP(w, req)

	assert.Equal(t, "fixed-id", seen)
	assert.Equal(t, "fixed-id", w.Header().Get(middlewares.RequestIDHeader))
}
