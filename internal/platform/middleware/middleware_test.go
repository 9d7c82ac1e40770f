// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngocmai/camellia/internal/platform/ctxutil"
	"github.com/ngocmai/camellia/internal/platform/middleware"
	"github.com/ngocmai/camellia/internal/platform/sec"
)

/*
TestStructuredLogger verifies the finished-request log line carries the
response metrics and, for authenticated requests, the user ID resolved by a
later stage of the chain.
*/
func TestStructuredLogger(t *testing.T) {
	newLogger := func() (*slog.Logger, *bytes.Buffer) {
		buffer := &bytes.Buffer{}
		return slog.New(slog.NewJSONHandler(buffer, nil)), buffer
	}

	// attachIdentity imitates the current-user stage: it derives a child
	// context and hands only that to the final handler.
	attachIdentity := func(identity *sec.Identity) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				ctx := ctxutil.WithIdentity(request.Context(), identity)
				next.ServeHTTP(writer, request.WithContext(ctx))
			})
		}
	}

	t.Run("records_response_metrics", func(t *testing.T) {
		logger, buffer := newLogger()
		handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products", nil))

		logged := buffer.String()
		assert.Contains(t, logged, `"msg":"http_request_finished"`)
		assert.Contains(t, logged, `"status":404`)
		assert.Contains(t, logged, `"path":"/products"`)
		assert.Contains(t, logged, `"latency_ms"`)
		assert.Contains(t, logged, `"level":"WARN"`)
	})

	t.Run("authenticated_request_carries_user_id", func(t *testing.T) {
		logger, buffer := newLogger()
		identity := &sec.Identity{UserID: "user-7", Email: "mai@camellia.dev"}
		handler := middleware.StructuredLogger(logger)(
			attachIdentity(identity)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cart", nil))

		assert.Contains(t, buffer.String(), `"user_id":"user-7"`)
	})

	t.Run("anonymous_request_omits_user_id", func(t *testing.T) {
		logger, buffer := newLogger()
		handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotContains(t, buffer.String(), "user_id")
	})
}
