// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package web_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngocmai/camellia/internal/web"
)

func newHealthHandlers(t *testing.T, deps web.HealthDependencies) (liveness, readiness http.HandlerFunc) {
	t.Helper()
	return web.NewHealthHandlers(deps, slog.New(slog.NewJSONHandler(os.Stderr, nil)))
}

/*
TestLiveness verifies the liveness probe answers without touching any backend.
*/
func TestLiveness(t *testing.T) {
	liveness, _ := newHealthHandlers(t, web.HealthDependencies{
		CheckDatabase: func() error { return errors.New("down") },
	})

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	// Liveness only says the process is up, even with a dead database.
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

/*
TestReadiness verifies the readiness probe aggregates dependency checks.
*/
func TestReadiness(t *testing.T) {
	t.Run("all_healthy", func(t *testing.T) {
		_, readiness := newHealthHandlers(t, web.HealthDependencies{
			CheckDatabase:     func() error { return nil },
			CheckSessionStore: func() error { return nil },
		})

		recorder := httptest.NewRecorder()
		readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"status":"ready"`)
		assert.Contains(t, recorder.Body.String(), `"mongodb"`)
		assert.Contains(t, recorder.Body.String(), `"redis"`)
	})

	t.Run("database_down", func(t *testing.T) {
		_, readiness := newHealthHandlers(t, web.HealthDependencies{
			CheckDatabase: func() error { return errors.New("connection refused") },
		})

		recorder := httptest.NewRecorder()
		readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"status":"degraded"`)
		assert.Contains(t, recorder.Body.String(), "connection refused")
	})

	t.Run("mongo_backed_sessions_skip_redis", func(t *testing.T) {
		_, readiness := newHealthHandlers(t, web.HealthDependencies{
			CheckDatabase: func() error { return nil },
		})

		recorder := httptest.NewRecorder()
		readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), `"redis"`)
	})
}
