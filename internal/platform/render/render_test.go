// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package render_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/render"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()

	fsys := fstest.MapFS{
		"templates/layout.html": {Data: []byte(`<title>{{.PageTitle}}</title>{{template "content" .}}`)},
		"templates/index.html":  {Data: []byte(`{{define "content"}}hello {{.Data.Name}} ({{price .Data.Cents}}){{end}}`)},
		"templates/404.html":    {Data: []byte(`{{define "content"}}missing: {{.Data.Message}}{{end}}`)},
		"templates/500.html":    {Data: []byte(`{{define "content"}}broken: {{.Data.Message}}{{end}}`)},
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	renderer, err := render.New(fsys, logger)
	require.NoError(t, err)
	return renderer
}

/*
TestRenderer_Page verifies pages render inside the shared layout with the
template helpers available.
*/
func TestRenderer_Page(t *testing.T) {
	renderer := newRenderer(t)

	recorder := httptest.NewRecorder()
	renderer.Page(recorder, httptest.NewRequest(http.MethodGet, "/", nil),
		http.StatusOK, "index", "Shop", render.Data{"Name": "Mai", "Cents": int64(1999)})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<title>Shop</title>")
	assert.Contains(t, recorder.Body.String(), "hello Mai ($19.99)")
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
}

/*
TestRenderer_Error verifies the status-to-page mapping: not-found errors get
the 404 page, everything else the generic failure page.
*/
func TestRenderer_Error(t *testing.T) {
	renderer := newRenderer(t)

	t.Run("not_found", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		renderer.Error(recorder, httptest.NewRequest(http.MethodGet, "/ghost", nil),
			apperr.NotFound("Product"))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "missing: Product not found")
	})

	t.Run("internal", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		renderer.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil),
			apperr.Internal(errors.New("connection refused")))

		// The cause is logged, never rendered.
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "broken: An unexpected error occurred")
		assert.NotContains(t, recorder.Body.String(), "connection refused")
	})

	t.Run("plain_error_becomes_internal", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		renderer.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil),
			errors.New("raw failure"))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "raw failure")
	})
}

/*
TestRenderer_Decorator verifies the composition root's hook sees every page.
*/
func TestRenderer_Decorator(t *testing.T) {
	renderer := newRenderer(t)
	renderer.SetDecorator(func(request *http.Request, page *render.Page) {
		page.PageTitle = "Decorated " + page.PageTitle
	})

	recorder := httptest.NewRecorder()
	renderer.Page(recorder, httptest.NewRequest(http.MethodGet, "/", nil),
		http.StatusOK, "index", "Shop", render.Data{"Name": "x", "Cents": int64(0)})

	assert.Contains(t, recorder.Body.String(), "<title>Decorated Shop</title>")
}
