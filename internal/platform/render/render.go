// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

/*
Package render centralizes the presentation layer for server-rendered pages.

It ensures that every page (success or error) across the entire application
carries the same ambient view data: page title, authentication state, CSRF
token, and one-shot flash messages.

Architecture:

  - Templates: html/template sets parsed once at startup, one set per page,
    each sharing the base layout.
  - Decoration: The composition root installs a decorator that fills the
    ambient fields from the request context; this package never imports
    domain packages, so the dependency arrow always points downward.
  - Errors: [Renderer.Error] maps [apperr.AppError] values to the 404/500
    pages and logs 5xx causes. It must never fail itself: a broken template
    degrades to a plain-text response.
*/
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/ctxutil"
)

// # View Data

// Flash is a one-shot notification surfaced on the next page render.
type Flash struct {
	// Kind is the message category (e.g. "error", "success").
	Kind string
	// Message is the display text.
	Message string
}

// Data holds page-specific template values.
type Data map[string]any

// Page is the complete view model handed to every template.
type Page struct {
	// PageTitle is rendered into <title> and the page header.
	PageTitle string
	// Path is the request path, used for nav highlighting.
	Path string
	// IsAuthenticated reports whether the session is logged in.
	IsAuthenticated bool
	// CSRFToken is embedded as a hidden field in every form.
	CSRFToken string
	// Flashes are the one-shot messages drained from the session.
	Flashes []Flash
	// Data carries the page-specific values.
	Data Data
}

// Decorator fills the ambient fields of a [Page] from the request.
//
// # Defensive Contract
//
// Implementations must tolerate a missing session or identity (both occur on
// the error path) and leave the zero values in place.
type Decorator func(r *http.Request, p *Page)

// # Renderer

// Renderer renders named page templates against the shared base layout.
type Renderer struct {
	pages    map[string]*template.Template
	logger   *slog.Logger
	decorate Decorator
}

// templateFuncs are helpers available inside every template.
var templateFuncs = template.FuncMap{
	// price formats integer cents as a decimal amount.
	"price": func(cents int64) string {
		return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
	},
}

// New parses all page templates from fsys.
//
// # Layout Convention
//
// fsys must contain templates/layout.html plus one templates/<name>.html per
// page. Each page is parsed together with the layout so that pages share the
// base chrome without colliding template names.
func New(fsys fs.FS, logger *slog.Logger) (*Renderer, error) {
	entries, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("render: failed to glob templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := strings.TrimSuffix(path.Base(entry), ".html")
		if name == "layout" {
			continue
		}

		tmpl, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(fsys, "templates/layout.html", entry)
		if err != nil {
			return nil, fmt.Errorf("render: failed to parse template %q: %w", name, err)
		}
		pages[name] = tmpl
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("render: no page templates found")
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// SetDecorator installs the ambient-data decorator.
// Called once by the composition root before the server starts.
func (renderer *Renderer) SetDecorator(decorate Decorator) {
	renderer.decorate = decorate
}

// # Page Rendering

// Page renders the named template with the given status code and data.
func (renderer *Renderer) Page(writer http.ResponseWriter, request *http.Request, status int, name, title string, data Data) {
	page := &Page{
		PageTitle: title,
		Path:      request.URL.Path,
		Data:      data,
	}
	if renderer.decorate != nil {
		renderer.decorate(request, page)
	}

	tmpl, ok := renderer.pages[name]
	if !ok {
		renderer.fail(writer, request, fmt.Errorf("render: unknown template %q", name))
		return
	}

	// Render into a buffer first so a mid-template failure never produces a
	// half-written page with a 200 status already on the wire.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		renderer.fail(writer, request, fmt.Errorf("render: failed to execute template %q: %w", name, err))
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buf.WriteTo(writer)
}

// # Error Rendering

// Error converts any Go error into the appropriate rendered error page.
//
// Not-found-class errors get the dedicated 404 page; everything else becomes
// the generic failure page. 5xx causes are logged with the request ID; the
// client only ever sees the client-safe message.
func (renderer *Renderer) Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "page_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	name, title := "500", "An Error Occurred"
	if appError.HTTPStatus == http.StatusNotFound {
		name, title = "404", "Page Not Found"
	}

	renderer.Page(writer, request, appError.HTTPStatus, name, title, Data{
		"Message": appError.Message,
	})
}

// NotFound renders the dedicated 404 page for unmatched routes.
func (renderer *Renderer) NotFound(writer http.ResponseWriter, request *http.Request) {
	renderer.Error(writer, request, apperr.NotFound("Page"))
}

// fail is the last-resort path when template rendering itself breaks.
// It intentionally avoids recursing back into the template machinery.
func (renderer *Renderer) fail(writer http.ResponseWriter, request *http.Request, err error) {
	renderer.logger.ErrorContext(request.Context(), "render_failed",
		slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		slog.Any("error", err),
	)
	http.Error(writer, "An unexpected error occurred", http.StatusInternalServerError)
}
