// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package web_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngocmai/camellia/internal/catalog"
	"github.com/ngocmai/camellia/internal/orders"
	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/config"
	"github.com/ngocmai/camellia/internal/platform/constants"
	"github.com/ngocmai/camellia/internal/platform/render"
	"github.com/ngocmai/camellia/internal/session"
	"github.com/ngocmai/camellia/internal/users"
	"github.com/ngocmai/camellia/internal/web"
	"github.com/ngocmai/camellia/pkg/pagination"
)

// # Test Doubles

// memorySessionStore is an in-memory [session.Store] for full-chain tests.
type memorySessionStore struct {
	mu       sync.Mutex
	records  map[string]*session.Session
	failFind bool
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{records: make(map[string]*session.Session)}
}

func (store *memorySessionStore) Find(_ context.Context, id string) (*session.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.failFind {
		return nil, assert.AnError
	}

	found, ok := store.records[id]
	if !ok || found.IsExpired(time.Now()) {
		return nil, apperr.NotFound("Session")
	}

	copied := *found
	return &copied, nil
}

func (store *memorySessionStore) Save(_ context.Context, current *session.Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	copied := *current
	store.records[current.ID] = &copied
	current.MarkClean()
	return nil
}

func (store *memorySessionStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.records, id)
	return nil
}

// stubUserRepository is an empty [users.Repository]; every lookup misses.
type stubUserRepository struct{}

func (stubUserRepository) FindByID(context.Context, string) (*users.User, error) {
	return nil, apperr.NotFound("User")
}

func (stubUserRepository) FindByEmail(context.Context, string) (*users.User, error) {
	return nil, apperr.NotFound("User")
}

func (stubUserRepository) Create(context.Context, *users.User) error { return nil }

func (stubUserRepository) UpdateCart(context.Context, string, []users.CartItem) error { return nil }

// stubProductRepository is an empty [catalog.Repository].
type stubProductRepository struct{}

func (stubProductRepository) FindByID(context.Context, string) (*catalog.Product, error) {
	return nil, apperr.NotFound("Product")
}

func (stubProductRepository) FindByIDs(context.Context, []string) ([]*catalog.Product, error) {
	return nil, nil
}

func (stubProductRepository) List(context.Context, pagination.Params) ([]*catalog.Product, int, error) {
	return nil, 0, nil
}

func (stubProductRepository) ListByUser(context.Context, string, pagination.Params) ([]*catalog.Product, int, error) {
	return nil, 0, nil
}

func (stubProductRepository) Create(context.Context, *catalog.Product) error { return nil }

func (stubProductRepository) Update(context.Context, *catalog.Product) error { return nil }

func (stubProductRepository) Delete(context.Context, string) error { return nil }

// stubOrderRepository is an empty [orders.Repository].
type stubOrderRepository struct{}

func (stubOrderRepository) Create(context.Context, *orders.Order) error { return nil }

func (stubOrderRepository) ListByUser(context.Context, string) ([]*orders.Order, error) {
	return nil, nil
}

// # Server Fixture

// testServer bundles a fully composed server with the collaborators the
// assertions need to reach.
type testServer struct {
	server    *web.Server
	renderer  *render.Renderer
	store     *memorySessionStore
	uploadDir string
}

// newTestServer composes the real router, middleware chain, and handlers over
// in-memory backends.
func newTestServer(t *testing.T, environment string) *testServer {
	t.Helper()

	fsys := fstest.MapFS{
		"templates/layout.html": {Data: []byte(
			`<title>{{.PageTitle}}</title>{{if .IsAuthenticated}}[signed-in]{{end}}` +
				`[csrf:{{.CSRFToken}}]{{range .Flashes}}[flash:{{.Message}}]{{end}}` +
				`{{template "content" .}}`)},
		"templates/index.html": {Data: []byte(`{{define "content"}}latest arrivals{{end}}`)},
		"templates/404.html":   {Data: []byte(`{{define "content"}}missing: {{.Data.Message}}{{end}}`)},
		"templates/500.html":   {Data: []byte(`{{define "content"}}error: {{.Data.Message}}{{end}}`)},
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	renderer, err := render.New(fsys, logger)
	require.NoError(t, err)

	store := newMemorySessionStore()
	sessionConfig := session.Config{
		Store:     store,
		Renderer:  renderer,
		Secret:    "test-secret",
		CookieTTL: time.Hour,
	}

	userService := users.NewService(stubUserRepository{})
	catalogService := catalog.NewService(stubProductRepository{})
	orderService := orders.NewService(stubOrderRepository{}, stubUserRepository{}, stubProductRepository{})
	liveness, readiness := web.NewHealthHandlers(web.HealthDependencies{
		CheckDatabase: func() error { return nil },
	}, logger)

	uploadDir := t.TempDir()
	cfg := &config.Config{
		ServerPort:  "8080",
		Environment: environment,
		UploadDir:   uploadDir,
	}

	server := web.NewServer(context.Background(), cfg, logger, web.Dependencies{
		SessionConfig:  sessionConfig,
		UserRepository: stubUserRepository{},
		Renderer:       renderer,
	}, web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      users.NewHandler(userService, sessionConfig, renderer),
		Shop:      catalog.NewShopHandler(catalogService, renderer),
		Admin:     catalog.NewAdminHandler(catalogService, renderer),
		Orders:    orders.NewHandler(orderService, renderer),
	})

	return &testServer{server: server, renderer: renderer, store: store, uploadDir: uploadDir}
}

// get runs one request through the composed router.
func (ts *testServer) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	ts.server.Router().ServeHTTP(recorder, request)
	return recorder
}

// # Composed Chain Tests

/*
TestServer_HomePage verifies an anonymous visitor travels the whole chain:
a fresh session is issued and the index page renders with a CSRF token.
*/
func TestServer_HomePage(t *testing.T) {
	ts := newTestServer(t, "production")

	recorder := ts.get("/")

	// 1. The landing page renders.
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "latest arrivals")
	assert.NotContains(t, recorder.Body.String(), "[signed-in]")

	// 2. The session middleware issued a signed cookie.
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)

	// 3. The layout received a non-empty CSRF token.
	assert.NotContains(t, recorder.Body.String(), "[csrf:]")
}

/*
TestServer_UnknownPathRendersNotFound verifies unmatched routes reach the
rendered 404 page instead of the stdlib plain-text fallback.
*/
func TestServer_UnknownPathRendersNotFound(t *testing.T) {
	ts := newTestServer(t, "production")

	recorder := ts.get("/no-such-page")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "missing: Page not found")
}

/*
TestServer_DebugSessionOnlyInDevelopment verifies the session inspector is
registered in development and absent everywhere else.
*/
func TestServer_DebugSessionOnlyInDevelopment(t *testing.T) {
	t.Run("development_exposes_it", func(t *testing.T) {
		ts := newTestServer(t, "development")

		recorder := ts.get("/debug-session")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"session"`)
	})

	t.Run("production_does_not", func(t *testing.T) {
		ts := newTestServer(t, "production")

		recorder := ts.get("/debug-session")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "missing: Page not found")
	})
}

/*
TestServer_ProtectedPagesRedirectAnonymous verifies the authentication gate
wraps the cart, order, and admin groups in the composed router.
*/
func TestServer_ProtectedPagesRedirectAnonymous(t *testing.T) {
	ts := newTestServer(t, "production")

	for _, path := range []string{"/cart", "/orders", "/admin/products"} {
		recorder := ts.get(path)

		assert.Equal(t, http.StatusFound, recorder.Code, path)
		assert.Equal(t, "/login", recorder.Header().Get("Location"), path)
	}
}

/*
TestServer_UploadedImages verifies uploaded files are served while directory
requests never produce a listing.
*/
func TestServer_UploadedImages(t *testing.T) {
	ts := newTestServer(t, "production")

	fileName := "tea.png"
	require.NoError(t, os.WriteFile(filepath.Join(ts.uploadDir, fileName), []byte("png-bytes"), 0o600))

	// 1. A concrete file is served as-is.
	served := ts.get("/images/" + fileName)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, "png-bytes", served.Body.String())

	// 2. The directory itself yields the 404 page, never an index of uploads.
	listing := ts.get("/images/")
	assert.Equal(t, http.StatusNotFound, listing.Code)
	assert.NotContains(t, listing.Body.String(), fileName)
	assert.Contains(t, listing.Body.String(), "missing: Page not found")

	// 3. Subdirectories are refused the same way.
	require.NoError(t, os.Mkdir(filepath.Join(ts.uploadDir, "archive"), 0o700))
	nested := ts.get("/images/archive/")
	assert.Equal(t, http.StatusNotFound, nested.Code)
	assert.Contains(t, nested.Body.String(), "missing: Page not found")
}

/*
TestServer_SessionOutageRendersErrorPage verifies an unreachable session
store produces the rendered 500 page through the installed page decorator,
which must tolerate the absent session.
*/
func TestServer_SessionOutageRendersErrorPage(t *testing.T) {
	ts := newTestServer(t, "production")

	// 1. Establish a valid cookie while the store is healthy.
	first := ts.get("/")
	require.Len(t, first.Result().Cookies(), 1)
	cookie := first.Result().Cookies()[0]

	// 2. The store goes down; the same cookie now hits the error path.
	ts.store.failFind = true
	recorder := ts.get("/", cookie)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "error:")

	// 3. The decorator rendered the anonymous zero values, not a panic.
	assert.NotContains(t, recorder.Body.String(), "[signed-in]")
	assert.Contains(t, recorder.Body.String(), "[csrf:]")
}

/*
TestServer_DecoratorToleratesBareRequest verifies the page decorator installed
by NewServer renders a request that never passed session resolution.
*/
func TestServer_DecoratorToleratesBareRequest(t *testing.T) {
	ts := newTestServer(t, "production")

	recorder := httptest.NewRecorder()
	ts.renderer.Page(recorder, httptest.NewRequest(http.MethodGet, "/", nil),
		http.StatusOK, "index", "Shop", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "[csrf:]")
	assert.NotContains(t, recorder.Body.String(), "[signed-in]")
}
