// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/render"
	"github.com/ngocmai/camellia/internal/platform/validate"
	"github.com/ngocmai/camellia/internal/session"
)

// # Definitions & Constructors

// Handler implements the authentication HTML endpoints.
//
// # Scope
//
// This handler manages the account lifecycle entry points visible to the
// browser: login, signup, and logout. Unlike an API handler it answers with
// redirects and flash messages, never JSON.
type Handler struct {
	userService *Service
	sessions    session.Config
	renderer    *render.Renderer
}

// NewHandler constructs a new [Handler] with its dependencies.
//
// The full session [session.Config] (not just the store) is required because
// login rotates the session ID, which means issuing a freshly signed cookie.
func NewHandler(service *Service, sessions session.Config, renderer *render.Renderer) *Handler {
	return &Handler{userService: service, sessions: sessions, renderer: renderer}
}

// Register attaches the authentication routes to the root router.
//
// These pages live at the top level (/login, not /auth/login), so the handler
// registers onto the shared router instead of mounting a subrouter.
//
// # Endpoints
//   - GET  /login  : Renders the login form.
//   - POST /login  : Verifies credentials and binds the session.
//   - GET  /signup : Renders the registration form.
//   - POST /signup : Creates a new account.
//   - POST /logout : Destroys the session.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/login", handler.loginForm)
	router.Post("/login", handler.login)
	router.Get("/signup", handler.signupForm)
	router.Post("/signup", handler.signup)
	router.Post("/logout", handler.logout)
}

// # Login

// loginForm renders the login page. Already-authenticated visitors are sent home.
func (handler *Handler) loginForm(writer http.ResponseWriter, request *http.Request) {
	if current := session.FromContext(request.Context()); current != nil && current.IsLoggedIn() {
		http.Redirect(writer, request, "/", http.StatusFound)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "login", "Login", nil)
}

/*
login verifies submitted credentials and binds the session to the account.

POST /login

Description: Validates the form, delegates the credential check to the
service, and on success marks the session as logged in.

Request:
  - Form: email, password

Response:
  - 302 → /       : Successful login
  - 302 → /login  : Invalid input or credentials, with an error flash
  - 500           : Infrastructure failures
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	current := session.FromContext(request.Context())
	email := request.FormValue("email")
	password := request.FormValue("password")

	// 1. Validate input shape before touching the database.
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, password)

	if err := validator.Err(); err != nil {
		handler.flashAndRedirect(writer, request, current, err, "/login")
		return
	}

	// 2. Verify credentials.
	user, err := handler.userService.Authenticate(request.Context(), email, password)
	if err != nil {
		if apperr.IsAppError(err) {
			handler.flashAndRedirect(writer, request, current, err, "/login")
			return
		}
		handler.renderer.Error(writer, request, err)
		return
	}

	// 3. Rotate the session ID so a pre-login ID planted on the browser never
	// survives into the authenticated session.
	if err := session.Rotate(writer, request, handler.sessions); err != nil {
		handler.renderer.Error(writer, request, apperr.Internal(err))
		return
	}

	// 4. Bind the session; the middleware persists it after the response.
	current.Login(user.ID)
	http.Redirect(writer, request, "/", http.StatusFound)
}

// # Signup

// signupForm renders the registration page.
func (handler *Handler) signupForm(writer http.ResponseWriter, request *http.Request) {
	if current := session.FromContext(request.Context()); current != nil && current.IsLoggedIn() {
		http.Redirect(writer, request, "/", http.StatusFound)
		return
	}

	handler.renderer.Page(writer, request, http.StatusOK, "signup", "Signup", nil)
}

/*
signup creates a new account from the registration form.

POST /signup

Description: Validates the form (including password confirmation), registers
the account, and redirects to the login page on success.

Request:
  - Form: email, name, password, confirm_password

Response:
  - 302 → /login  : Account created, with a success flash
  - 302 → /signup : Invalid input or duplicate email, with an error flash
  - 500           : Infrastructure failures
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	current := session.FromContext(request.Context())
	email := request.FormValue("email")
	name := request.FormValue("name")
	password := request.FormValue("password")
	confirm := request.FormValue("confirm_password")

	// 1. Validate input shape.
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldName, name).
		Required(FieldPassword, password).
		MinLen(FieldPassword, password, 8).
		Match(FieldConfirmPassword, confirm, password)

	if err := validator.Err(); err != nil {
		handler.flashAndRedirect(writer, request, current, err, "/signup")
		return
	}

	// 2. Register; a duplicate email surfaces as a client-safe Conflict.
	_, err := handler.userService.Register(request.Context(), RegisterInput{
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		if apperr.IsAppError(err) {
			handler.flashAndRedirect(writer, request, current, err, "/signup")
			return
		}
		handler.renderer.Error(writer, request, err)
		return
	}

	if current != nil {
		current.AddFlash(session.FlashSuccess, "Account created. Please log in.")
	}
	http.Redirect(writer, request, "/login", http.StatusFound)
}

// # Logout

/*
logout destroys the session record and expires the cookie.

POST /logout

Response:
  - 302 → / : Always, logout is idempotent
  - 500     : Store failures while deleting the record
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if err := session.Destroy(writer, request, handler.sessions.Store); err != nil {
		handler.renderer.Error(writer, request, apperr.Internal(err))
		return
	}

	http.Redirect(writer, request, "/", http.StatusFound)
}

// flashAndRedirect queues the error message as a flash and bounces back to target.
func (handler *Handler) flashAndRedirect(writer http.ResponseWriter, request *http.Request, current *session.Session, err error, target string) {
	if current != nil {
		message := "Invalid input"
		if appError := apperr.As(err); appError != nil {
			message = appError.Message
		}
		current.AddFlash(session.FlashError, message)
	}

	http.Redirect(writer, request, target, http.StatusFound)
}
