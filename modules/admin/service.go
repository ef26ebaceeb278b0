package admin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/letterdrop/pkg/auth"
	"github.com/dmitrymomot/letterdrop/pkg/cookie"
	"github.com/dmitrymomot/letterdrop/pkg/httperr"
	"github.com/dmitrymomot/letterdrop/pkg/logger"
	"github.com/dmitrymomot/letterdrop/pkg/session"
	"github.com/dmitrymomot/letterdrop/pkg/txn"
)

// sessionRealm is the realm reported when a session-authenticated page is
// requested without a logged-in user.
const sessionRealm = "letterdrop"

const (
	flashCookie    = "_flash"
	sessionUserKey = "user_id"
)

// Service implements the login flow and the session-gated admin pages.
type Service struct {
	validator *auth.Validator
	cookies   *cookie.Manager
	log       *slog.Logger
}

// NewService wires the admin service.
func NewService(validator *auth.Validator, cookies *cookie.Manager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{validator: validator, cookies: cookies, log: log}
}

// Register attaches the module's routes. They live at the site root, so
// the module registers onto the parent router instead of mounting a
// sub-router.
func (s *Service) Register(r chi.Router) {
	r.Get("/login", s.loginForm)
	r.Post("/login", s.login)
	r.Get("/admin/dashboard", s.dashboard)
}

func (s *Service) loginForm(w http.ResponseWriter, r *http.Request) {
	errorHTML := ""
	if flash, err := s.cookies.GetSigned(r, flashCookie); err == nil && flash != "" {
		errorHTML = fmt.Sprintf("<p><i>%s</i></p>", flash)
		s.cookies.Delete(w, flashCookie)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, loginPage, errorHTML)
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		httperr.Attach(ctx, httperr.Validationf("invalid form data: %v", err))
		return
	}
	creds := auth.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	tx, err := txn.Tx(ctx)
	if err != nil {
		httperr.Attach(ctx, httperr.Internal(err))
		return
	}

	userID, err := s.validator.Validate(ctx, tx, creds)
	switch {
	case err == nil:
		// Rotating the session id on login closes the fixation window; the
		// user id goes into the fresh session.
		if err := session.Reset(ctx); err != nil {
			httperr.Attach(ctx, httperr.Internalf(err, "failed to reset session"))
			return
		}
		if err := session.Insert(ctx, sessionUserKey, userID); err != nil {
			httperr.Attach(ctx, httperr.Internalf(err, "failed to store user id in session"))
			return
		}
		s.log.InfoContext(ctx, "user logged in",
			logger.UserID(userID), logger.Component("admin"))
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)

	case errors.Is(err, auth.ErrUnauthorized):
		if err := s.cookies.SetSigned(w, flashCookie, "Authentication failed",
			cookie.WithHTTPOnly(true)); err != nil {
			httperr.Attach(ctx, httperr.Internalf(err, "failed to set flash cookie"))
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)

	default:
		httperr.Attach(ctx, httperr.Internalf(err, "failed to validate credentials"))
	}
}

func (s *Service) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok, err := session.Get[uuid.UUID](ctx, sessionUserKey)
	if err != nil {
		httperr.Attach(ctx, httperr.Internalf(err, "failed to read user id from session"))
		return
	}
	if !ok {
		httperr.Attach(ctx, httperr.Unauthorized(sessionRealm))
		return
	}

	tx, err := txn.Tx(ctx)
	if err != nil {
		httperr.Attach(ctx, httperr.Internal(err))
		return
	}

	username, err := usernameByID(ctx, tx, userID)
	if err != nil {
		httperr.Attach(ctx, httperr.Internalf(err, "failed to load username"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, dashboardPage, username)
}
