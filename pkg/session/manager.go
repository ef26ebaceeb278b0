package session

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/letterdrop/pkg/cookie"
)

// Manager attaches sessions to requests and flushes them when requests
// complete. The session id travels in a signed cookie; the content lives in
// the Store.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	config  Config
	log     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithConfig sets custom configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithTTL sets the lifetime of stored session records.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.config.TTL = ttl
	}
}

// WithLogger sets the logger used for flush failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// New creates a session manager. The cookie manager is required: an unsigned
// session id cookie would let clients forge sessions.
func New(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	if store == nil {
		panic("session: store is required")
	}
	if cookies == nil {
		panic("session: cookie manager is required")
	}

	m := &Manager{
		store:   store,
		cookies: cookies,
		config:  DefaultConfig(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.log == nil {
		m.log = slog.Default()
	}

	return m
}

// Request builds the request's session from its signed cookie. No backend
// I/O happens here; the content loads on first access. A missing or
// tampered cookie simply means no session yet.
func (m *Manager) Request(r *http.Request) *Session {
	candidate, err := m.cookies.GetSigned(r, m.config.CookieName)
	if err != nil {
		candidate = ""
	}
	return newSession(m.store, candidate)
}

// Commit flushes the session if it was mutated and sets the signed cookie
// carrying its id. Called exactly once per request, after the handler and
// the transaction resolution, before the buffered response is released.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	// The flush must run even when the client has already disconnected.
	id, flushed, err := sess.flush(context.WithoutCancel(ctx), m.config.TTL)
	if err != nil {
		return err
	}
	if !flushed {
		return nil
	}

	return m.cookies.SetSigned(w, m.config.CookieName, id,
		cookie.WithMaxAge(int(m.config.TTL.Seconds())),
		cookie.WithHTTPOnly(true),
	)
}
