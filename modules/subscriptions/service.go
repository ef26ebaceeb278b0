package subscriptions

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/letterdrop/pkg/email"
	"github.com/dmitrymomot/letterdrop/pkg/httperr"
	"github.com/dmitrymomot/letterdrop/pkg/logger"
	"github.com/dmitrymomot/letterdrop/pkg/pg"
	"github.com/dmitrymomot/letterdrop/pkg/txn"
)

// Config holds signup configuration.
type Config struct {
	// BaseURL is the public address prefixed to confirmation links.
	BaseURL string `env:"APP_BASE_URL,required"`
}

// Service implements form-driven signup with double-opt-in confirmation.
type Service struct {
	cfg    Config
	mailer email.EmailSender
	log    *slog.Logger
}

// NewService wires the signup service.
func NewService(cfg Config, mailer email.EmailSender, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cfg: cfg, mailer: mailer, log: log}
}

// Handle returns the module router, meant to be mounted at /subscriptions.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.subscribe)
	r.Get("/confirm", s.confirm)
	return r
}

func (s *Service) subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		httperr.Attach(ctx, httperr.Validationf("invalid form data: %v", err))
		return
	}

	sub, err := ParseNewSubscriber(r.PostFormValue("name"), r.PostFormValue("email"))
	if err != nil {
		httperr.Attach(ctx, httperr.Validation(err.Error()))
		return
	}

	tx, err := txn.Tx(ctx)
	if err != nil {
		httperr.Attach(ctx, httperr.Internal(err))
		return
	}

	subscriberID, err := createSubscriber(ctx, tx, sub)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			httperr.Attach(ctx, httperr.Validation("email is already subscribed"))
			return
		}
		httperr.Attach(ctx, httperr.Internalf(err, "failed to store subscriber"))
		return
	}

	token := uuid.New()
	if err := storeToken(ctx, tx, token, subscriberID); err != nil {
		httperr.Attach(ctx, httperr.Internalf(err, "failed to store confirmation token"))
		return
	}

	if err := s.mailer.SendEmail(ctx, confirmationEmail(s.cfg.BaseURL, sub.Email, token)); err != nil {
		httperr.Attach(ctx, httperr.Internalf(err, "failed to send confirmation email"))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Service) confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := uuid.Parse(r.URL.Query().Get("token"))
	if err != nil {
		httperr.Attach(ctx, httperr.Validation("token must be a valid UUID"))
		return
	}

	tx, err := txn.Tx(ctx)
	if err != nil {
		httperr.Attach(ctx, httperr.Internal(err))
		return
	}

	subscriberID, found, err := subscriberIDByToken(ctx, tx, token)
	if err != nil {
		httperr.Attach(ctx, httperr.Internalf(err, "failed to look up confirmation token"))
		return
	}
	if !found {
		// Unknown tokens get a bare 401 with no challenge; this is not a
		// credentials endpoint.
		s.log.WarnContext(ctx, "unknown confirmation token",
			logger.Component("subscriptions"))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := confirmSubscriber(ctx, tx, subscriberID); err != nil {
		httperr.Attach(ctx, httperr.Internalf(err, "failed to confirm subscription"))
		return
	}

	w.WriteHeader(http.StatusOK)
}
