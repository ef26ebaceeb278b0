package newsletter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/letterdrop/pkg/auth"
	"github.com/dmitrymomot/letterdrop/pkg/email"
	"github.com/dmitrymomot/letterdrop/pkg/httperr"
	"github.com/dmitrymomot/letterdrop/pkg/logger"
	"github.com/dmitrymomot/letterdrop/pkg/txn"
)

// authRealm is the Basic auth realm for the publishing endpoint.
const authRealm = "publish"

// Newsletter is the publish request payload.
type Newsletter struct {
	Title   string  `json:"title"`
	Content Content `json:"content"`
}

// Content carries both renderings of the newsletter body.
type Content struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// Service implements the authenticated newsletter-publishing endpoint.
type Service struct {
	validator *auth.Validator
	mailer    email.EmailSender
	log       *slog.Logger
}

// NewService wires the publishing service.
func NewService(validator *auth.Validator, mailer email.EmailSender, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{validator: validator, mailer: mailer, log: log}
}

// Handle returns the module router, meant to be mounted at /newsletters.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.publish)
	return r
}

func (s *Service) publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	creds, ok := basicCredentials(r)
	if !ok {
		if r.Header.Get("Authorization") == "" {
			httperr.Attach(ctx, httperr.Unauthorized(authRealm))
		} else {
			httperr.Attach(ctx, httperr.Validation("invalid authorization header"))
		}
		return
	}

	var newsletter Newsletter
	if err := json.NewDecoder(r.Body).Decode(&newsletter); err != nil {
		httperr.Attach(ctx, httperr.Validationf("invalid newsletter payload: %v", err))
		return
	}

	tx, err := txn.Tx(ctx)
	if err != nil {
		httperr.Attach(ctx, httperr.Internal(err))
		return
	}

	userID, err := s.validator.Validate(ctx, tx, creds)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			httperr.Attach(ctx, httperr.Unauthorized(authRealm))
		} else {
			httperr.Attach(ctx, httperr.Internalf(err, "failed to validate credentials"))
		}
		return
	}

	subscribers, err := confirmedSubscribers(ctx, tx)
	if err != nil {
		httperr.Attach(ctx, httperr.Internalf(err, "failed to retrieve confirmed subscribers"))
		return
	}

	for _, subscriber := range subscribers {
		msg := email.SendEmailParams{
			SendTo:   subscriber.Email,
			Subject:  newsletter.Title,
			BodyHTML: newsletter.Content.HTML,
			BodyText: newsletter.Content.Text,
			Tag:      "newsletter-issue",
		}
		if err := msg.Validate(); err != nil {
			s.log.WarnContext(ctx, "skipping confirmed subscriber with invalid email",
				logger.SubscriberID(subscriber.ID),
				logger.Error(err),
				logger.Component("newsletter"),
			)
			continue
		}
		if err := s.mailer.SendEmail(ctx, msg); err != nil {
			httperr.Attach(ctx, httperr.Internalf(err, "failed to send newsletter email to %s", subscriber.ID))
			return
		}
	}

	s.log.InfoContext(ctx, "newsletter published",
		logger.UserID(userID),
		slog.Int("recipients", len(subscribers)),
		logger.Component("newsletter"),
	)

	w.WriteHeader(http.StatusOK)
}

// basicCredentials extracts HTTP Basic credentials; failure means the
// Authorization header was absent or not valid Basic.
func basicCredentials(r *http.Request) (auth.Credentials, bool) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return auth.Credentials{}, false
	}
	return auth.Credentials{Username: username, Password: password}, true
}
