package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/letterdrop/modules/admin"
	"github.com/dmitrymomot/letterdrop/modules/newsletter"
	"github.com/dmitrymomot/letterdrop/modules/subscriptions"
	"github.com/dmitrymomot/letterdrop/pkg/auth"
	"github.com/dmitrymomot/letterdrop/pkg/config"
	"github.com/dmitrymomot/letterdrop/pkg/cookie"
	"github.com/dmitrymomot/letterdrop/pkg/email"
	"github.com/dmitrymomot/letterdrop/pkg/httperr"
	"github.com/dmitrymomot/letterdrop/pkg/httpserver"
	"github.com/dmitrymomot/letterdrop/pkg/logger"
	"github.com/dmitrymomot/letterdrop/pkg/pg"
	"github.com/dmitrymomot/letterdrop/pkg/redis"
	"github.com/dmitrymomot/letterdrop/pkg/session"
	"github.com/dmitrymomot/letterdrop/pkg/txn"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
}

const serviceName = "letterdrop"

func main() {
	var (
		appCfg    appConfig
		httpCfg   httpserver.Config
		pgCfg     pg.Config
		redisCfg  redis.Config
		cookieCfg cookie.Config
		sessCfg   session.Config
		emailCfg  email.Config
		subsCfg   subscriptions.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&cookieCfg)
	config.MustLoad(&sessCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&subsCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, serviceName))
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Transactions begin lazily, so a connection is only dialed when a
	// request first touches the database.
	pgCfg.LazyConnect = true
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to create postgres pool", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.ErrorContext(ctx, "failed to apply migrations", logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect to redis", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to init cookie manager", logger.Error(err))
		os.Exit(1)
	}

	sessions := session.New(
		session.NewRedisStore(redisClient),
		cookies,
		session.WithConfig(sessCfg),
		session.WithLogger(log),
	)

	verifier := auth.NewVerifier()
	defer verifier.Close()
	validator := auth.NewValidator(verifier)

	mailer, err := email.NewFromConfig(emailCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to init email sender", logger.Error(err))
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))

	// Request pipeline, outermost first: error classification and response
	// buffering, then session load/flush, then transaction begin/resolve.
	// Unwinding order at request end is resolve, flush, release response.
	r.Group(func(r chi.Router) {
		r.Use(httperr.Middleware(log))
		r.Use(sessions.Middleware)
		r.Use(txn.Middleware(pool, log))

		r.Get("/", home)
		r.Mount("/subscriptions", subscriptions.NewService(subsCfg, mailer, log).Handle())
		r.Mount("/newsletters", newsletter.NewService(validator, mailer, log).Handle())
		admin.NewService(validator, cookies, log).Register(r)
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "http server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(homePage))
}

const homePage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta http-equiv="content-type" content="text/html; charset=utf-8">
    <title>Letterdrop</title>
</head>
<body>
    <p>Welcome to our newsletter!</p>
</body>
</html>
`
