package httpserver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/letterdrop/pkg/httpserver"
)

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	probe := func(h http.HandlerFunc) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		return w
	}

	t.Run("no dependencies means alive", func(t *testing.T) {
		t.Parallel()
		w := probe(httpserver.HealthCheckHandler(context.Background(), log))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALIVE", w.Body.String())
	})

	t.Run("all dependencies healthy means ready", func(t *testing.T) {
		t.Parallel()
		ok := func(context.Context) error { return nil }
		w := probe(httpserver.HealthCheckHandler(context.Background(), log, ok, ok))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "READY", w.Body.String())
	})

	t.Run("one failing dependency means not ready", func(t *testing.T) {
		t.Parallel()
		ok := func(context.Context) error { return nil }
		bad := func(context.Context) error { return errors.New("connection refused") }
		w := probe(httpserver.HealthCheckHandler(context.Background(), log, ok, bad))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "NOT_READY", w.Body.String())
	})
}
