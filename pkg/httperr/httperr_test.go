package httperr_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/letterdrop/pkg/httperr"
)

func TestDescriptorConstructors(t *testing.T) {
	t.Parallel()

	t.Run("validation carries the message", func(t *testing.T) {
		t.Parallel()
		e := httperr.Validation("name must not be empty")
		assert.Equal(t, httperr.KindValidation, e.Kind())
		assert.Equal(t, "name must not be empty", e.Message())
	})

	t.Run("unauthorized carries only the realm", func(t *testing.T) {
		t.Parallel()
		e := httperr.Unauthorized("publish")
		assert.Equal(t, httperr.KindUnauthorized, e.Kind())
		assert.Equal(t, "publish", e.Realm())
		assert.NotContains(t, e.Error(), "password")
	})

	t.Run("internal retains the cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("connection refused")
		e := httperr.Internal(cause)
		assert.Equal(t, httperr.KindInternal, e.Kind())
		assert.ErrorIs(t, e, cause)
	})

	t.Run("internalf wraps the cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("boom")
		e := httperr.Internalf(cause, "failed to send email to %s", "subscriber-1")
		assert.ErrorIs(t, e, cause)
		assert.Contains(t, e.Error(), "failed to send email to subscriber-1")
	})
}

func TestFrom(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, httperr.From(nil))
	})

	t.Run("descriptor passes through even when wrapped", func(t *testing.T) {
		t.Parallel()
		orig := httperr.Validation("bad input")
		wrapped := fmt.Errorf("handler: %w", orig)
		assert.Same(t, orig, httperr.From(wrapped))
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		t.Parallel()
		e := httperr.From(errors.New("boom"))
		assert.Equal(t, httperr.KindInternal, e.Kind())
	})
}

func TestRecorderClassify(t *testing.T) {
	t.Parallel()

	t.Run("descriptor wins over status", func(t *testing.T) {
		t.Parallel()
		rec := httperr.NewRecorder()
		rec.Attach(httperr.Validation("nope"))

		res := rec.Classify(http.StatusOK)
		assert.Equal(t, httperr.KindValidation, res.Kind)
		assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
	})

	t.Run("5xx without descriptor synthesizes a cause", func(t *testing.T) {
		t.Parallel()
		rec := httperr.NewRecorder()

		res := rec.Classify(http.StatusInternalServerError)
		assert.Equal(t, httperr.KindInternal, res.Kind)
		require.Error(t, res.Cause)
		assert.Contains(t, res.Cause.Error(), "error not recorded")
	})

	t.Run("success statuses classify clean", func(t *testing.T) {
		t.Parallel()
		rec := httperr.NewRecorder()

		for _, status := range []int{200, 303, 401, 404, 422} {
			res := rec.Classify(status)
			assert.True(t, res.OK(), "status %d", status)
			assert.Equal(t, status, res.Status)
		}
	})

	t.Run("last attach wins", func(t *testing.T) {
		t.Parallel()
		rec := httperr.NewRecorder()
		rec.Attach(httperr.Validation("first"))
		rec.Attach(httperr.Internal(errors.New("second")))

		res := rec.Classify(http.StatusOK)
		assert.Equal(t, httperr.KindInternal, res.Kind)
	})

	t.Run("classification is deterministic across calls", func(t *testing.T) {
		t.Parallel()
		rec := httperr.NewRecorder()
		rec.Attach(httperr.Unauthorized("publish"))

		first := rec.Classify(http.StatusOK)
		second := rec.Classify(http.StatusOK)
		assert.Equal(t, first, second)
	})
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	t.Run("attach without recorder is a no-op", func(t *testing.T) {
		t.Parallel()
		httperr.Attach(context.Background(), errors.New("ignored"))

		res := httperr.Classify(context.Background(), http.StatusOK)
		assert.True(t, res.OK())
	})

	t.Run("attach reaches the request recorder", func(t *testing.T) {
		t.Parallel()
		rec := httperr.NewRecorder()
		ctx := httperr.WithRecorder(context.Background(), rec)

		httperr.Attach(ctx, httperr.Unauthorized("publish"))

		res := httperr.Classify(ctx, http.StatusOK)
		assert.Equal(t, httperr.KindUnauthorized, res.Kind)
		assert.Equal(t, http.StatusUnauthorized, res.Status)
	})
}
