package httperr

import (
	"context"
	"errors"
	"sync"
)

// errNotRecorded is synthesized when a handler produced a 5xx status without
// attaching a descriptor. Observability survives, detail is lost.
var errNotRecorded = errors.New("error not recorded")

// Result is the outcome of classifying a completed request.
type Result struct {
	Kind   Kind
	Status int
	// Cause carries the full failure detail for logs and traces. Never
	// exposed to the caller for internal failures.
	Cause error
}

// OK reports whether the request concluded without a recorded failure.
func (r Result) OK() bool { return r.Kind == KindNone }

// Recorder is the per-request slot a failure descriptor is attached to.
// It is the out-of-band channel that lets inner layers report failures
// without the outer layers knowing concrete error types.
type Recorder struct {
	mu   sync.Mutex
	desc *Error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Attach records the descriptor. A later attach replaces an earlier one; the
// last layer to report wins, mirroring response extension overwrites.
func (rec *Recorder) Attach(e *Error) {
	if e == nil {
		return
	}
	rec.mu.Lock()
	rec.desc = e
	rec.mu.Unlock()
}

// Descriptor returns the attached descriptor, if any.
func (rec *Recorder) Descriptor() *Error {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.desc
}

// Classify resolves the request outcome. Two tiers: an attached descriptor
// wins; otherwise a 5xx status becomes an internal failure with a
// synthesized cause, and anything else is success. The result is a pure
// function of the recorder state and the status code.
func (rec *Recorder) Classify(status int) Result {
	rec.mu.Lock()
	desc := rec.desc
	rec.mu.Unlock()

	if desc != nil {
		return Result{Kind: desc.kind, Status: statusFor(desc.kind), Cause: desc}
	}
	if status >= 500 {
		return Result{Kind: KindInternal, Status: status, Cause: errNotRecorded}
	}
	return Result{Kind: KindNone, Status: status}
}

type recorderContextKey struct{}

// WithRecorder stores the recorder in the context.
func WithRecorder(ctx context.Context, rec *Recorder) context.Context {
	return context.WithValue(ctx, recorderContextKey{}, rec)
}

// RecorderFrom retrieves the request's recorder from the context.
func RecorderFrom(ctx context.Context) (*Recorder, bool) {
	rec, ok := ctx.Value(recorderContextKey{}).(*Recorder)
	return rec, ok
}

// Attach converts err into a descriptor and records it on the request's
// recorder. It is a no-op outside the middleware pipeline so that handlers
// stay testable in isolation.
func Attach(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if rec, ok := RecorderFrom(ctx); ok {
		rec.Attach(From(err))
	}
}

// Classify resolves the outcome of the request in ctx against the response
// status written so far.
func Classify(ctx context.Context, status int) Result {
	if rec, ok := RecorderFrom(ctx); ok {
		return rec.Classify(status)
	}
	return NewRecorder().Classify(status)
}
