package auth

import (
	"context"
	"runtime"
	"sync"
)

type verifyJob struct {
	password string
	hash     string
	result   chan verifyResult
}

type verifyResult struct {
	match bool
	err   error
}

// Verifier runs password hash verification on a bounded pool of worker
// goroutines, keeping the CPU-bound Argon2 work off request goroutines
// and capping how many verifications run at once.
type Verifier struct {
	jobs chan verifyJob
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// VerifierOption customizes Verifier construction.
type VerifierOption func(*verifierOptions)

type verifierOptions struct {
	workers int
}

// WithWorkers sets the worker pool size. Defaults to GOMAXPROCS.
func WithWorkers(n int) VerifierOption {
	return func(o *verifierOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// NewVerifier starts the worker pool.
func NewVerifier(opts ...VerifierOption) *Verifier {
	options := verifierOptions{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&options)
	}

	v := &Verifier{jobs: make(chan verifyJob)}
	v.wg.Add(options.workers)
	for i := 0; i < options.workers; i++ {
		go v.worker()
	}
	return v
}

func (v *Verifier) worker() {
	defer v.wg.Done()
	for job := range v.jobs {
		match, err := VerifyPassword(job.password, job.hash)
		job.result <- verifyResult{match: match, err: err}
	}
}

// Verify checks password against a stored PHC hash on a pool worker.
// It blocks until a worker picks up the job or ctx is done; a context
// failure here is a delegation failure, not a credential failure.
func (v *Verifier) Verify(ctx context.Context, password, hash string) (bool, error) {
	// The read lock is held across the send so Close cannot close the jobs
	// channel while a submission is in flight.
	v.mu.RLock()
	if v.closed {
		v.mu.RUnlock()
		return false, ErrVerifierClosed
	}

	job := verifyJob{password: password, hash: hash, result: make(chan verifyResult, 1)}

	select {
	case v.jobs <- job:
		v.mu.RUnlock()
	case <-ctx.Done():
		v.mu.RUnlock()
		return false, ctx.Err()
	}

	select {
	case res := <-job.result:
		return res.match, res.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Close stops accepting jobs and waits for in-flight verifications.
func (v *Verifier) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	close(v.jobs)
	v.mu.Unlock()

	v.wg.Wait()
}
