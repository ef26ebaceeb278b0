package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one request's view of its server-side state. Content is loaded
// from the backing store lazily on first access and written back at most
// once, at request end, if anything changed. A Session is owned by exactly
// one request and must not outlive it.
type Session struct {
	mu    sync.Mutex
	store Store

	// candidate is the id claimed by the request's signed cookie, pending
	// the first load. A candidate that misses in the store is discarded.
	candidate string
	id        string
	data      map[string]any
	loaded    bool
	dirty     bool
}

func newSession(store Store, candidate string) *Session {
	return &Session{store: store, candidate: candidate}
}

// load fetches the content blob on first access. A missing cookie or a
// cookie referencing an unknown id yields an empty session, not an error;
// an undecodable stored blob is an error.
func (s *Session) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	s.loaded = true
	s.data = make(map[string]any)

	if s.candidate == "" {
		return nil
	}

	blob, err := s.store.Load(ctx, s.candidate)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return nil
	case err != nil:
		return errors.Join(ErrLoadFailed, err)
	}

	content := make(map[string]any)
	if err := json.Unmarshal(blob, &content); err != nil {
		return errors.Join(ErrDecodeFailed, err)
	}

	s.id = s.candidate
	s.data = content
	return nil
}

// Value returns the raw content stored under key.
func (s *Session) Value(ctx context.Context, key string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, false, err
	}
	v, ok := s.data[key]
	return v, ok, nil
}

// Insert stores value under key. The first access loads existing content so
// a write never clobbers what a previous request persisted.
func (s *Session) Insert(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}
	s.data[key] = value
	s.dirty = true
	return nil
}

// Delete removes key from the session content.
func (s *Session) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.dirty = true
	}
	return nil
}

// Reset discards the content and assigns a fresh id, defeating session
// fixation across authentication state changes. The old id is simply
// abandoned; its record expires with the store TTL.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.data = make(map[string]any)
	s.id = uuid.NewString()
	s.candidate = ""
	s.dirty = true
	return nil
}

// ID returns the session id, which may be empty until content is flushed.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// flush serializes and writes the content back under the session id,
// generating one if needed. Returns the id and whether a write happened.
// Two concurrent requests sharing an id each flush their own snapshot;
// the last writer wins.
func (s *Session) flush(ctx context.Context, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return s.id, false, nil
	}

	if s.id == "" {
		s.id = uuid.NewString()
	}

	blob, err := json.Marshal(s.data)
	if err != nil {
		return s.id, false, errors.Join(ErrEncodeFailed, err)
	}

	if err := s.store.Save(ctx, s.id, blob, ttl); err != nil {
		return s.id, false, errors.Join(ErrSaveFailed, err)
	}

	s.dirty = false
	return s.id, true, nil
}
