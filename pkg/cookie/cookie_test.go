package cookie_test

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrymomot/letterdrop/pkg/cookie"
)

const testSecret = "this-is-a-very-long-secret-key-32-chars-long"

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{
			name:    "no secrets",
			secrets: []string{},
			wantErr: cookie.ErrNoSecret,
		},
		{
			name:    "empty secrets",
			secrets: []string{"", ""},
			wantErr: cookie.ErrNoSecret,
		},
		{
			name:    "secret too short",
			secrets: []string{"short"},
			wantErr: cookie.ErrSecretTooShort,
		},
		{
			name:    "valid secret",
			secrets: []string{testSecret},
			wantErr: nil,
		},
		{
			name: "multiple secrets with rotation",
			secrets: []string{
				testSecret,
				"this-is-old-very-long-secret-key-32-chars-ok",
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New([]string{testSecret})

	w := httptest.NewRecorder()
	r := &http.Request{Header: http.Header{}}

	if err := m.Set(w, "test", "value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	r.Header.Set("Cookie", w.Header().Get("Set-Cookie"))

	got, err := m.Get(r, "test")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "value" {
		t.Errorf("Get() = %v, want %v", got, "value")
	}
}

func TestManager_GetMissing(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New([]string{testSecret})

	r := &http.Request{Header: http.Header{}}
	if _, err := m.Get(r, "nope"); !errors.Is(err, cookie.ErrCookieNotFound) {
		t.Errorf("Get() error = %v, want %v", err, cookie.ErrCookieNotFound)
	}
}

func TestManager_SetGetSigned(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New([]string{testSecret})

	w := httptest.NewRecorder()
	r := &http.Request{Header: http.Header{}}

	value := "test-value"
	if err := m.SetSigned(w, "signed", value); err != nil {
		t.Fatalf("SetSigned() error = %v", err)
	}

	r.Header.Set("Cookie", w.Header().Get("Set-Cookie"))

	got, err := m.GetSigned(r, "signed")
	if err != nil {
		t.Fatalf("GetSigned() error = %v", err)
	}
	if got != value {
		t.Errorf("GetSigned() = %v, want %v", got, value)
	}
}

func TestManager_SignedTamperDetection(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New([]string{testSecret})

	w := httptest.NewRecorder()
	if err := m.SetSigned(w, "signed", "original-value"); err != nil {
		t.Fatalf("SetSigned() error = %v", err)
	}

	r := &http.Request{Header: http.Header{}}
	r.Header.Set("Cookie", w.Header().Get("Set-Cookie"))

	signedValue, _ := m.Get(r, "signed")
	parts := strings.Split(signedValue, "|")
	if len(parts) != 2 {
		t.Fatalf("invalid signed cookie format: %q", signedValue)
	}

	tamperedValue := base64.URLEncoding.EncodeToString([]byte("tampered-value")) + "|" + parts[1]
	r = &http.Request{Header: http.Header{}}
	r.AddCookie(&http.Cookie{Name: "signed", Value: tamperedValue})

	if _, err := m.GetSigned(r, "signed"); !errors.Is(err, cookie.ErrInvalidSignature) {
		t.Errorf("GetSigned() with tampered cookie error = %v, want %v", err, cookie.ErrInvalidSignature)
	}
}

func TestManager_SecretRotation(t *testing.T) {
	t.Parallel()
	oldSecret := "this-is-old-very-long-secret-key-32-chars-ok"

	oldManager, _ := cookie.New([]string{oldSecret})
	w := httptest.NewRecorder()
	if err := oldManager.SetSigned(w, "session", "user-123"); err != nil {
		t.Fatalf("SetSigned() error = %v", err)
	}

	// New deployment signs with a fresh key but still verifies old cookies.
	newManager, _ := cookie.New([]string{testSecret, oldSecret})
	r := &http.Request{Header: http.Header{}}
	r.Header.Set("Cookie", w.Header().Get("Set-Cookie"))

	got, err := newManager.GetSigned(r, "session")
	if err != nil {
		t.Fatalf("GetSigned() after rotation error = %v", err)
	}
	if got != "user-123" {
		t.Errorf("GetSigned() = %v, want %v", got, "user-123")
	}
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()
	m, _ := cookie.New([]string{testSecret})

	w := httptest.NewRecorder()
	m.Delete(w, "gone")

	header := w.Header().Get("Set-Cookie")
	if !strings.Contains(header, "gone=") || !strings.Contains(header, "Max-Age=0") {
		t.Errorf("Delete() Set-Cookie = %q, want expired cookie", header)
	}
}
