package session

import "time"

// Config holds session configuration.
type Config struct {
	// CookieName is the name of the signed cookie carrying the session id.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`

	// TTL is the lifetime of stored session records.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"336h"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName: "session_id",
		TTL:        14 * 24 * time.Hour,
	}
}
