package session

import "time"

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session identifier cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"is"`

	// TTL is the canary expiry window; each refresh moves expiry forward by this much
	TTL time.Duration `env:"SESSION_TTL" envDefault:"1h"`

	// Encrypt enables payload encryption at rest
	Encrypt bool `env:"SESSION_ENCRYPT" envDefault:"true"`

	// SecureCookies enables the Secure flag on the session cookie
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:    "is",
		TTL:           time.Hour,
		Encrypt:       true,
		SecureCookies: false,
	}
}
