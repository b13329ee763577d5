package auth

import "time"

// Config holds auth controller configuration
type Config struct {
	// CookieName is the name of the persistent login cookie
	CookieName string `env:"AUTH_COOKIE_NAME" envDefault:"user"`

	// CookieTTL is the login cookie lifetime; refreshed on every
	// successful cookie login
	CookieTTL time.Duration `env:"AUTH_COOKIE_TTL" envDefault:"720h"`

	// CookiePath scopes the login cookie to a site path
	CookiePath string `env:"AUTH_COOKIE_PATH" envDefault:"/"`

	// SecureCookies enables the Secure flag on the login cookie
	SecureCookies bool `env:"AUTH_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		CookieName:    "user",
		CookieTTL:     720 * time.Hour,
		CookiePath:    "/",
		SecureCookies: false,
	}
}
