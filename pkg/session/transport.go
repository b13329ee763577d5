package session

import (
	"net/http"

	"github.com/dmitrymomot/forumkit/pkg/cookie"
)

// Transport defines how the session identifier travels between client
// and server
type Transport interface {
	// GetID extracts the session identifier from the request
	GetID(r *http.Request) (string, error)

	// SetID sends the session identifier in the response
	SetID(w http.ResponseWriter, id string) error

	// ClearID removes the session identifier from the response
	ClearID(w http.ResponseWriter) error
}

// CookieTransport carries the session identifier in a cookie. The cookie
// is session-scoped (no Max-Age); server-side canary expiry governs the
// session lifetime.
type CookieTransport struct {
	cookies *cookie.Manager
	name    string
	secure  bool
}

// NewCookieTransport creates a cookie-based session transport
func NewCookieTransport(cookies *cookie.Manager, name string, secure bool) *CookieTransport {
	return &CookieTransport{
		cookies: cookies,
		name:    name,
		secure:  secure,
	}
}

func (t *CookieTransport) GetID(r *http.Request) (string, error) {
	return t.cookies.Get(r, t.name)
}

func (t *CookieTransport) SetID(w http.ResponseWriter, id string) error {
	opts := []cookie.Option{
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if t.secure {
		opts = append(opts, cookie.WithSecure(true))
	}

	t.cookies.Set(w, t.name, id, opts...)
	return nil
}

func (t *CookieTransport) ClearID(w http.ResponseWriter) error {
	t.cookies.Delete(w, t.name)
	return nil
}
