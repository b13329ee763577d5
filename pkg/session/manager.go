package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/forumkit/pkg/browser"
	"github.com/dmitrymomot/forumkit/pkg/cookie"
)

// Manager handles the session lifecycle: creation on first touch,
// transparent repair of stale sessions, explicit reset, and persistence
// through the Store.
type Manager struct {
	store     *Store
	provider  *browser.Provider
	transport Transport
	config    Config
}

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithTransport sets a custom session transport
func WithTransport(transport Transport) Option {
	return func(m *Manager) {
		m.transport = transport
	}
}

// WithCookieManager builds the default cookie transport from the given
// cookie manager
func WithCookieManager(cookies *cookie.Manager) Option {
	return func(m *Manager) {
		m.transport = NewCookieTransport(cookies, m.config.CookieName, m.config.SecureCookies)
	}
}

// New creates a session manager. A transport is required; configure one
// via WithTransport or WithCookieManager.
func New(store *Store, provider *browser.Provider, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		provider: provider,
		config:   DefaultConfig(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.transport == nil {
		// Fail fast on misconfiguration rather than at first request
		panic(ErrNoTransport)
	}

	return m
}

// Check ensures an active, fresh session for this request and returns it.
// A missing session is created; a stale one is repaired by regenerating
// the identifier while preserving the visit identifier. When reset is
// true, the identifier is regenerated and all session content cleared.
// The returned bool reports whether a canary (re)initialization occurred.
func (m *Manager) Check(ctx context.Context, w http.ResponseWriter, r *http.Request, reset bool) (*Session, bool, error) {
	sess, err := m.load(ctx, r)
	if err != nil {
		return nil, false, err
	}

	if sess == nil {
		sess, err = m.start(ctx, w, r)
		if err != nil {
			return nil, false, err
		}
		return sess, true, nil
	}

	if reset {
		if err := m.store.Destroy(ctx, sess.ID); err != nil {
			return nil, false, err
		}
		sess, err = m.start(ctx, w, r)
		if err != nil {
			return nil, false, err
		}
		return sess, true, nil
	}

	if sess.Canary.Expired() {
		// Rotate the identifier but keep the visit id: continuity
		// across staleness-triggered regeneration
		visit := sess.Canary.Visit
		if err := m.store.Destroy(ctx, sess.ID); err != nil {
			return nil, false, err
		}

		sess.ID = uuid.NewString()
		if err := m.reseed(sess, r, visit); err != nil {
			return nil, false, err
		}
		if err := m.Save(ctx, r, sess); err != nil {
			return nil, false, err
		}
		if err := m.transport.SetID(w, sess.ID); err != nil {
			return nil, false, err
		}
		return sess, true, nil
	}

	return sess, false, nil
}

// MatchesIP re-validates the current request IP against the canary's
// stored IP. Opt-in: mobile and proxy churn make IP pinning a caller
// decision, not a default.
func (m *Manager) MatchesIP(sess *Session, r *http.Request) bool {
	if sess == nil {
		return false
	}
	return sess.Canary.IP == m.provider.IP(r)
}

// Save persists the session payload under the current browser signature
func (m *Manager) Save(ctx context.Context, r *http.Request, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return m.store.Write(ctx, sess.ID, m.provider.Signature(r), string(payload))
}

// Destroy deletes the session row and clears the identifier cookie
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if id, err := m.transport.GetID(r); err == nil && id != "" {
		if err := m.store.Destroy(ctx, id); err != nil {
			return err
		}
	}
	return m.transport.ClearID(w)
}

// load fetches and decodes the request's session, if any. Undecodable
// payloads (including those sealed under a different browser signature)
// are treated as absent.
func (m *Manager) load(ctx context.Context, r *http.Request) (*Session, error) {
	id, err := m.transport.GetID(r)
	if err != nil || id == "" {
		return nil, nil
	}

	payload, err := m.store.Read(ctx, id, m.provider.Signature(r))
	if err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, nil
	}
	if sess.ID != id {
		return nil, nil
	}

	return &sess, nil
}

// start creates a brand new session with a fresh canary and visit id
func (m *Manager) start(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess := &Session{
		ID:   uuid.NewString(),
		Data: make(map[string]any),
	}
	if err := m.reseed(sess, r, ""); err != nil {
		return nil, err
	}

	if err := m.Save(ctx, r, sess); err != nil {
		return nil, err
	}
	if err := m.transport.SetID(w, sess.ID); err != nil {
		return nil, err
	}

	return sess, nil
}

// reseed installs a fresh canary. An empty visit generates a new visit
// id; a non-empty one is carried over. Expiry always moves forward.
func (m *Manager) reseed(sess *Session, r *http.Request, visit string) error {
	if visit == "" {
		v, err := newVisitID()
		if err != nil {
			return err
		}
		visit = v
	}

	sess.Canary = Canary{
		IP:        m.provider.IP(r),
		Signature: m.provider.Signature(r),
		ExpiresAt: time.Now().Add(m.config.TTL),
		Visit:     visit,
	}
	return nil
}
