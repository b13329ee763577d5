package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/forumkit/pkg/browser"
	"github.com/dmitrymomot/forumkit/pkg/cookie"
	"github.com/dmitrymomot/forumkit/pkg/crypto"
	"github.com/dmitrymomot/forumkit/pkg/session"
)

const (
	// tokenSize is the login token size in bytes
	tokenSize = 16

	// lookupSize is the public lookup identifier size in bytes
	lookupSize = 16

	// cookieMinLength and cookieMaxLength bound the login cookie value.
	// Checked before any storage work.
	cookieMinLength = 24
	cookieMaxLength = 1024

	// avatarSeedLength is the number of signature hex chars used as an
	// avatar seed
	avatarSeedLength = 16
)

// Session data keys for the materialized user projection. Values are
// stored as strings so the projection survives a JSON round trip intact.
const (
	sessUserID   = "user_id"
	sessUsername = "username"
	sessAvatar   = "avatar"
	sessHash     = "hash"
	sessStatus   = "status"
)

// Controller orchestrates password login, cookie login, registration,
// and logout. All collaborators are injected at construction.
type Controller struct {
	engine   *crypto.Engine
	sessions *session.Manager
	provider *browser.Provider
	users    UserStore
	cookies  *cookie.Manager
	config   Config
	log      *slog.Logger
}

// Option is a functional option for configuring the Controller
type Option func(*Controller)

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(c *Controller) {
		c.config = config
	}
}

// WithLogger sets the logger for side-effect failures
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// NewController creates an auth controller
func NewController(
	engine *crypto.Engine,
	sessions *session.Manager,
	provider *browser.Provider,
	users UserStore,
	cookies *cookie.Manager,
	opts ...Option,
) *Controller {
	c := &Controller{
		engine:   engine,
		sessions: sessions,
		provider: provider,
		users:    users,
		cookies:  cookies,
		config:   DefaultConfig(),
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Login authenticates by username and password. On success it rotates
// the login token, persists the new derived hash, resets the session
// with the user projection, and issues a fresh login cookie. Wrong
// credentials and disabled accounts both return (false, nil); only
// storage failures return an error.
func (c *Controller) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, username, password string) (bool, error) {
	user, ok, err := c.users.FindByUsername(ctx, username)
	if err != nil {
		return false, errors.Join(ErrStorage, err)
	}
	if !ok {
		return false, nil
	}

	if !VerifyPassword(password, user.Password) {
		return false, nil
	}
	if user.Status < 0 {
		return false, nil
	}

	// Rehash under current policy; never blocks a successful login
	if PasswordNeedsRehash(user.Password) {
		if record, err := HashPassword(password); err == nil {
			if err := c.users.UpdatePassword(ctx, user.ID, record); err != nil {
				c.log.WarnContext(ctx, "password rehash not persisted",
					slog.Int64("user_id", user.ID), slog.Any("error", err))
			}
		}
	}

	token, err := randomHex(tokenSize)
	if err != nil {
		return false, err
	}

	record, err := c.engine.DeriveKey(user.Lookup + c.tokenHash(r, token))
	if err != nil {
		return false, err
	}
	if err := c.users.UpdateLoginHash(ctx, user.ID, record); err != nil {
		return false, errors.Join(ErrStorage, err)
	}
	user.Hash = record

	sess, _, err := c.sessions.Check(ctx, w, r, true)
	if err != nil {
		return false, err
	}
	if err := c.materialize(ctx, r, sess, user); err != nil {
		return false, err
	}
	c.setLoginCookie(w, user.Lookup, token)

	return true, nil
}

// CookieLogin authenticates by the persistent login cookie. The cookie
// value is `lookup '$' token`; length bounds and shape are checked
// before any storage work. On success the session is materialized and
// the cookie expiry refreshed without rotating the token.
func (c *Controller) CookieLogin(ctx context.Context, w http.ResponseWriter, r *http.Request) (bool, error) {
	user, token, ok, err := c.verifyCookie(ctx, r)
	if err != nil || !ok {
		return false, err
	}

	sess, _, err := c.sessions.Check(ctx, w, r, false)
	if err != nil {
		return false, err
	}
	if err := c.materialize(ctx, r, sess, user); err != nil {
		return false, err
	}
	c.setLoginCookie(w, user.Lookup, token)

	return true, nil
}

// Authenticate resolves the request's session and, when it carries no
// user yet, attempts a silent cookie login into that same session.
// Intended for request-scoped middleware and endpoints that need the
// final session regardless of how authentication happened.
func (c *Controller) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	sess, _, err := c.sessions.Check(ctx, w, r, false)
	if err != nil {
		return nil, err
	}
	if _, ok := sess.GetString(sessUserID); ok {
		return sess, nil
	}

	user, token, ok, err := c.verifyCookie(ctx, r)
	if err != nil {
		return nil, err
	}
	if !ok {
		return sess, nil
	}

	if err := c.materialize(ctx, r, sess, user); err != nil {
		return nil, err
	}
	c.setLoginCookie(w, user.Lookup, token)

	return sess, nil
}

// verifyCookie validates the login cookie shape and its derived record.
// Length bounds and segment count are checked before any storage work.
func (c *Controller) verifyCookie(ctx context.Context, r *http.Request) (User, string, bool, error) {
	raw, err := c.cookies.Get(r, c.config.CookieName)
	if err != nil {
		return User{}, "", false, nil
	}
	if len(raw) < cookieMinLength || len(raw) > cookieMaxLength {
		return User{}, "", false, nil
	}

	parts := strings.Split(raw, "$")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return User{}, "", false, nil
	}
	lookup, token := parts[0], parts[1]

	user, ok, err := c.users.FindByLookup(ctx, lookup)
	if err != nil {
		return User{}, "", false, errors.Join(ErrStorage, err)
	}
	if !ok {
		return User{}, "", false, nil
	}

	if !c.engine.VerifyDerivedKey(lookup+c.tokenHash(r, token), user.Hash) {
		return User{}, "", false, nil
	}
	if user.Status < 0 {
		return User{}, "", false, nil
	}

	return user, token, true, nil
}

// Register creates a new account. Usernames are matched case-sensitively;
// a taken name returns ErrUserExists.
func (c *Controller) Register(ctx context.Context, r *http.Request, username, password string) error {
	_, ok, err := c.users.FindByUsername(ctx, username)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if ok {
		return ErrUserExists
	}

	record, err := HashPassword(password)
	if err != nil {
		return err
	}
	lookup, err := randomHex(lookupSize)
	if err != nil {
		return err
	}

	if _, err := c.users.Create(ctx, User{
		Username: username,
		Password: record,
		Avatar:   c.AvatarSeed(r),
		Lookup:   lookup,
	}); err != nil {
		return errors.Join(ErrStorage, err)
	}

	return nil
}

// Logout invalidates the session and expires the login cookie
func (c *Controller) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if _, _, err := c.sessions.Check(ctx, w, r, true); err != nil {
		return err
	}
	c.cookies.Delete(w, c.config.CookieName)
	return nil
}

// IsSession reports whether the session carries an authenticated user.
// With matchIP set, the canary IP must also match the current request.
func (c *Controller) IsSession(sess *session.Session, r *http.Request, matchIP bool) bool {
	if _, ok := sess.GetString(sessUserID); !ok {
		return false
	}
	if matchIP && !c.sessions.MatchesIP(sess, r) {
		return false
	}
	return true
}

// CurrentUser reconstructs the materialized user projection from the
// session. The password record is never part of the projection.
func (c *Controller) CurrentUser(sess *session.Session) (User, bool) {
	id, ok := SessionUserID(sess)
	if !ok {
		return User{}, false
	}

	username, _ := sess.GetString(sessUsername)
	avatar, _ := sess.GetString(sessAvatar)
	hash, _ := sess.GetString(sessHash)
	status := 0
	if raw, ok := sess.GetString(sessStatus); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			status = n
		}
	}

	return User{
		ID:       id,
		Username: username,
		Avatar:   avatar,
		Status:   status,
		Hash:     hash,
	}, true
}

// SessionUserID returns the authenticated user's id, if any
func SessionUserID(sess *session.Session) (int64, bool) {
	raw, ok := sess.GetString(sessUserID)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// AvatarSeed derives a short deterministic avatar seed from the
// visitor's browser signature
func (c *Controller) AvatarSeed(r *http.Request) string {
	sig := c.provider.Signature(r)
	if len(sig) < avatarSeedLength {
		return sig
	}
	return sig[:avatarSeedLength]
}

// materialize stores the public user projection into the session and
// persists it. The password record is never part of the projection.
func (c *Controller) materialize(ctx context.Context, r *http.Request, sess *session.Session, user User) error {
	sess.Set(sessUserID, strconv.FormatInt(user.ID, 10))
	sess.Set(sessUsername, user.Username)
	sess.Set(sessAvatar, user.Avatar)
	sess.Set(sessHash, user.Hash)
	sess.Set(sessStatus, strconv.Itoa(user.Status))

	return c.sessions.Save(ctx, r, sess)
}

// tokenHash binds a raw token to the visitor's browser signature
func (c *Controller) tokenHash(r *http.Request, token string) string {
	sum := sha256.Sum256([]byte(token + c.provider.Signature(r)))
	return hex.EncodeToString(sum[:])
}

func (c *Controller) setLoginCookie(w http.ResponseWriter, lookup, token string) {
	opts := []cookie.Option{
		cookie.WithPath(c.config.CookiePath),
		cookie.WithMaxAge(int(c.config.CookieTTL / time.Second)),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	}
	if c.config.SecureCookies {
		opts = append(opts, cookie.WithSecure(true))
	}

	c.cookies.Set(w, c.config.CookieName, lookup+"$"+token, opts...)
}

func randomHex(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrRandomSource, err)
	}
	return hex.EncodeToString(b), nil
}
