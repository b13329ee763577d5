// Package auth implements password and cookie authentication for forum
// users.
//
// The Controller orchestrates the full flow: password login with
// rehash-on-verify, persistent cookie login, registration, logout, and
// materialization of the authenticated user into the session. Login
// tokens are never stored directly; only a derived record bound to the
// visitor's browser signature is persisted, so a stolen database row is
// useless without the matching browser.
//
// Authentication failures are deliberately uniform: a malformed cookie,
// an unknown user, a wrong password, and a disabled account all yield
// (false, nil). Only storage failures surface as errors.
package auth
