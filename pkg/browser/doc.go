// Package browser builds the visitor's browser signature: a stable string
// binding cryptographic material to the visitor's network and header
// context. The signature combines the client IP with a fixed allow-list of
// marker headers and hashes the result with SHA-384.
//
// Only allow-listed header names participate, so an attacker cannot steer
// the signature by inventing header names. The signature is recomputed per
// request and must never be cached across different visitors; the optional
// middleware attaches it to the request context for the duration of one
// request only.
//
// The auth and session packages treat the signature as an opaque binding
// value: cookie-token hashes and session-payload encryption keys are
// derived from it, which ties them to the visitor's fingerprint without
// persisting the fingerprint itself.
package browser
