// Package session provides per-visitor session state for stateless
// requests without a centralized session server. A Manager repairs or
// creates sessions on every touch, a Store persists payloads (encrypted
// at rest when enabled), and pluggable Backends (memory, Redis, Postgres)
// hold the rows.
//
// # Canary
//
// Every session carries a canary: the visitor's IP, browser signature,
// an expiry and a visit identifier. The canary detects staleness: when
// its expiry passes, the next touch regenerates the session identifier
// while preserving the visit identifier, so visit continuity survives
// rotation. A stale or missing session is never an error; it is
// transparently repaired or created.
//
// # Encryption at rest
//
// When encryption is enabled, each write generates fresh per-record key
// material and derives the payload key by HMAC-ing that material with the
// visitor's current browser signature. The composite key is never
// persisted: decryption is only possible for a client whose signature
// matches the one present at write time, binding session confidentiality
// to the browser fingerprint without storing the fingerprint.
//
// # Usage
//
//	backend := session.NewMemoryBackend()
//	store := session.NewStore(backend, crypto.NewEngine(), true)
//	mgr := session.New(store, browser.NewProvider(),
//	    session.WithCookieManager(cookieMgr),
//	)
//
//	sess, rotated, err := mgr.Check(ctx, w, r, false)
package session
