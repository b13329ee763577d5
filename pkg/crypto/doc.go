// Package crypto implements the symmetric encrypt/sign envelope and the
// derived-key record format shared by cookies, configuration secrets and
// persisted session payloads.
//
// The envelope layers three primitives: AES-256-CTR for confidentiality,
// HMAC-SHA-256 over the packaged ciphertext for integrity, and PKCS-style
// byte padding so the plaintext length is never exposed modulo the block
// size. The signing key is never the raw caller key; it is first hashed
// with SHA-384. Wire form:
//
//	hmac-hex ':::' base64( base64(iv) ':::' base64(ciphertext) )
//
// Derived-key records are self-describing PBKDF2 outputs carrying the
// algorithm, salt, round count and key length needed to reproduce
// verification:
//
//	base64( algorithm '$' salt '$' rounds '$' keylength '$' digest-hex )
//
// The same record format backs login-token hashes and CSRF tokens.
//
// All operations are pure and stateless. Malformed or adversarial input
// yields an empty string or false, never a panic, and size limits are
// enforced before any cryptographic work.
//
// # Usage
//
//	engine := crypto.NewEngine()
//
//	sealed, err := engine.Encrypt("payload", key)
//	if err != nil {
//	    // input exceeded EncryptMaxData
//	}
//	plain := engine.Decrypt(sealed, key) // "" on any failure
//
//	record, _ := engine.DeriveKey("secret input")
//	ok := engine.VerifyDerivedKey("secret input", record)
package crypto
