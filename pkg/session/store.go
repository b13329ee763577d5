package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"

	"github.com/dmitrymomot/forumkit/pkg/crypto"
)

// recordKeySize is the per-record key material size in bytes
const recordKeySize = 8

// Record is a persisted session row. Key holds the per-record key
// material when the payload is encrypted, or is empty in plaintext mode.
type Record struct {
	Key  string
	Data string
}

// Backend is the key/value contract a session row store must satisfy.
// Get reports absence through its bool, not an error. Put has upsert
// semantics: last write wins.
type Backend interface {
	Get(ctx context.Context, id string) (Record, bool, error)
	Put(ctx context.Context, id string, rec Record) error
	Delete(ctx context.Context, id string) error
}

// Store persists session payloads through a Backend, transparently
// encrypting them at rest when enabled. The decryption key is a composite
// of the record's key material and the visitor's browser signature; it is
// never persisted and can only be reconstructed by a client whose
// signature matches the one present at write time.
type Store struct {
	backend Backend
	engine  *crypto.Engine
	encrypt bool
}

// NewStore creates a session store over the given backend
func NewStore(backend Backend, engine *crypto.Engine, encrypt bool) *Store {
	return &Store{
		backend: backend,
		engine:  engine,
		encrypt: encrypt,
	}
}

// Read returns the payload stored under id, decrypted when the record
// carries key material. An absent row yields an empty payload, not an
// error. A payload sealed under a different browser signature decrypts to
// empty, indistinguishable from absence.
func (s *Store) Read(ctx context.Context, id, signature string) (string, error) {
	rec, ok, err := s.backend.Get(ctx, id)
	if err != nil {
		return "", errors.Join(ErrStorage, err)
	}
	if !ok {
		return "", nil
	}

	if rec.Key == "" {
		return rec.Data, nil
	}

	return s.engine.Decrypt(rec.Data, compositeKey(rec.Key, signature)), nil
}

// Write upserts the payload under id. When encryption is enabled, fresh
// key material is generated for every write and stored alongside the
// ciphertext; the composite encryption key itself is never stored.
func (s *Store) Write(ctx context.Context, id, signature, payload string) error {
	if !s.encrypt {
		if err := s.backend.Put(ctx, id, Record{Data: payload}); err != nil {
			return errors.Join(ErrStorage, err)
		}
		return nil
	}

	material := make([]byte, recordKeySize)
	if _, err := rand.Read(material); err != nil {
		return errors.Join(ErrRandomSource, err)
	}
	key := base64.StdEncoding.EncodeToString(material)

	sealed, err := s.engine.Encrypt(payload, compositeKey(key, signature))
	if err != nil {
		return errors.Join(ErrEncryption, err)
	}

	if err := s.backend.Put(ctx, id, Record{Key: key, Data: sealed}); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// Destroy deletes the row. Absence is not an error.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// compositeKey derives the payload key from the stored key material and
// the visitor's browser signature. Both parts are required.
func compositeKey(material, signature string) string {
	mac := hmac.New(sha256.New, []byte(signature))
	mac.Write([]byte(material))
	return hex.EncodeToString(mac.Sum(nil))
}
