package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// visitIDSize is the random size of a visit identifier in bytes
const visitIDSize = 12

// Canary is the session owner and staleness marker. It binds the session
// to the visitor's network context and carries the visit identifier that
// survives session-ID regeneration.
type Canary struct {
	IP        string    `json:"ip"`
	Signature string    `json:"sig"`
	ExpiresAt time.Time `json:"exp"`
	Visit     string    `json:"visit"`
}

// Expired reports whether the canary's expiry has passed
func (c Canary) Expired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Session is the per-visitor state addressed by a regenerable identifier
type Session struct {
	ID     string         `json:"id"`
	Canary Canary         `json:"canary"`
	Data   map[string]any `json:"data,omitempty"`
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Set stores a value in session data
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all data from the session
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
}

// newVisitID generates a fresh visit identifier
func newVisitID() (string, error) {
	b := make([]byte, visitIDSize)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrRandomSource, err)
	}
	return hex.EncodeToString(b), nil
}
