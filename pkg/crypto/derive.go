package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"hash"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DeriveAlgorithm is the default digest for key derivation
	DeriveAlgorithm = "sha256"

	// DeriveRounds is the default PBKDF2 iteration count
	DeriveRounds = 10000

	// DeriveKeyLength is the default derived digest length in hex characters
	DeriveKeyLength = 128

	// SaltSize is the random salt size in bytes when no salt is supplied
	SaltSize = 16

	// maxRecordSize bounds derived-key records before any derivation work
	maxRecordSize = 600

	recordSeparator = "$"
	recordFields    = 5
)

// digests is the allowed set of derivation algorithms. Records declaring
// anything else are rejected during verification.
var digests = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// recordScrub strips trailing bytes that cannot belong to a record's
// hex digest segment
var recordScrub = regexp.MustCompile(`(?i)[^a-f0-9$]+$`)

// DeriveKey derives a self-describing key record from text using the
// default algorithm, rounds and key length. A fresh random salt is
// generated for every call.
func (e *Engine) DeriveKey(text string) (string, error) {
	return e.DeriveKeyWithParams(text, "", DeriveAlgorithm, DeriveRounds, DeriveKeyLength)
}

// DeriveKeyWithParams derives a key record with explicit parameters.
// An empty salt is replaced with a random one.
func (e *Engine) DeriveKeyWithParams(text, salt, algorithm string, rounds, keyLength int) (string, error) {
	newHash, ok := digests[algorithm]
	if !ok {
		return "", ErrUnknownAlgorithm
	}
	if rounds <= 0 || keyLength <= 0 {
		return "", ErrInvalidParams
	}

	if salt == "" {
		raw := make([]byte, SaltSize)
		if _, err := rand.Read(raw); err != nil {
			return "", errors.Join(ErrRandomSource, err)
		}
		salt = hex.EncodeToString(raw)
	}

	digest := deriveHex(text, salt, rounds, keyLength, newHash)

	record := strings.Join([]string{
		algorithm,
		salt,
		strconv.Itoa(rounds),
		strconv.Itoa(keyLength),
		digest,
	}, recordSeparator)

	return base64.StdEncoding.EncodeToString([]byte(record)), nil
}

// VerifyDerivedKey re-derives text with the parameters stored in record and
// compares digests in constant time. Empty, oversized or malformed records
// and disallowed algorithms are rejected before any derivation work.
func (e *Engine) VerifyDerivedKey(text, record string) bool {
	if text == "" || record == "" || len(record) > maxRecordSize {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(record)
	if err != nil {
		return false
	}

	cleaned := recordScrub.ReplaceAllString(string(decoded), "")
	fields := strings.Split(cleaned, recordSeparator)
	if len(fields) != recordFields {
		return false
	}

	newHash, ok := digests[fields[0]]
	if !ok {
		return false
	}

	rounds, err := strconv.Atoi(fields[2])
	if err != nil || rounds <= 0 {
		return false
	}
	keyLength, err := strconv.Atoi(fields[3])
	if err != nil || keyLength <= 0 {
		return false
	}

	derived := deriveHex(text, fields[1], rounds, keyLength, newHash)
	return hmac.Equal([]byte(derived), []byte(fields[4]))
}

// deriveHex runs PBKDF2 and returns keyLength hex characters of output
func deriveHex(text, salt string, rounds, keyLength int, newHash func() hash.Hash) string {
	raw := pbkdf2.Key([]byte(text), []byte(salt), rounds, (keyLength+1)/2, newHash)
	return hex.EncodeToString(raw)[:keyLength]
}
