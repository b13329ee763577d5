package auth

import (
	"crypto/sha512"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt cost for new password records. Existing
// records below it trigger a rehash on next successful verification.
const passwordCost = bcrypt.DefaultCost

// prehash compresses the plaintext to a fixed-size input before bcrypt,
// lifting bcrypt's 72-byte truncation on long passphrases. The raw
// SHA-384 digest is base64-wrapped because bcrypt treats NUL as a
// terminator.
func prehash(password string) []byte {
	sum := sha512.Sum384([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword produces a stored password record for the plaintext
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), passwordCost)
	if err != nil {
		return "", errors.Join(ErrPasswordHash, err)
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored
// record. Malformed records verify false, never error.
func VerifyPassword(password, record string) bool {
	hash, err := base64.StdEncoding.DecodeString(record)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, prehash(password)) == nil
}

// PasswordNeedsRehash reports whether the stored record was produced
// under a weaker cost than current policy
func PasswordNeedsRehash(record string) bool {
	hash, err := base64.StdEncoding.DecodeString(record)
	if err != nil {
		return true
	}
	cost, err := bcrypt.Cost(hash)
	if err != nil {
		return true
	}
	return cost < passwordCost
}
