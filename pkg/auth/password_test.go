package auth_test

import (
	"crypto/sha512"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/forumkit/pkg/auth"
)

// weakRecord builds a password record under a minimal bcrypt cost, the
// shape an old database row would have
func weakRecord(t *testing.T, password string) string {
	t.Helper()

	sum := sha512.Sum384([]byte(password))
	pre := base64.StdEncoding.EncodeToString(sum[:])

	hash, err := bcrypt.GenerateFromPassword([]byte(pre), bcrypt.MinCost)
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(hash)
}

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	record, err := auth.HashPassword("Secr3t!")
	require.NoError(t, err)
	require.NotEmpty(t, record)

	assert.True(t, auth.VerifyPassword("Secr3t!", record))
	assert.False(t, auth.VerifyPassword("wrong", record))
}

func TestPasswordLongPassphrase(t *testing.T) {
	t.Parallel()

	// Far past bcrypt's 72-byte limit; the pre-hash must keep every
	// byte significant
	long := make([]byte, 200)
	for i := range long {
		long[i] = byte('a' + i%26)
	}

	record, err := auth.HashPassword(string(long))
	require.NoError(t, err)

	assert.True(t, auth.VerifyPassword(string(long), record))

	tweaked := append([]byte(nil), long...)
	tweaked[150] ^= 0x01
	assert.False(t, auth.VerifyPassword(string(tweaked), record))
}

func TestVerifyPasswordMalformedRecord(t *testing.T) {
	t.Parallel()

	for _, record := range []string{
		"",
		"not-base64!!!",
		base64.StdEncoding.EncodeToString([]byte("not a bcrypt hash")),
	} {
		assert.False(t, auth.VerifyPassword("Secr3t!", record))
	}
}

func TestPasswordNeedsRehash(t *testing.T) {
	t.Parallel()

	current, err := auth.HashPassword("Secr3t!")
	require.NoError(t, err)
	assert.False(t, auth.PasswordNeedsRehash(current))

	weak := weakRecord(t, "Secr3t!")
	assert.True(t, auth.VerifyPassword("Secr3t!", weak))
	assert.True(t, auth.PasswordNeedsRehash(weak))

	assert.True(t, auth.PasswordNeedsRehash("not-base64!!!"))
}
