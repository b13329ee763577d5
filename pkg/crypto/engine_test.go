package crypto_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/forumkit/pkg/crypto"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()
	engine := crypto.NewEngine()

	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"short", "hello"},
		{"block aligned", strings.Repeat("a", 16)},
		{"two blocks", strings.Repeat("b", 32)},
		{"unicode", "Hello 世界 🌍"},
		{"json payload", `{"user":{"id":42,"username":"alice"}}`},
		{"near limit", strings.Repeat("x", 2048)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sealed, err := engine.Encrypt(tt.data, "secret-key")
			require.NoError(t, err)
			require.NotEqual(t, tt.data, sealed)

			assert.Equal(t, tt.data, engine.Decrypt(sealed, "secret-key"))
		})
	}
}

func TestEncryptSizeLimit(t *testing.T) {
	t.Parallel()
	engine := crypto.NewEngine()

	_, err := engine.Encrypt(strings.Repeat("a", 2049), "key")
	require.ErrorIs(t, err, crypto.ErrDataTooLarge)
}

func TestDecryptWrongKey(t *testing.T) {
	t.Parallel()
	engine := crypto.NewEngine()

	sealed, err := engine.Encrypt("sensitive payload", "key-one")
	require.NoError(t, err)

	assert.Empty(t, engine.Decrypt(sealed, "key-two"))
}

func TestDecryptMalformedInput(t *testing.T) {
	t.Parallel()
	engine := crypto.NewEngine()

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no separator", "deadbeef"},
		{"too many segments", "aa:::bb:::cc"},
		{"invalid base64 package", "00ff" + ":::" + "!!!not-base64!!!"},
		{"oversized", strings.Repeat("a", 4097)},
		{"signature only", "deadbeef:::"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, engine.Decrypt(tt.raw, "key"))
		})
	}
}

func TestDecryptTamperedSignature(t *testing.T) {
	t.Parallel()
	engine := crypto.NewEngine()

	sealed, err := engine.Encrypt("integrity matters", "key")
	require.NoError(t, err)

	// Flip one hex character of the signature segment
	for i := range 4 {
		tampered := []byte(sealed)
		if tampered[i] == 'a' {
			tampered[i] = 'b'
		} else {
			tampered[i] = 'a'
		}
		if string(tampered) == sealed {
			continue
		}
		assert.Empty(t, engine.Decrypt(string(tampered), "key"))
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	t.Parallel()
	engine := crypto.NewEngine()

	sealed, err := engine.Encrypt("integrity matters", "key")
	require.NoError(t, err)

	parts := strings.SplitN(sealed, ":::", 2)
	require.Len(t, parts, 2)

	inner, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	// Corrupt a byte in the packaged payload without touching the signature
	inner[len(inner)-1] ^= 0x01
	tampered := parts[0] + ":::" + base64.StdEncoding.EncodeToString(inner)

	assert.Empty(t, engine.Decrypt(tampered, "key"))
}

func TestEncryptUniqueIV(t *testing.T) {
	t.Parallel()
	engine := crypto.NewEngine()

	first, err := engine.Encrypt("same input", "same key")
	require.NoError(t, err)
	second, err := engine.Encrypt("same input", "same key")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestEnvelopeWireFormat(t *testing.T) {
	t.Parallel()
	engine := crypto.NewEngine()

	sealed, err := engine.Encrypt("payload", "key")
	require.NoError(t, err)

	parts := strings.SplitN(sealed, ":::", 2)
	require.Len(t, parts, 2)

	// hex HMAC-SHA-256 digest
	assert.Len(t, parts[0], 64)

	inner, err := base64.StdEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	segments := strings.Split(string(inner), ":::")
	require.Len(t, segments, 2)

	iv, err := base64.StdEncoding.DecodeString(segments[0])
	require.NoError(t, err)
	assert.Len(t, iv, crypto.IVSize)
}
