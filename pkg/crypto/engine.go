package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

const (
	// EncryptMaxData is the maximum plaintext size accepted by Encrypt
	EncryptMaxData = 2048

	// DecryptMaxData is the maximum package size accepted by Decrypt
	DecryptMaxData = 4096

	// KeySize is the symmetric cipher key size in bytes
	KeySize = 32

	// IVSize is the initialization vector size in bytes
	IVSize = 16

	// Separator joins the signature, IV and ciphertext segments
	Separator = ":::"
)

// Engine provides the encrypt/sign envelope and derived-key operations.
// It holds no state and is safe for concurrent use.
type Engine struct{}

// NewEngine returns a new crypto engine
func NewEngine() *Engine {
	return &Engine{}
}

// Encrypt seals data under key and packages it for transport. The result
// is signed so tampering is detected before any decryption is attempted.
// Inputs larger than EncryptMaxData are rejected.
func (e *Engine) Encrypt(data, key string) (string, error) {
	if len(data) > EncryptMaxData {
		return "", ErrDataTooLarge
	}

	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", errors.Join(ErrRandomSource, err)
	}

	block, err := aes.NewCipher(cipherKey(key))
	if err != nil {
		return "", err
	}

	padded := pad([]byte(data), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCTR(block, iv).XORKeyStream(ciphertext, padded)

	return sign(pack(ciphertext, iv), key), nil
}

// Decrypt verifies and unseals a transport package. It returns the empty
// string on any failure: oversized input, malformed packaging, invalid
// base64 or a signature mismatch. Failure modes are indistinguishable to
// the caller.
func (e *Engine) Decrypt(raw, key string) string {
	if len(raw) > DecryptMaxData {
		return ""
	}

	packed, ok := verify(raw, key)
	if !ok {
		return ""
	}

	iv, ciphertext, ok := unpack(packed)
	if !ok {
		return ""
	}

	block, err := aes.NewCipher(cipherKey(key))
	if err != nil {
		return ""
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, iv).XORKeyStream(plaintext, ciphertext)

	return string(unpad(plaintext))
}

// cipherKey normalizes an arbitrary caller key to the fixed AES-256 key size
func cipherKey(key string) []byte {
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}

// sign prepends a keyed signature over the packaged data. The signing key
// is the SHA-384 digest of the caller key, never the raw key itself.
func sign(data, key string) string {
	sigKey := sha512.Sum384([]byte(key))
	mac := hmac.New(sha256.New, []byte(hex.EncodeToString(sigKey[:])))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil)) + Separator + data
}

// verify checks the package signature in constant time and returns the
// data segment on success
func verify(raw, key string) (string, bool) {
	if !strings.Contains(raw, Separator) {
		return "", false
	}

	parts := strings.SplitN(raw, Separator, 3)
	if len(parts) != 2 {
		return "", false
	}

	expected := sign(parts[1], key)
	if subtle.ConstantTimeCompare([]byte(raw), []byte(expected)) != 1 {
		return "", false
	}

	return parts[1], true
}

// pack produces a storage/transfer safe package of ciphertext and IV
func pack(ciphertext, iv []byte) string {
	inner := base64.StdEncoding.EncodeToString(iv) +
		Separator +
		base64.StdEncoding.EncodeToString(ciphertext)
	return base64.StdEncoding.EncodeToString([]byte(inner))
}

// unpack extracts the IV and ciphertext from a package
func unpack(packed string) (iv, ciphertext []byte, ok bool) {
	inner, err := base64.StdEncoding.DecodeString(packed)
	if err != nil {
		return nil, nil, false
	}

	parts := strings.SplitN(string(inner), Separator, 3)
	if len(parts) != 2 {
		return nil, nil, false
	}

	iv, err = base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(iv) != IVSize {
		return nil, nil, false
	}

	ciphertext, err = base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, nil, false
	}

	return iv, ciphertext, true
}

// pad applies PKCS-style byte padding to a multiple of the block size.
// Aligned input still gains a full block so the pad count is unambiguous.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpad strips padding by reading the final byte as the pad count
func unpad(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	n := int(data[len(data)-1])
	if n <= 0 || n > len(data) {
		return nil
	}
	return data[:len(data)-n]
}
