// Package aead implements arclet's symmetric confidentiality-only cipher:
// AES-128-CBC with a random 64-hex-char prefix folded into the plaintext and
// a random IV. This is NOT an authenticated cipher — no integrity check is
// performed on decrypt; see DESIGN.md for the corrected IV-handling contract
// this package implements instead of the literal (buggy) source behavior.
//
// © 2025 arclet authors. MIT License.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/arclet/arclet/pkg/arcerr"
	"github.com/arclet/arclet/pkg/codec"
	"github.com/arclet/arclet/pkg/hashutil"
)

const (
	keySize   = 16 // AES-128
	blockSize = aes.BlockSize
)

// EncryptionKey is an AES-128 symmetric key.
type EncryptionKey struct {
	key []byte
}

// NewEncryptionKey generates a fresh random AES-128 key.
func NewEncryptionKey() (*EncryptionKey, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, arcerr.Wrap(arcerr.IO, "aead: key generation", err)
	}
	return &EncryptionKey{key: key}, nil
}

// KeyFromBytes wraps an existing 16-byte key, e.g. recovered from storage.
func KeyFromBytes(key []byte) (*EncryptionKey, error) {
	if len(key) != keySize {
		return nil, arcerr.New(arcerr.InvalidInput, "aead: key must be 16 bytes")
	}
	return &EncryptionKey{key: append([]byte{}, key...)}, nil
}

// Encrypt implements the documented contract: prefix the plaintext (base64
// encoded) with a random 64-char SHA-256 hex string, PKCS#7-pad, CBC-encrypt
// under a fresh random IV, and prepend the IV to the ciphertext before
// Base64-encoding the whole thing. Prepending the IV is deliberate — without
// it the ciphertext would be unrecoverable, since CBC decryption needs the
// same IV used to encrypt.
func (k *EncryptionKey) Encrypt(plaintext []byte) (string, error) {
	prefix, err := hashutil.RandomSHA256(true)
	if err != nil {
		return "", arcerr.Wrap(arcerr.IO, "aead: random prefix", err)
	}
	inner := append([]byte(prefix), []byte(codec.Base64Encode(plaintext, false))...)

	block, err := aes.NewCipher(k.key)
	if err != nil {
		return "", arcerr.Wrap(arcerr.IO, "aead: cipher init", err)
	}

	iv := make([]byte, blockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", arcerr.Wrap(arcerr.IO, "aead: iv generation", err)
	}

	padded := pkcs7Pad(inner, blockSize)
	out := make([]byte, len(padded))
	cbc := cipher.NewCBCEncrypter(block, iv)
	cbc.CryptBlocks(out, padded)

	return codec.Base64Encode(append(iv, out...), false), nil
}

// Decrypt reverses Encrypt: split the IV from the front of the decoded
// ciphertext, CBC-decrypt, strip PKCS#7 padding and the 64-char random
// prefix, and Base64-decode the remainder. Any failure returns
// arcerr.DecryptFailed rather than silently returning an empty string.
func (k *EncryptionKey) Decrypt(ciphertext string) (string, error) {
	raw, err := codec.Base64Decode(ciphertext)
	if err != nil {
		return "", arcerr.Wrap(arcerr.DecryptFailed, "aead: invalid base64 ciphertext", err)
	}
	if len(raw) < blockSize || (len(raw)-blockSize)%blockSize != 0 || len(raw) == blockSize {
		return "", arcerr.New(arcerr.DecryptFailed, "aead: ciphertext has invalid length")
	}

	iv, body := raw[:blockSize], raw[blockSize:]

	block, err := aes.NewCipher(k.key)
	if err != nil {
		return "", arcerr.Wrap(arcerr.DecryptFailed, "aead: cipher init", err)
	}

	padded := make([]byte, len(body))
	cbc := cipher.NewCBCDecrypter(block, iv)
	cbc.CryptBlocks(padded, body)

	inner, err := pkcs7Unpad(padded, blockSize)
	if err != nil {
		return "", arcerr.Wrap(arcerr.DecryptFailed, "aead: bad padding", err)
	}
	if len(inner) < 64 {
		return "", arcerr.New(arcerr.DecryptFailed, "aead: plaintext shorter than random prefix")
	}

	plaintextB64 := inner[64:]
	plaintext, err := codec.Base64Decode(string(plaintextB64))
	if err != nil {
		return "", arcerr.Wrap(arcerr.DecryptFailed, "aead: invalid inner base64", err)
	}
	return string(plaintext), nil
}

func pkcs7Pad(data []byte, size int) []byte {
	padLen := size - len(data)%size
	padding := make([]byte, padLen)
	for i := range padding {
		padding[i] = byte(padLen)
	}
	return append(data, padding...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	if len(data) == 0 || len(data)%size != 0 {
		return nil, arcerr.New(arcerr.Corruption, "aead: padded data not block-aligned")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > size || padLen > len(data) {
		return nil, arcerr.New(arcerr.Corruption, "aead: invalid padding length")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, arcerr.New(arcerr.Corruption, "aead: invalid padding bytes")
		}
	}
	return data[:len(data)-padLen], nil
}
