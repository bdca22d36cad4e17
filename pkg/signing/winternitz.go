// © 2025 arclet authors. MIT License.
package signing

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/arclet/arclet/pkg/arcerr"
	"github.com/arclet/arclet/pkg/codec"
)

// This Winternitz scheme uses 32 secrets, each a uniformly random 256-bit
// value, chained through SHA-256 up to 256 times. This differs from the
// Blake2b/34-chunk variant some hash-based signature libraries use; the
// secret count and hash function are fixed here rather than
// delegated to a third-party scheme.
const (
	winternitzChunks    = 32
	winternitzChunkSize = 32
	winternitzMaxIter   = 256
)

type winternitzKeyPair struct {
	// secretKey holds the 32 raw 32-byte secrets; nil for a public-only pair.
	secretKey [][]byte
	publicKey [][]byte // 32 chunks, each SHA-256 iterated 256 times over the secret
}

func newWinternitzKeyPair() (*winternitzKeyPair, error) {
	sk := make([][]byte, winternitzChunks)
	pk := make([][]byte, winternitzChunks)
	for i := range sk {
		secret := make([]byte, winternitzChunkSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, arcerr.Wrap(arcerr.IO, "signing: winternitz keygen", err)
		}
		sk[i] = secret
		pk[i] = iterateSHA256(secret, winternitzMaxIter)
	}
	return &winternitzKeyPair{secretKey: sk, publicKey: pk}, nil
}

// newWinternitzKeyPairFromReader draws all 32 secrets from r instead of
// crypto/rand, for reproducible fixture generation.
func newWinternitzKeyPairFromReader(r io.Reader) (*winternitzKeyPair, error) {
	sk := make([][]byte, winternitzChunks)
	pk := make([][]byte, winternitzChunks)
	for i := range sk {
		secret := make([]byte, winternitzChunkSize)
		if _, err := io.ReadFull(r, secret); err != nil {
			return nil, arcerr.Wrap(arcerr.IO, "signing: winternitz seeded keygen", err)
		}
		sk[i] = secret
		pk[i] = iterateSHA256(secret, winternitzMaxIter)
	}
	return &winternitzKeyPair{secretKey: sk, publicKey: pk}, nil
}

func winternitzFromPublicKey(pubKey []byte) (*winternitzKeyPair, error) {
	if len(pubKey) != winternitzChunks*winternitzChunkSize {
		return nil, arcerr.New(arcerr.InvalidInput, "signing: winternitz public key has wrong length")
	}
	pk := make([][]byte, winternitzChunks)
	for i := range pk {
		pk[i] = append([]byte{}, pubKey[i*winternitzChunkSize:(i+1)*winternitzChunkSize]...)
	}
	return &winternitzKeyPair{publicKey: pk}, nil
}

func iterateSHA256(seed []byte, n int) []byte {
	h := append([]byte{}, seed...)
	for i := 0; i < n; i++ {
		sum := sha256.Sum256(h)
		h = sum[:]
	}
	return h
}

func (k *winternitzKeyPair) KeyType() KeyType { return KeyTypeWinternitz }

func (k *winternitzKeyPair) PublicKey() []byte {
	return bytes.Join(k.publicKey, nil)
}

// Sign hashes msg to 32 bytes and, for each chunk i, uses byte b_i of the
// digest as the iteration count: SHA-256 is applied (256 - b_i) times to
// secret i. The result is the
// concatenation of all 32 chunks — a one-time-use 1024-byte signature,
// Base64-encoded for the public surface.
func (k *winternitzKeyPair) Sign(msg []byte) (string, error) {
	if k.secretKey == nil {
		return "", arcerr.New(arcerr.NoPrivateKey, "signing: winternitz keypair has no private key")
	}
	digest := sha256.Sum256(msg)
	sigChunks := make([][]byte, winternitzChunks)
	for i, b := range digest[:winternitzChunks] {
		sigChunks[i] = iterateSHA256(k.secretKey[i], winternitzMaxIter-int(b))
	}
	return codec.Base64Encode(bytes.Join(sigChunks, nil), false), nil
}

// Verify applies SHA-256 b_i more times to each signature chunk and checks
// equality with the public key. A signature whose decoded length doesn't
// match the fixed 32*32 byte size is rejected before hashing.
func (k *winternitzKeyPair) Verify(msg []byte, signatureB64 string) (bool, error) {
	raw, err := codec.Base64Decode(signatureB64)
	if err != nil {
		return false, err
	}
	if len(raw) != winternitzChunks*winternitzChunkSize {
		return false, nil
	}
	digest := sha256.Sum256(msg)
	for i, b := range digest[:winternitzChunks] {
		chunk := raw[i*winternitzChunkSize : (i+1)*winternitzChunkSize]
		recovered := iterateSHA256(chunk, int(b))
		if !bytes.Equal(recovered, k.publicKey[i]) {
			return false, nil
		}
	}
	return true, nil
}
