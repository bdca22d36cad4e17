// Package signing implements arclet's polymorphic digital-signature
// capability: ECDSA over secp256k1 and a Winternitz one-time signature
// scheme over SHA-256. Both expose the same KeyPair interface so callers
// (notably pkg/signable) don't need to know which scheme backs a given key.
//
// © 2025 arclet authors. MIT License.
package signing

import "io"

// KeyType tags which concrete scheme a KeyPair implements.
type KeyType uint8

const (
	// KeyTypeNone signals an invalid/null keypair; NewKeyPair and
	// PublicOnly both return a nil KeyPair and a nil error for it.
	KeyTypeNone KeyType = iota
	KeyTypeECDSA
	KeyTypeWinternitz
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeECDSA:
		return "ECDSA"
	case KeyTypeWinternitz:
		return "Winternitz"
	default:
		return "None"
	}
}

// KeyPair is the capability every signature scheme exposes. A public-only
// instance (constructed via PublicOnly) has no private key material and
// Sign always fails with arcerr.NoPrivateKey.
type KeyPair interface {
	KeyType() KeyType
	PublicKey() []byte
	Sign(msg []byte) (string, error)
	Verify(msg []byte, signatureB64 string) (bool, error)
}

// NewKeyPair generates a fresh keypair (private and public halves) for kind.
func NewKeyPair(kind KeyType) (KeyPair, error) {
	switch kind {
	case KeyTypeECDSA:
		return newEcdsaKeyPair()
	case KeyTypeWinternitz:
		return newWinternitzKeyPair()
	default:
		return nil, nil
	}
}

// NewKeyPairFromReader generates a keypair for kind using r as the entropy
// source instead of crypto/rand. Intended for reproducible fixture
// generation (see tools/keygen); r should not be reused for production key
// material.
func NewKeyPairFromReader(kind KeyType, r io.Reader) (KeyPair, error) {
	switch kind {
	case KeyTypeECDSA:
		return newEcdsaKeyPairFromReader(r)
	case KeyTypeWinternitz:
		return newWinternitzKeyPairFromReader(r)
	default:
		return nil, nil
	}
}

// PublicOnly constructs a KeyPair that can verify but never sign.
func PublicOnly(kind KeyType, pubKey []byte) (KeyPair, error) {
	switch kind {
	case KeyTypeECDSA:
		return ecdsaFromPublicKey(pubKey)
	case KeyTypeWinternitz:
		return winternitzFromPublicKey(pubKey)
	default:
		return nil, nil
	}
}
