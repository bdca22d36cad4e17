// Package signable composes pkg/hashutil and pkg/signing to let any type
// produce an authenticated payload: a canonical fingerprint plus a stored
// signature and key-type tag, verifiable without re-deriving the signer's
// private key.
//
// © 2025 arclet authors. MIT License.
package signable

import (
	"github.com/arclet/arclet/internal/filestring"
	"github.com/arclet/arclet/pkg/hashutil"
	"github.com/arclet/arclet/pkg/signing"
)

// Signable is anything that can produce a canonical ordered field list for
// fingerprinting. Implementations should return the same fields in the same
// order on every call for a given logical value.
type Signable interface {
	CanonicalFields() [][]byte
}

// Fingerprint returns the SHA-256 hex digest of the canonical file-string
// packing of s's fields.
func Fingerprint(s Signable) string {
	packed := filestring.Pack(s.CanonicalFields())
	return hashutil.SHA256Hex(packed, false)
}

// Signed bundles a signature alongside the key-type that produced it, as
// stored beside a Signable object.
type Signed struct {
	KeyType   signing.KeyType
	Signature string
}

// Sign fingerprints s and signs the fingerprint with kp.
func Sign(s Signable, kp signing.KeyPair) (Signed, error) {
	fp := Fingerprint(s)
	sig, err := kp.Sign([]byte(fp))
	if err != nil {
		return Signed{}, err
	}
	return Signed{KeyType: kp.KeyType(), Signature: sig}, nil
}

// Verify re-derives s's fingerprint and checks it against signed.Signature
// using pub, a public-key-only keypair of the matching type.
func Verify(s Signable, signed Signed, pub signing.KeyPair) (bool, error) {
	if pub.KeyType() != signed.KeyType {
		return false, nil
	}
	fp := Fingerprint(s)
	return pub.Verify([]byte(fp), signed.Signature)
}
