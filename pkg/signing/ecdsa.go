// © 2025 arclet authors. MIT License.
package signing

import (
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/arclet/arclet/pkg/arcerr"
	"github.com/arclet/arclet/pkg/codec"
	"github.com/arclet/arclet/pkg/hashutil"
)

// ecdsaKeyPair wraps a secp256k1 keypair. privKey is nil for a public-only
// instance.
type ecdsaKeyPair struct {
	privKey *secp256k1.PrivateKey
	pubKey  *secp256k1.PublicKey
}

func newEcdsaKeyPair() (*ecdsaKeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, arcerr.Wrap(arcerr.IO, "signing: ecdsa keygen", err)
	}
	return &ecdsaKeyPair{privKey: priv, pubKey: priv.PubKey()}, nil
}

// newEcdsaKeyPairFromReader draws private key bytes from r instead of
// crypto/rand, for reproducible fixture generation. r must supply at least
// 32 bytes; the caller is responsible for r's entropy quality.
func newEcdsaKeyPairFromReader(r io.Reader) (*ecdsaKeyPair, error) {
	var buf [32]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, arcerr.Wrap(arcerr.IO, "signing: ecdsa seeded keygen", err)
	}
	priv := secp256k1.PrivKeyFromBytes(buf[:])
	return &ecdsaKeyPair{privKey: priv, pubKey: priv.PubKey()}, nil
}

func ecdsaFromPublicKey(pubKey []byte) (*ecdsaKeyPair, error) {
	pk, err := secp256k1.ParsePubKey(pubKey)
	if err != nil {
		return nil, arcerr.Wrap(arcerr.InvalidInput, "signing: invalid ecdsa public key", err)
	}
	return &ecdsaKeyPair{pubKey: pk}, nil
}

func (k *ecdsaKeyPair) KeyType() KeyType { return KeyTypeECDSA }

func (k *ecdsaKeyPair) PublicKey() []byte {
	return k.pubKey.SerializeCompressed()
}

// Sign produces a DER-encoded signature over SHA-256(msg), Base64-encoded for
// transport.
func (k *ecdsaKeyPair) Sign(msg []byte) (string, error) {
	if k.privKey == nil {
		return "", arcerr.New(arcerr.NoPrivateKey, "signing: ecdsa keypair has no private key")
	}
	digest := hashutil.SHA256Raw(msg)
	sig := ecdsa.Sign(k.privKey, digest[:])
	return codec.Base64Encode(sig.Serialize(), false), nil
}

// Verify accepts only DER-encoded signatures, matching what Sign produces and
// what standard secp256k1 implementations emit on the wire.
func (k *ecdsaKeyPair) Verify(msg []byte, signatureB64 string) (bool, error) {
	raw, err := codec.Base64Decode(signatureB64)
	if err != nil {
		return false, err
	}
	sig, err := ecdsa.ParseDERSignature(raw)
	if err != nil {
		return false, nil //nolint:nilerr // malformed signature verifies to false, not an error
	}
	digest := hashutil.SHA256Raw(msg)
	return sig.Verify(digest[:], k.pubKey), nil
}
