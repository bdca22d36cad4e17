// Package comparablestring implements numeric collation over strings: two
// strings are ordered by treating their upper-cased characters as digits of
// a base-36 integer, not by plain lexicographic byte order. "Z" therefore
// sorts below "10", since as numbers 35 < 36 even though 'Z' > '1' in ASCII.
//
// © 2025 arclet authors. MIT License.
package comparablestring

import (
	"math/big"
	"strings"
)

// charset gives each character's digit value; unrecognized characters
// (outside 0-9A-Z) contribute a digit value of zero rather than propagating
// a negative index into the accumulated magnitude.
const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ComparableString wraps a string normalized to upper-case for ordering
// purposes; the original case is not retained.
type ComparableString struct {
	normalized string
}

// New constructs a ComparableString from message, upper-casing it.
func New(message string) ComparableString {
	return ComparableString{normalized: strings.ToUpper(message)}
}

// String returns the normalized (upper-cased) string.
func (c ComparableString) String() string { return c.normalized }

// value returns the base-36 big integer this string's characters encode,
// most significant digit first.
func (c ComparableString) value() *big.Int {
	base := big.NewInt(int64(len(charset)))
	val := new(big.Int)
	for i := 0; i < len(c.normalized); i++ {
		digit := strings.IndexByte(charset, c.normalized[i])
		if digit < 0 {
			digit = 0
		}
		val.Mul(val, base)
		val.Add(val, big.NewInt(int64(digit)))
	}
	return val
}

// Compare orders a and b by numeric collation: negative if a < b, zero if
// equal, positive if a > b. Suitable as a tree.Comparator.
func Compare(a, b ComparableString) int {
	return a.value().Cmp(b.value())
}

// Equal reports whether a and b collate to the same value.
func Equal(a, b ComparableString) bool { return Compare(a, b) == 0 }

// Less reports whether a collates below b.
func Less(a, b ComparableString) bool { return Compare(a, b) < 0 }

// Difference returns a - b as a big integer.
func Difference(a, b ComparableString) *big.Int {
	return new(big.Int).Sub(a.value(), b.value())
}
