// Package codec implements the Base64 and hex encodings used across arclet's
// crypto and storage surfaces: standard Base64 for encryption/signature
// payloads, URL-safe Base64 for Argon2d digests, and hex for raw byte
// interchange.
//
// © 2025 arclet authors. MIT License.
package codec

import (
	"encoding/base64"
	"strings"

	"github.com/arclet/arclet/pkg/arcerr"
)

// Base64Encode encodes b using the standard alphabet, or the URL-safe
// alphabet when urlSafe is true. Padding is always emitted.
func Base64Encode(b []byte, urlSafe bool) string {
	if urlSafe {
		return base64.URLEncoding.EncodeToString(b)
	}
	return base64.StdEncoding.EncodeToString(b)
}

// Base64Decode accepts both the standard and URL-safe alphabets, with or
// without padding, by normalizing to the standard alphabet before decoding.
func Base64Decode(s string) ([]byte, error) {
	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(s)
	if m := len(normalized) % 4; m != 0 {
		normalized += strings.Repeat("=", 4-m)
	}
	b, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, arcerr.Wrap(arcerr.InvalidInput, "codec: invalid base64", err)
	}
	return b, nil
}

// HexDecode converts a hex digit-pair string into raw bytes. Odd-length
// input fails with arcerr.InvalidInput.
func HexDecode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, arcerr.New(arcerr.InvalidInput, "codec: odd-length hex string")
	}
	out := make([]byte, len(s)/2)
	for i := 0; i < len(out); i++ {
		hi, ok := hexVal(s[2*i])
		if !ok {
			return nil, arcerr.New(arcerr.InvalidInput, "codec: invalid hex digit")
		}
		lo, ok := hexVal(s[2*i+1])
		if !ok {
			return nil, arcerr.New(arcerr.InvalidInput, "codec: invalid hex digit")
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

// HexEncode is the inverse of HexDecode.
func HexEncode(b []byte, uppercase bool) string {
	const lower = "0123456789abcdef"
	const upper = "0123456789ABCDEF"
	alphabet := lower
	if uppercase {
		alphabet = upper
	}
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[2*i] = alphabet[c>>4]
		out[2*i+1] = alphabet[c&0x0f]
	}
	return string(out)
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
