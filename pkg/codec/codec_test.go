package codec

import (
	"bytes"
	"testing"

	"github.com/arclet/arclet/pkg/arcerr"
)

func TestBase64RoundTripStandard(t *testing.T) {
	data := []byte("arclet storage layer")
	enc := Base64Encode(data, false)
	dec, err := Base64Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(dec, data) {
		t.Fatalf("roundtrip mismatch: got %q want %q", dec, data)
	}
}

func TestBase64RoundTripURLSafe(t *testing.T) {
	data := []byte{0xfb, 0xff, 0xfe, 0x00, 0x01}
	enc := Base64Encode(data, true)
	dec, err := Base64Decode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(dec, data) {
		t.Fatalf("roundtrip mismatch: got %x want %x", dec, data)
	}
}

func TestBase64DecodeAcceptsUnpaddedURLSafe(t *testing.T) {
	data := []byte{0xfb, 0xff, 0xfe}
	enc := Base64Encode(data, true)
	trimmed := enc
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '=' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	dec, err := Base64Decode(trimmed)
	if err != nil {
		t.Fatalf("decode unpadded: %v", err)
	}
	if !bytes.Equal(dec, data) {
		t.Fatalf("mismatch: got %x want %x", dec, data)
	}
}

func TestBase64DecodeInvalidInput(t *testing.T) {
	_, err := Base64Decode("not valid base64!!!")
	if !arcerr.Is(err, arcerr.InvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestHexRoundTrip(t *testing.T) {
	data := []byte{0x00, 0xab, 0xff, 0x10}
	enc := HexEncode(data, false)
	dec, err := HexDecode(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(dec, data) {
		t.Fatalf("roundtrip mismatch: got %x want %x", dec, data)
	}
}

func TestHexEncodeUppercase(t *testing.T) {
	got := HexEncode([]byte{0xab, 0xcd}, true)
	if got != "ABCD" {
		t.Fatalf("expected ABCD, got %s", got)
	}
}

func TestHexDecodeOddLength(t *testing.T) {
	_, err := HexDecode("abc")
	if !arcerr.Is(err, arcerr.InvalidInput) {
		t.Fatalf("expected InvalidInput for odd-length hex, got %v", err)
	}
}

func TestHexDecodeInvalidDigit(t *testing.T) {
	_, err := HexDecode("zz")
	if !arcerr.Is(err, arcerr.InvalidInput) {
		t.Fatalf("expected InvalidInput for invalid hex digit, got %v", err)
	}
}
