package otp

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
)

// Encoding identifies how a shared secret string is encoded.
type Encoding string

const (
	// EncodingBase32 is RFC 4648 Base32, the encoding used by otpauth URIs.
	EncodingBase32 Encoding = "base32"
	// EncodingHex is hexadecimal text.
	EncodingHex Encoding = "hex"
	// EncodingASCII uses the secret's bytes verbatim as the key.
	EncodingASCII Encoding = "ascii"
)

var base32NoPadding = base32.StdEncoding.WithPadding(base32.NoPadding)

// DecodeKey converts a secret string into raw HMAC key bytes.
//
// Base32 input may be lowercase and may carry trailing '=' padding; both are
// normalized away before a strict decode. Hex input must have an even number
// of hex digits.
func DecodeKey(secret string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingHex:
		key, err := hex.DecodeString(secret)
		if err != nil {
			return nil, fmt.Errorf("%w: hex: %v", ErrInvalidEncoding, err)
		}
		return key, nil
	case EncodingASCII:
		return []byte(secret), nil
	case EncodingBase32:
		normalized := strings.ToUpper(strings.TrimRight(secret, "="))
		key, err := base32NoPadding.DecodeString(normalized)
		if err != nil {
			return nil, fmt.Errorf("%w: base32: %v", ErrInvalidEncoding, err)
		}
		return key, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, string(enc))
}

// EncodeKey renders raw key bytes as unpadded uppercase Base32.
func EncodeKey(key []byte) string {
	return base32NoPadding.EncodeToString(key)
}

// GenerateSecret generates a cryptographically random secret key.
// The secret is returned as a base32-encoded string suitable for use
// in Record.Secret.
func GenerateSecret() (string, error) {
	// 160 bits, the RFC 4226 recommended key length
	secret := make([]byte, 20)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("otp: failed to generate random secret: %w", err)
	}
	return EncodeKey(secret), nil
}
