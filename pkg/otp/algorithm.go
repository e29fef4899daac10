package otp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"
)

// Algorithm represents the HMAC hash algorithm used for OTP generation.
type Algorithm string

const (
	// AlgorithmSHA1 uses HMAC-SHA1 (20 byte digest). This is the RFC 4226 default.
	AlgorithmSHA1 Algorithm = "SHA-1"
	// AlgorithmSHA256 uses HMAC-SHA256 (32 byte digest).
	AlgorithmSHA256 Algorithm = "SHA-256"
	// AlgorithmSHA384 uses HMAC-SHA384 (48 byte digest).
	AlgorithmSHA384 Algorithm = "SHA-384"
	// AlgorithmSHA512 uses HMAC-SHA512 (64 byte digest).
	AlgorithmSHA512 Algorithm = "SHA-512"
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA384, AlgorithmSHA512}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA384, AlgorithmSHA512:
		return true
	}
	return false
}

// Compact returns the algorithm name without the dash ("SHA1"), the spelling
// most authenticator apps expect in the algorithm query parameter.
func (a Algorithm) Compact() string {
	return strings.ReplaceAll(string(a), "-", "")
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	return string(a)
}

// hasher returns the hash constructor backing a.
func (a Algorithm) hasher() (func() hash.Hash, error) {
	switch a {
	case AlgorithmSHA1:
		return sha1.New, nil
	case AlgorithmSHA256:
		return sha256.New, nil
	case AlgorithmSHA384:
		return sha512.New384, nil
	case AlgorithmSHA512:
		return sha512.New, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
}

// ParseAlgorithm strictly maps an algorithm name to an Algorithm. Both the
// canonical ("SHA-256") and compact ("SHA256") spellings are accepted, case
// insensitively. Anything else returns ErrUnsupportedAlgorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SHA-1", "SHA1":
		return AlgorithmSHA1, nil
	case "SHA-256", "SHA256":
		return AlgorithmSHA256, nil
	case "SHA-384", "SHA384":
		return AlgorithmSHA384, nil
	case "SHA-512", "SHA512":
		return AlgorithmSHA512, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
}

// NormalizeAlgorithm leniently maps free-form input from export files to an
// Algorithm. Non-alphanumeric characters are stripped and letters uppercased
// before matching. Unrecognized or empty input silently maps to SHA-1, the
// algorithm every exporting app falls back to.
func NormalizeAlgorithm(s string) Algorithm {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	switch b.String() {
	case "SHA256":
		return AlgorithmSHA256
	case "SHA384":
		return AlgorithmSHA384
	case "SHA512":
		return AlgorithmSHA512
	default:
		return AlgorithmSHA1
	}
}
