package otp

import (
	"crypto/hmac"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// maxModDigits is the widest code whose modulus still truncates a 31-bit value.
	maxModDigits = 9
	// maxPadDigits caps zero padding for oversized digit counts.
	maxPadDigits = 64
)

// HOTP computes an RFC 4226 code for key and counter.
//
// The counter is encoded as an 8 byte big-endian integer, signed with HMAC
// under alg and reduced by dynamic truncation to digits decimal digits,
// left-padded with zeros. From ten digits up the full 31-bit value is kept
// and padded to at most 64 characters. A digits value below one yields the
// unreduced 31-bit value.
func HOTP(key []byte, counter uint64, digits int, alg Algorithm) (string, error) {
	newHash, err := alg.hasher()
	if err != nil {
		return "", err
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(newHash, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	value := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	if digits >= 1 && digits <= maxModDigits {
		value %= pow10(digits)
	}

	code := strconv.FormatUint(uint64(value), 10)
	if width := min(digits, maxPadDigits); len(code) < width {
		code = strings.Repeat("0", width-len(code)) + code
	}
	return code, nil
}

// Code is a generated TOTP code together with the instant it stops being current.
type Code struct {
	// Value is the zero-padded decimal code.
	Value string
	// ExpiresAt is the Unix millisecond at which the next time step begins.
	ExpiresAt int64
}

// TOTP computes an RFC 6238 code for the time step containing timestampMillis.
//
// The counter is floor(floor(timestampMillis/1000)/period). ExpiresAt is the
// first millisecond of the next step; sampling exactly on a step boundary
// reports the boundary after it, so ExpiresAt is always strictly greater than
// timestampMillis.
func TOTP(key []byte, timestampMillis int64, period, digits int, alg Algorithm) (Code, error) {
	if period < 1 || int64(period) > MaxPeriod {
		return Code{}, fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}
	if timestampMillis < 0 {
		return Code{}, fmt.Errorf("%w: %d", ErrInvalidTimestamp, timestampMillis)
	}
	expiresAt, ok := expiry(timestampMillis, period)
	if !ok {
		return Code{}, fmt.Errorf("%w: %d has no representable next step", ErrInvalidTimestamp, timestampMillis)
	}

	counter := uint64(timestampMillis/1000) / uint64(period)
	value, err := HOTP(key, counter, digits, alg)
	if err != nil {
		return Code{}, err
	}

	return Code{Value: value, ExpiresAt: expiresAt}, nil
}

// expiry returns (floor(ts/window)+1)*window for a window of period seconds,
// or false when that boundary does not fit in an int64. period must be in
// [1, MaxPeriod].
func expiry(timestampMillis int64, period int) (int64, bool) {
	window := int64(period) * 1000
	next := timestampMillis/window + 1
	if next > math.MaxInt64/window {
		return 0, false
	}
	return next * window, true
}

func pow10(n int) uint32 {
	p := uint32(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
