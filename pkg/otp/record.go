package otp

import (
	"fmt"
	"math"
	"strings"
)

// Kind distinguishes time-based from counter-based records.
type Kind string

const (
	// KindTOTP represents Time-based OTP (RFC 6238).
	KindTOTP Kind = "totp"
	// KindHOTP represents Counter-based OTP (RFC 4226).
	KindHOTP Kind = "hotp"
)

// Defaults applied when an export omits a parameter.
const (
	DefaultDigits    = 6
	DefaultPeriod    = 30
	DefaultAlgorithm = AlgorithmSHA1
)

// MaxPeriod is the longest TOTP period, in seconds, whose millisecond window
// fits in an int64.
const MaxPeriod int64 = math.MaxInt64 / 1000

// Params carries the kind-specific half of a Record. It is implemented only
// by TimeBased and CounterBased, so a record holds a period or a counter but
// never both.
type Params interface {
	Kind() Kind
	params()
}

// TimeBased holds the TOTP step length in seconds.
type TimeBased struct {
	Period int
}

// Kind implements Params.
func (TimeBased) Kind() Kind { return KindTOTP }
func (TimeBased) params()    {}

// CounterBased holds the HOTP moving factor.
type CounterBased struct {
	Counter uint64
}

// Kind implements Params.
func (CounterBased) Kind() Kind { return KindHOTP }
func (CounterBased) params()    {}

// Record is the canonical, provider-agnostic description of one OTP account.
type Record struct {
	// Label is the display name; it may embed the issuer as "issuer:account".
	Label string
	// Secret is the shared secret exactly as the provider exported it.
	Secret string
	// Issuer is the optional provider or service name.
	Issuer string
	// Algorithm is the HMAC hash algorithm.
	Algorithm Algorithm
	// Digits is the code length.
	Digits int
	// Params is TimeBased for TOTP and CounterBased for HOTP.
	Params Params
}

// Kind returns the record's OTP kind, or "" when Params is unset.
func (r Record) Kind() Kind {
	if r.Params == nil {
		return ""
	}
	return r.Params.Kind()
}

// Period returns the TOTP period and true for time-based records.
func (r Record) Period() (int, bool) {
	p, ok := r.Params.(TimeBased)
	return p.Period, ok
}

// Counter returns the HOTP counter and true for counter-based records.
func (r Record) Counter() (uint64, bool) {
	p, ok := r.Params.(CounterBased)
	return p.Counter, ok
}

// Validate checks the structural invariants of a record. Digits are only
// required to be set; out-of-range widths are left to the engine.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Secret) == "" {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidRecord)
	}
	if !r.Algorithm.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrUnsupportedAlgorithm)
	}
	switch p := r.Params.(type) {
	case TimeBased:
		if p.Period < 1 || int64(p.Period) > MaxPeriod {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrInvalidPeriod)
		}
	case CounterBased:
	default:
		return fmt.Errorf("%w: missing totp/hotp parameters", ErrInvalidRecord)
	}
	return nil
}
