package otp

import "time"

// TOTPOptions configures GenerateTOTP. Zero values select the defaults:
// 6 digits, SHA-1, base32 secret, 30 second period and the current time.
type TOTPOptions struct {
	Digits    int
	Algorithm Algorithm
	Encoding  Encoding
	Period    int
	Time      time.Time
}

func (o TOTPOptions) withDefaults() TOTPOptions {
	if o.Digits == 0 {
		o.Digits = DefaultDigits
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Encoding == "" {
		o.Encoding = EncodingBase32
	}
	if o.Period == 0 {
		o.Period = DefaultPeriod
	}
	if o.Time.IsZero() {
		o.Time = time.Now()
	}
	return o
}

// HOTPOptions configures GenerateHOTP. Zero values select 6 digits, SHA-1 and
// a base32 secret. Counter zero is a valid moving factor.
type HOTPOptions struct {
	Digits    int
	Algorithm Algorithm
	Encoding  Encoding
	Counter   uint64
}

func (o HOTPOptions) withDefaults() HOTPOptions {
	if o.Digits == 0 {
		o.Digits = DefaultDigits
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Encoding == "" {
		o.Encoding = EncodingBase32
	}
	return o
}

// GenerateTOTP decodes secret and returns the code current at opts.Time along
// with its expiry.
func GenerateTOTP(secret string, opts TOTPOptions) (Code, error) {
	opts = opts.withDefaults()
	key, err := DecodeKey(secret, opts.Encoding)
	if err != nil {
		return Code{}, err
	}
	return TOTP(key, opts.Time.UnixMilli(), opts.Period, opts.Digits, opts.Algorithm)
}

// GenerateHOTP decodes secret and returns the code for opts.Counter.
func GenerateHOTP(secret string, opts HOTPOptions) (string, error) {
	opts = opts.withDefaults()
	key, err := DecodeKey(secret, opts.Encoding)
	if err != nil {
		return "", err
	}
	return HOTP(key, opts.Counter, opts.Digits, opts.Algorithm)
}

// Generate returns the current code for a record whose secret is base32.
// The record's digits are used as stored, without defaulting. For HOTP
// records the code is computed at the stored counter and ExpiresAt is zero.
func Generate(r Record, at time.Time) (Code, error) {
	if err := r.Validate(); err != nil {
		return Code{}, err
	}
	key, err := DecodeKey(r.Secret, EncodingBase32)
	if err != nil {
		return Code{}, err
	}
	switch p := r.Params.(type) {
	case CounterBased:
		value, err := HOTP(key, p.Counter, r.Digits, r.Algorithm)
		if err != nil {
			return Code{}, err
		}
		return Code{Value: value}, nil
	case TimeBased:
		return TOTP(key, at.UnixMilli(), p.Period, r.Digits, r.Algorithm)
	}
	return Code{}, ErrInvalidRecord
}
