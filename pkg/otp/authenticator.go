package otp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"
)

// Config holds OTP authenticator configuration.
type Config struct {
	// Record describes the account whose codes are verified (required).
	Record Record
	// Encoding of Record.Secret.
	// Default: base32
	Encoding Encoding
	// Skew specifies the number of time periods to check before and after
	// the current time for TOTP validation (tolerance for clock skew).
	// Default: 1
	Skew uint
	// Now returns the current time.
	// Default: time.Now
	Now func() time.Time
}

// validate checks that the configuration is valid.
func (c Config) validate() error {
	if err := c.Record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Record.Digits < 1 {
		return fmt.Errorf("%w: digits must be positive", ErrInvalidConfig)
	}
	return nil
}

// Authenticator verifies codes for a single record, for example to confirm
// that an imported account produces the same codes as the exporting app.
// It is safe for concurrent use.
type Authenticator struct {
	cfg Config
	key []byte
}

// NewAuthenticator creates a new OTP authenticator.
// The configuration is validated and an error is returned if invalid.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if cfg.Encoding == "" {
		cfg.Encoding = EncodingBase32
	}
	if cfg.Skew == 0 {
		cfg.Skew = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	key, err := DecodeKey(cfg.Record.Secret, cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	// fail at construction rather than on every check
	if _, err := cfg.Record.Algorithm.hasher(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Authenticator{cfg: cfg, key: key}, nil
}

// Authenticate validates an OTP code.
// For TOTP, it validates against the current time with skew tolerance.
// For HOTP, it validates against the record's counter.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	if counter, ok := a.cfg.Record.Counter(); ok {
		return a.check(code, counter)
	}

	period, _ := a.cfg.Record.Period()
	step := uint64(a.cfg.Now().Unix()) / uint64(period)
	skew := uint64(a.cfg.Skew)

	lo := uint64(0)
	if step > skew {
		lo = step - skew
	}
	for counter := lo; counter <= step+skew; counter++ {
		if err := a.check(code, counter); err == nil {
			return nil
		}
	}
	return ErrInvalidCode
}

// ValidateCounter validates an HOTP code and returns the new counter value.
// This method is only valid for HOTP records.
// The returned counter should be stored and used for the next validation.
func (a *Authenticator) ValidateCounter(ctx context.Context, code string, counter uint64) (uint64, error) {
	if a == nil {
		return 0, ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if a.cfg.Record.Kind() != KindHOTP {
		return 0, fmt.Errorf("%w: ValidateCounter is only valid for HOTP", ErrInvalidConfig)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return 0, fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	if err := a.check(code, counter); err != nil {
		return 0, err
	}

	return counter + 1, nil
}

// Generate generates an OTP code.
// For TOTP, it generates the code for the current time.
// For HOTP, the record's counter is used unless one is provided.
func (a *Authenticator) Generate(counter ...uint64) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}

	r := a.cfg.Record
	if stored, ok := r.Counter(); ok {
		if len(counter) > 0 {
			stored = counter[0]
		}
		return HOTP(a.key, stored, r.Digits, r.Algorithm)
	}

	period, _ := r.Period()
	code, err := TOTP(a.key, a.cfg.Now().UnixMilli(), period, r.Digits, r.Algorithm)
	if err != nil {
		return "", err
	}
	return code.Value, nil
}

func (a *Authenticator) check(code string, counter uint64) error {
	want, err := HOTP(a.key, counter, a.cfg.Record.Digits, a.cfg.Record.Algorithm)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	return nil
}
