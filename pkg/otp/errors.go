package otp

import "errors"

// Common errors returned by the OTP engine and authenticator.
var (
	// ErrInvalidEncoding indicates the secret cannot be decoded under the requested encoding.
	ErrInvalidEncoding = errors.New("otp: invalid secret encoding")
	// ErrUnsupportedEncoding indicates an unknown secret encoding name.
	ErrUnsupportedEncoding = errors.New("otp: unsupported encoding")
	// ErrUnsupportedAlgorithm indicates an unknown HMAC algorithm.
	ErrUnsupportedAlgorithm = errors.New("otp: unsupported algorithm")
	// ErrInvalidPeriod indicates a TOTP period outside [1, MaxPeriod].
	ErrInvalidPeriod = errors.New("otp: invalid period")
	// ErrInvalidTimestamp indicates a timestamp before the Unix epoch or one
	// whose next time step cannot be represented.
	ErrInvalidTimestamp = errors.New("otp: invalid timestamp")
	// ErrInvalidRecord indicates a record that violates the TOTP/HOTP invariants.
	ErrInvalidRecord = errors.New("otp: invalid record")

	// ErrInvalidCode indicates the provided OTP code is invalid.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("otp: authenticator is nil")
)
