package provider

import (
	"fmt"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
)

// Unimplemented is a registered provider whose format is not supported yet.
// It never claims data during auto-detection, and Parse always fails with
// ErrNotImplemented, so ParseWith can name it without a lookup error.
type Unimplemented struct {
	meta
}

// NewAuthy returns the placeholder Authy provider.
func NewAuthy() *Unimplemented {
	return &Unimplemented{meta{
		name:        "authy",
		displayName: "Authy",
		extensions:  []string{".json"},
	}}
}

// NewMicrosoft returns the placeholder Microsoft Authenticator provider.
func NewMicrosoft() *Unimplemented {
	return &Unimplemented{meta{
		name:        "microsoft",
		displayName: "Microsoft Authenticator",
		extensions:  []string{".json"},
	}}
}

// CanParse always returns false.
func (u *Unimplemented) CanParse(Input) bool { return false }

// Parse always returns ErrNotImplemented.
func (u *Unimplemented) Parse(Input) ([]otp.Record, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotImplemented, u.displayName)
}
