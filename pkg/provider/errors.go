package provider

import (
	"errors"
	"strings"
)

var (
	// ErrNoCompatibleProvider indicates auto-detection found no provider able
	// to parse the data. Pick a provider explicitly with ParseWith.
	ErrNoCompatibleProvider = errors.New("provider: no compatible provider found for this data")
	// ErrProviderNotFound indicates a provider name that is not registered.
	ErrProviderNotFound = errors.New("provider: provider not found")
	// ErrUnsupportedExportFormat indicates a recognized export that cannot be
	// imported as is, such as an encrypted backup. It ends auto-detection.
	ErrUnsupportedExportFormat = errors.New("provider: unsupported export format")
	// ErrEmptyResult indicates the provider understood the data but found no
	// importable entries.
	ErrEmptyResult = errors.New("provider: no valid entries found")
	// ErrTrashedOnly indicates every entry of the export was deleted in the
	// source app. It ends auto-detection so later providers cannot import
	// the deleted entries.
	ErrTrashedOnly = errors.New("provider: every entry is in the trash")
	// ErrNotImplemented is returned by providers that are registered but
	// cannot parse yet.
	ErrNotImplemented = errors.New("provider: parser not implemented")
	// ErrInvalidFormat indicates data that matched a provider's detection but
	// does not have the structure the provider expects.
	ErrInvalidFormat = errors.New("provider: invalid export structure")
	// ErrInvalidConfig indicates a registry configuration problem.
	ErrInvalidConfig = errors.New("provider: invalid configuration")
)

// Attempt records one provider that claimed the data during auto-detection
// and the error its Parse returned.
type Attempt struct {
	Provider string
	Err      error
}

// DetectionError is returned by ParseAuto when no provider succeeded. It
// matches ErrNoCompatibleProvider and every attempt error with errors.Is.
type DetectionError struct {
	Attempts []Attempt
}

func (e *DetectionError) Error() string {
	if len(e.Attempts) == 0 {
		return ErrNoCompatibleProvider.Error()
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Provider+": "+a.Err.Error())
	}
	return ErrNoCompatibleProvider.Error() + " (" + strings.Join(parts, "; ") + ")"
}

// Unwrap exposes ErrNoCompatibleProvider followed by the attempt errors.
func (e *DetectionError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts)+1)
	errs = append(errs, ErrNoCompatibleProvider)
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}
