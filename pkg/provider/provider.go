package provider

import (
	"strings"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
	"github.com/jeremyhahn/go-otpimport/pkg/otpauth"
)

// Provider parses the export format of one authenticator app.
//
// CanParse must be cheap and must not fail: plausible but foreign input
// yields false. Parse returns at least one record or an error; an export
// with nothing importable is ErrEmptyResult.
type Provider interface {
	// Name is the unique registry key, e.g. "google-auth".
	Name() string
	// DisplayName is the human readable app name.
	DisplayName() string
	// Extensions lists the file extensions the app exports, e.g. ".json".
	Extensions() []string
	CanParse(in Input) bool
	Parse(in Input) ([]otp.Record, error)
}

// meta carries the static identity shared by every provider.
type meta struct {
	name        string
	displayName string
	extensions  []string
}

func (m meta) Name() string        { return m.name }
func (m meta) DisplayName() string { return m.displayName }

func (m meta) Extensions() []string {
	return append([]string(nil), m.extensions...)
}

// hasURILine reports whether any line of the input is an otpauth URI.
func hasURILine(in Input) bool {
	for _, line := range in.Lines() {
		if strings.HasPrefix(line, otpauth.Scheme+"://") {
			return true
		}
	}
	return false
}

// parseURILines parses every otpauth line and skips malformed ones.
func parseURILines(in Input) []otp.Record {
	var records []otp.Record
	for _, line := range in.Lines() {
		u, err := otpauth.Parse(line)
		if err != nil {
			continue
		}
		records = append(records, u.Record())
	}
	return records
}
