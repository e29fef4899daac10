package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
	"github.com/jeremyhahn/go-otpimport/pkg/otpauth"
)

// ErrEnteEncrypted is returned for Ente's password protected JSON export.
// It wraps ErrUnsupportedExportFormat.
var ErrEnteEncrypted = fmt.Errorf("%w: Ente encrypted exports cannot be imported; in Ente Auth choose Export codes > Plain text and import that file instead", ErrUnsupportedExportFormat)

const enteCodeDisplay = "codeDisplay"

// Ente parses Ente Auth plain-text exports: otpauth lines whose
// codeDisplay parameter holds URL encoded JSON metadata.
type Ente struct {
	meta
}

// NewEnte returns the Ente Auth provider.
func NewEnte() *Ente {
	return &Ente{meta{
		name:        "ente",
		displayName: "Ente Auth",
		extensions:  []string{".txt", ".json"},
	}}
}

type enteDisplay struct {
	Trashed bool     `json:"trashed"`
	Pinned  bool     `json:"pinned"`
	Tags    []string `json:"tags"`
	Note    string   `json:"note"`
}

// CanParse accepts text with otpauth lines carrying codeDisplay metadata,
// and the encrypted JSON export so it can be rejected with a clear message.
func (e *Ente) CanParse(in Input) bool {
	if in.IsJSON() {
		return in.Has("encryptedData", "encryptionNonce")
	}
	text := in.Text()
	return strings.Contains(text, otpauth.Scheme+"://") && strings.Contains(text, enteCodeDisplay+"=")
}

// Parse imports every line not in the Ente trash. Tags are appended to the
// label as " [a, b]".
func (e *Ente) Parse(in Input) ([]otp.Record, error) {
	if in.IsJSON() {
		if in.Has("encryptedData", "encryptionNonce") {
			return nil, ErrEnteEncrypted
		}
		return nil, fmt.Errorf("%w: Ente JSON exports must be encrypted backups", ErrInvalidFormat)
	}

	var (
		records []otp.Record
		trashed int
	)
	for _, line := range in.Lines() {
		u, err := otpauth.Parse(line)
		if err != nil {
			continue
		}

		var display enteDisplay
		if raw := u.Query.Get(enteCodeDisplay); raw != "" {
			// metadata that fails to decode is ignored
			_ = json.Unmarshal([]byte(raw), &display)
		}
		if display.Trashed {
			trashed++
			continue
		}

		rec := u.Record()
		if tags := nonEmpty(display.Tags); len(tags) > 0 {
			rec.Label += " [" + strings.Join(tags, ", ") + "]"
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		if trashed > 0 {
			return nil, fmt.Errorf("%w: %w: %d Ente entries are trashed", ErrEmptyResult, ErrTrashedOnly, trashed)
		}
		return nil, fmt.Errorf("%w: no valid Ente entries", ErrEmptyResult)
	}
	return records, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
