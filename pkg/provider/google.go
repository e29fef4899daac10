package provider

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
	"github.com/jeremyhahn/go-otpimport/pkg/otpauth"
)

// GoogleAuth parses Google Authenticator exports: plain otpauth lines,
// otpauth-migration transfer URIs, or a JSON object listing accounts.
type GoogleAuth struct {
	meta
}

// NewGoogleAuth returns the Google Authenticator provider.
func NewGoogleAuth() *GoogleAuth {
	return &GoogleAuth{meta{
		name:        "google-auth",
		displayName: "Google Authenticator",
		extensions:  []string{".txt", ".json"},
	}}
}

type googleAccount struct {
	OTPAuth string `json:"otpauth"`
}

// CanParse accepts text starting with an otpauth or otpauth-migration URI
// and JSON objects with an "accounts" or "otpauth" member.
func (g *GoogleAuth) CanParse(in Input) bool {
	if in.IsJSON() {
		_, accounts := in.Field("accounts")
		_, single := in.Field("otpauth")
		return accounts || single
	}
	text := strings.TrimSpace(in.Text())
	return strings.HasPrefix(text, otpauth.Scheme+"://") || otpauth.IsMigration(text)
}

// Parse decodes every entry it recognizes. Malformed lines are skipped.
func (g *GoogleAuth) Parse(in Input) ([]otp.Record, error) {
	var records []otp.Record

	if in.IsJSON() {
		var accounts []googleAccount
		if in.DecodeField("accounts", &accounts) {
			for _, a := range accounts {
				records = append(records, g.parseLine(a.OTPAuth)...)
			}
		}
		var single string
		if in.DecodeField("otpauth", &single) {
			records = append(records, g.parseLine(single)...)
		}
	} else {
		for _, line := range in.Lines() {
			records = append(records, g.parseLine(line)...)
		}
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no valid Google Authenticator entries", ErrEmptyResult)
	}
	return records, nil
}

func (g *GoogleAuth) parseLine(line string) []otp.Record {
	if otpauth.IsMigration(line) {
		m, err := otpauth.ParseMigration(line)
		if err != nil {
			return nil
		}
		return m.Records
	}
	u, err := otpauth.Parse(line)
	if err != nil {
		return nil
	}
	return []otp.Record{u.Record()}
}
