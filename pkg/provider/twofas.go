package provider

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
)

// TwoFAS parses 2FAS backups. Current versions write a JSON document with a
// services array; older ones wrote otpauth lines.
type TwoFAS struct {
	meta
}

// NewTwoFAS returns the 2FAS provider.
func NewTwoFAS() *TwoFAS {
	return &TwoFAS{meta{
		name:        "2fas",
		displayName: "2FAS",
		extensions:  []string{".json", ".2fas", ".txt"},
	}}
}

type twoFASService struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
	OTP    *struct {
		TokenType string `json:"tokenType"`
		Digits    int    `json:"digits"`
		Period    int    `json:"period"`
		Counter   uint64 `json:"counter"`
		Algorithm string `json:"algorithm"`
		Issuer    string `json:"issuer"`
		Account   string `json:"account"`
	} `json:"otp"`
}

// CanParse accepts a JSON object with a services array (or an encrypted
// services blob) plus a schemaVersion or appVersionCode marker, and text
// with at least one otpauth line.
func (f *TwoFAS) CanParse(in Input) bool {
	if !in.IsJSON() {
		return hasURILine(in)
	}
	if !in.Has("schemaVersion") && !in.Has("appVersionCode") {
		return false
	}
	var services []twoFASService
	return in.DecodeField("services", &services) || in.Has("servicesEncrypted")
}

// Parse converts every service with a secret. Services with an unknown
// tokenType are skipped.
func (f *TwoFAS) Parse(in Input) ([]otp.Record, error) {
	if !in.IsJSON() {
		records := parseURILines(in)
		if len(records) == 0 {
			return nil, fmt.Errorf("%w: no valid 2FAS entries", ErrEmptyResult)
		}
		return records, nil
	}

	var encrypted string
	if in.DecodeField("servicesEncrypted", &encrypted) && encrypted != "" {
		return nil, fmt.Errorf("%w: 2FAS backup is password protected; export it again without a password", ErrUnsupportedExportFormat)
	}
	var services []twoFASService
	if !in.DecodeField("services", &services) {
		return nil, fmt.Errorf("%w: 2FAS export is missing the services array", ErrInvalidFormat)
	}

	var records []otp.Record
	for _, s := range services {
		if s.Secret == "" {
			continue
		}

		rec := otp.Record{
			Label:     s.Name,
			Secret:    s.Secret,
			Issuer:    s.Name,
			Algorithm: otp.DefaultAlgorithm,
			Digits:    otp.DefaultDigits,
		}
		kind := otp.KindTOTP
		period := otp.DefaultPeriod
		var counter uint64

		if o := s.OTP; o != nil {
			if o.TokenType != "" {
				kind = otp.Kind(strings.ToLower(o.TokenType))
			}
			if o.Algorithm != "" {
				rec.Algorithm = otp.NormalizeAlgorithm(o.Algorithm)
			}
			if o.Digits > 0 {
				rec.Digits = o.Digits
			}
			if o.Period > 0 {
				period = o.Period
			}
			counter = o.Counter
			if o.Issuer != "" {
				rec.Issuer = o.Issuer
			}
			if o.Account != "" {
				rec.Label = o.Account
			}
		}

		switch kind {
		case otp.KindTOTP:
			rec.Params = otp.TimeBased{Period: period}
		case otp.KindHOTP:
			rec.Params = otp.CounterBased{Counter: counter}
		default:
			// STEAM and other app specific types have no canonical form
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no valid 2FAS entries", ErrEmptyResult)
	}
	return records, nil
}
