package provider

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
	"github.com/jeremyhahn/go-otpimport/pkg/otpauth"
)

// Header prefixes written by Bitwarden's CSV exporters.
var bitwardenCSVSignatures = []string{
	"folder,favorite,type,name,notes,fields,",
	"name,uri,username,password,totp",
}

// Bitwarden parses Bitwarden vault exports in JSON or CSV form. Only login
// items with a TOTP value are imported.
type Bitwarden struct {
	meta
}

// NewBitwarden returns the Bitwarden provider.
func NewBitwarden() *Bitwarden {
	return &Bitwarden{meta{
		name:        "bitwarden",
		displayName: "Bitwarden",
		extensions:  []string{".json", ".csv"},
	}}
}

type bitwardenItem struct {
	Name  string `json:"name"`
	Login *struct {
		TOTP     string `json:"totp"`
		Username string `json:"username"`
	} `json:"login"`
}

func (i bitwardenItem) totp() string {
	if i.Login == nil {
		return ""
	}
	return strings.TrimSpace(i.Login.TOTP)
}

// CanParse accepts JSON with an items array where some login carries a
// totp value, and CSV whose header matches a Bitwarden export.
func (b *Bitwarden) CanParse(in Input) bool {
	if in.IsJSON() {
		var items []bitwardenItem
		if !in.DecodeField("items", &items) {
			return false
		}
		for _, item := range items {
			if item.totp() != "" {
				return true
			}
		}
		return false
	}

	lines := in.Lines()
	if len(lines) == 0 {
		return false
	}
	header := strings.ToLower(lines[0])
	for _, sig := range bitwardenCSVSignatures {
		if strings.Contains(header, sig) {
			return true
		}
	}
	return totpColumn(csvHeader(header)) >= 0
}

// Parse converts JSON items or CSV rows into TOTP records.
func (b *Bitwarden) Parse(in Input) ([]otp.Record, error) {
	var (
		records []otp.Record
		err     error
	)
	if in.IsJSON() {
		records, err = b.parseJSON(in)
	} else {
		records, err = b.parseCSV(in.Text())
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no Bitwarden TOTP entries", ErrEmptyResult)
	}
	return records, nil
}

func (b *Bitwarden) parseJSON(in Input) ([]otp.Record, error) {
	var items []bitwardenItem
	if !in.DecodeField("items", &items) {
		return nil, fmt.Errorf("%w: Bitwarden export is missing the items array", ErrInvalidFormat)
	}

	var records []otp.Record
	for _, item := range items {
		if rec, ok := bitwardenRecord(item.Name, item.totp()); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (b *Bitwarden) parseCSV(text string) ([]otp.Record, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: Bitwarden CSV: %v", ErrInvalidFormat, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	totpIdx := totpColumn(header)
	if totpIdx < 0 {
		return nil, fmt.Errorf("%w: Bitwarden CSV has no totp column", ErrInvalidFormat)
	}
	nameIdx := columnIndex(header, "name")

	var records []otp.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: Bitwarden CSV: %v", ErrInvalidFormat, err)
		}
		if totpIdx >= len(row) {
			continue
		}
		var name string
		if nameIdx >= 0 && nameIdx < len(row) {
			name = strings.TrimSpace(row[nameIdx])
		}
		if rec, ok := bitwardenRecord(name, strings.TrimSpace(row[totpIdx])); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// bitwardenRecord converts a totp field that is either an otpauth URI or a
// bare Base32 secret. HOTP URIs and other schemes are skipped.
func bitwardenRecord(name, totp string) (otp.Record, bool) {
	if totp == "" {
		return otp.Record{}, false
	}

	if strings.HasPrefix(totp, otpauth.Scheme+"://") {
		u, err := otpauth.Parse(totp)
		if err != nil || u.Kind != otp.KindTOTP {
			return otp.Record{}, false
		}
		rec := u.Record()
		if name != "" {
			rec.Label = name
		}
		return rec, true
	}
	if strings.Contains(totp, "://") {
		return otp.Record{}, false
	}

	if name == "" {
		name = "Unknown"
	}
	return otp.Record{
		Label:     name,
		Secret:    strings.ReplaceAll(totp, " ", ""),
		Algorithm: otp.DefaultAlgorithm,
		Digits:    otp.DefaultDigits,
		Params:    otp.TimeBased{Period: otp.DefaultPeriod},
	}, true
}

func csvHeader(line string) []string {
	fields, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return nil
	}
	for i := range fields {
		fields[i] = strings.ToLower(strings.TrimSpace(fields[i]))
	}
	return fields
}

func totpColumn(header []string) int {
	if i := columnIndex(header, "login_totp"); i >= 0 {
		return i
	}
	return columnIndex(header, "totp")
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
