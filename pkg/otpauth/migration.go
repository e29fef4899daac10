package otpauth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
)

// MigrationScheme is the scheme of Google Authenticator "Transfer accounts" URIs.
const MigrationScheme = "otpauth-migration"

// ErrMalformedMigration indicates an otpauth-migration URI that cannot be decoded.
var ErrMalformedMigration = errors.New("otpauth: malformed migration payload")

// Field numbers of the MigrationPayload protobuf message.
const (
	payloadOtpParameters protowire.Number = 1
	payloadVersion       protowire.Number = 2
	payloadBatchSize     protowire.Number = 3
	payloadBatchIndex    protowire.Number = 4
	payloadBatchID       protowire.Number = 5
)

// Field numbers of the nested OtpParameters message.
const (
	paramSecret    protowire.Number = 1
	paramName      protowire.Number = 2
	paramIssuer    protowire.Number = 3
	paramAlgorithm protowire.Number = 4
	paramDigits    protowire.Number = 5
	paramType      protowire.Number = 6
	paramCounter   protowire.Number = 7
)

// Enum values used by the Google payload.
const (
	migrationAlgSHA1   = 1
	migrationAlgSHA256 = 2
	migrationAlgSHA512 = 3
	migrationAlgMD5    = 4

	migrationDigitsSix   = 1
	migrationDigitsEight = 2

	migrationTypeHOTP = 1
	migrationTypeTOTP = 2
)

// Migration is a decoded Google Authenticator transfer batch.
type Migration struct {
	Records    []otp.Record
	Version    int
	BatchSize  int
	BatchIndex int
	BatchID    int
	// Skipped counts entries whose algorithm has no canonical equivalent (MD5).
	Skipped int
}

// IsMigration reports whether s looks like an otpauth-migration URI.
func IsMigration(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), MigrationScheme+"://")
}

// ParseMigration decodes an otpauth-migration://offline?data=... URI.
// Secrets are re-encoded as unpadded Base32 so records match the otpauth form.
func ParseMigration(raw string) (*Migration, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMigration, err)
	}
	if u.Scheme != MigrationScheme {
		return nil, fmt.Errorf("%w: scheme %q", ErrMalformedMigration, u.Scheme)
	}

	data := u.Query().Get("data")
	if data == "" {
		return nil, fmt.Errorf("%w: missing data", ErrMalformedMigration)
	}
	// an unescaped '+' in the query decodes to a space
	data = strings.ReplaceAll(data, " ", "+")

	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		payload, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: base64: %v", ErrMalformedMigration, err)
		}
	}

	return decodePayload(payload)
}

func decodePayload(b []byte) (*Migration, error) {
	m := &Migration{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMigration, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == payloadOtpParameters && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMigration, protowire.ParseError(n))
			}
			rec, ok, err := decodeParameters(v)
			if err != nil {
				return nil, err
			}
			if ok {
				m.Records = append(m.Records, rec)
			} else {
				m.Skipped++
			}
			b = b[n:]
		case typ == protowire.VarintType && num >= payloadVersion && num <= payloadBatchID:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMigration, protowire.ParseError(n))
			}
			switch num {
			case payloadVersion:
				m.Version = int(v)
			case payloadBatchSize:
				m.BatchSize = int(v)
			case payloadBatchIndex:
				m.BatchIndex = int(v)
			case payloadBatchID:
				m.BatchID = int(int32(v))
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMigration, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return m, nil
}

// decodeParameters returns ok=false for entries that cannot be represented.
func decodeParameters(b []byte) (otp.Record, bool, error) {
	var (
		secret          []byte
		name, issuer    string
		alg, digits, tp uint64
		counter         uint64
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return otp.Record{}, false, fmt.Errorf("%w: %v", ErrMalformedMigration, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.BytesType && (num == paramSecret || num == paramName || num == paramIssuer):
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return otp.Record{}, false, fmt.Errorf("%w: %v", ErrMalformedMigration, protowire.ParseError(n))
			}
			switch num {
			case paramSecret:
				secret = append([]byte(nil), v...)
			case paramName:
				name = string(v)
			case paramIssuer:
				issuer = string(v)
			}
			b = b[n:]
		case typ == protowire.VarintType && num >= paramAlgorithm && num <= paramCounter:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return otp.Record{}, false, fmt.Errorf("%w: %v", ErrMalformedMigration, protowire.ParseError(n))
			}
			switch num {
			case paramAlgorithm:
				alg = v
			case paramDigits:
				digits = v
			case paramType:
				tp = v
			case paramCounter:
				counter = v
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return otp.Record{}, false, fmt.Errorf("%w: %v", ErrMalformedMigration, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if len(secret) == 0 {
		return otp.Record{}, false, nil
	}

	rec := otp.Record{
		Label:     name,
		Secret:    otp.EncodeKey(secret),
		Issuer:    issuer,
		Algorithm: otp.AlgorithmSHA1,
		Digits:    otp.DefaultDigits,
	}
	if rec.Issuer == "" {
		if prefix, _, ok := SplitLabel(name); ok {
			rec.Issuer = prefix
		}
	}

	switch alg {
	case migrationAlgSHA256:
		rec.Algorithm = otp.AlgorithmSHA256
	case migrationAlgSHA512:
		rec.Algorithm = otp.AlgorithmSHA512
	case migrationAlgMD5:
		return otp.Record{}, false, nil
	}
	if digits == migrationDigitsEight {
		rec.Digits = 8
	}
	if tp == migrationTypeHOTP {
		rec.Params = otp.CounterBased{Counter: counter}
	} else {
		rec.Params = otp.TimeBased{Period: otp.DefaultPeriod}
	}
	return rec, true, nil
}

// FormatMigration encodes records as a single otpauth-migration URI. Google
// Authenticator only understands SHA-1/256/512, 6 or 8 digits and the
// default 30 second period; other records are rejected.
func FormatMigration(records []otp.Record) (string, error) {
	var payload []byte
	for i, r := range records {
		params, err := encodeParameters(r)
		if err != nil {
			return "", fmt.Errorf("otpauth: record %d (%s): %w", i, r.Label, err)
		}
		payload = protowire.AppendTag(payload, payloadOtpParameters, protowire.BytesType)
		payload = protowire.AppendBytes(payload, params)
	}

	// version 1 makes current app releases ask for an update
	payload = protowire.AppendTag(payload, payloadVersion, protowire.VarintType)
	payload = protowire.AppendVarint(payload, 2)
	payload = protowire.AppendTag(payload, payloadBatchSize, protowire.VarintType)
	payload = protowire.AppendVarint(payload, 1)
	payload = protowire.AppendTag(payload, payloadBatchIndex, protowire.VarintType)
	payload = protowire.AppendVarint(payload, 0)

	q := url.Values{}
	q.Set("data", base64.StdEncoding.EncodeToString(payload))
	return MigrationScheme + "://offline?" + q.Encode(), nil
}

func encodeParameters(r otp.Record) ([]byte, error) {
	key, err := otp.DecodeKey(r.Secret, otp.EncodingBase32)
	if err != nil {
		return nil, err
	}

	var alg uint64
	switch r.Algorithm {
	case otp.AlgorithmSHA1:
		alg = migrationAlgSHA1
	case otp.AlgorithmSHA256:
		alg = migrationAlgSHA256
	case otp.AlgorithmSHA512:
		alg = migrationAlgSHA512
	default:
		return nil, fmt.Errorf("%w: %s", otp.ErrUnsupportedAlgorithm, r.Algorithm)
	}

	var digits uint64
	switch r.Digits {
	case 6:
		digits = migrationDigitsSix
	case 8:
		digits = migrationDigitsEight
	default:
		return nil, fmt.Errorf("unsupported digits %d", r.Digits)
	}

	var b []byte
	b = protowire.AppendTag(b, paramSecret, protowire.BytesType)
	b = protowire.AppendBytes(b, key)
	b = protowire.AppendTag(b, paramName, protowire.BytesType)
	b = protowire.AppendString(b, r.Label)
	if r.Issuer != "" {
		b = protowire.AppendTag(b, paramIssuer, protowire.BytesType)
		b = protowire.AppendString(b, r.Issuer)
	}
	b = protowire.AppendTag(b, paramAlgorithm, protowire.VarintType)
	b = protowire.AppendVarint(b, alg)
	b = protowire.AppendTag(b, paramDigits, protowire.VarintType)
	b = protowire.AppendVarint(b, digits)

	switch p := r.Params.(type) {
	case otp.CounterBased:
		b = protowire.AppendTag(b, paramType, protowire.VarintType)
		b = protowire.AppendVarint(b, migrationTypeHOTP)
		b = protowire.AppendTag(b, paramCounter, protowire.VarintType)
		b = protowire.AppendVarint(b, p.Counter)
	case otp.TimeBased:
		if p.Period != otp.DefaultPeriod {
			return nil, fmt.Errorf("unsupported period %d", p.Period)
		}
		b = protowire.AppendTag(b, paramType, protowire.VarintType)
		b = protowire.AppendVarint(b, migrationTypeTOTP)
	default:
		return nil, otp.ErrInvalidRecord
	}
	return b, nil
}
