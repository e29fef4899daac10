package otpauth

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
)

// Scheme is the URI scheme of provisioning URIs.
const Scheme = "otpauth"

var (
	// ErrMalformedURI indicates the input is not a usable otpauth:// URI.
	ErrMalformedURI = errors.New("otpauth: malformed uri")
	// ErrMissingCounter indicates an hotp URI without the required counter parameter.
	ErrMissingCounter = errors.New("otpauth: hotp uri missing counter")
)

// URI is the parsed form of an otpauth://{totp|hotp}/<label>?... string.
type URI struct {
	Kind otp.Kind
	// Label is the URL-decoded path, before issuer/account splitting.
	Label string
	// Account is the part of Label after the first colon, or all of it.
	Account string
	// Issuer is the issuer query parameter, or the label prefix when absent.
	Issuer    string
	Secret    string
	Algorithm otp.Algorithm
	Digits    int
	// Period is set for totp URIs.
	Period int
	// Counter is set for hotp URIs.
	Counter uint64
	// Query holds every query parameter, including ones this package ignores.
	Query url.Values
}

// Parse parses an otpauth URI. It never panics; any input that is not a
// well-formed totp or hotp URI yields an error wrapping ErrMalformedURI, so
// batch importers can skip the line and single-entry callers can report it.
//
// Missing parameters default to SHA-1, 6 digits and a 30 second period.
// Parameter values that are present but not integers are rejected rather than
// coerced. The digits value is not range-checked.
func Parse(raw string) (*URI, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURI, err)
	}
	if u.Scheme != Scheme {
		return nil, fmt.Errorf("%w: scheme %q", ErrMalformedURI, u.Scheme)
	}

	kind := otp.Kind(strings.ToLower(u.Host))
	if kind != otp.KindTOTP && kind != otp.KindHOTP {
		return nil, fmt.Errorf("%w: type %q", ErrMalformedURI, u.Host)
	}

	q := u.Query()
	out := &URI{
		Kind:      kind,
		Label:     strings.TrimPrefix(u.Path, "/"),
		Secret:    q.Get("secret"),
		Algorithm: otp.DefaultAlgorithm,
		Digits:    otp.DefaultDigits,
		Query:     q,
	}
	if out.Secret == "" {
		return nil, fmt.Errorf("%w: missing secret", ErrMalformedURI)
	}

	issuer, account, ok := SplitLabel(out.Label)
	out.Account = account
	if ok {
		out.Issuer = issuer
	}
	if v := q.Get("issuer"); v != "" {
		out.Issuer = v
	}

	if v := q.Get("algorithm"); v != "" {
		out.Algorithm = otp.NormalizeAlgorithm(v)
	}
	if v := q.Get("digits"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: digits %q", ErrMalformedURI, v)
		}
		out.Digits = n
	}

	switch kind {
	case otp.KindTOTP:
		out.Period = otp.DefaultPeriod
		if v := q.Get("period"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || int64(n) > otp.MaxPeriod {
				return nil, fmt.Errorf("%w: period %q", ErrMalformedURI, v)
			}
			out.Period = n
		}
	case otp.KindHOTP:
		v := q.Get("counter")
		if v == "" {
			return nil, fmt.Errorf("%w: %w", ErrMalformedURI, ErrMissingCounter)
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: counter %q", ErrMalformedURI, v)
		}
		out.Counter = n
	}

	return out, nil
}

// Record converts the URI into a canonical record. The record label is the
// full decoded label.
func (u *URI) Record() otp.Record {
	rec := otp.Record{
		Label:     u.Label,
		Secret:    u.Secret,
		Issuer:    u.Issuer,
		Algorithm: u.Algorithm,
		Digits:    u.Digits,
	}
	if u.Kind == otp.KindHOTP {
		rec.Params = otp.CounterBased{Counter: u.Counter}
	} else {
		rec.Params = otp.TimeBased{Period: u.Period}
	}
	return rec
}

// SplitLabel splits an "issuer:account" label at the first colon. ok is false
// when the label has no issuer prefix, in which case account is the whole
// trimmed label.
func SplitLabel(label string) (issuer, account string, ok bool) {
	i := strings.IndexByte(label, ':')
	if i <= 0 {
		return "", strings.TrimSpace(label), false
	}
	return strings.TrimSpace(label[:i]), strings.TrimSpace(label[i+1:]), true
}

type formatOptions struct {
	compact bool
}

// FormatOption customizes Format.
type FormatOption func(*formatOptions)

// CompactAlgorithm writes the algorithm as "SHA1" instead of "SHA-1", the
// spelling most third-party authenticator apps expect.
func CompactAlgorithm() FormatOption {
	return func(o *formatOptions) { o.compact = true }
}

// Format serializes a record as
//
//	otpauth://{totp|hotp}/<label>?secret=S&issuer=I&algorithm=A&digits=N&period=N|counter=N
//
// The issuer parameter is omitted when empty. Parse(Format(r)).Record()
// reproduces r whenever r.Issuer is set or the label carries no issuer prefix.
func Format(r otp.Record, opts ...FormatOption) string {
	var o formatOptions
	for _, opt := range opts {
		opt(&o)
	}

	kind := r.Kind()
	if kind == "" {
		kind = otp.KindTOTP
	}

	alg := string(r.Algorithm)
	if o.compact {
		alg = r.Algorithm.Compact()
	}

	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString("://")
	b.WriteString(string(kind))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(r.Label))
	b.WriteString("?secret=")
	b.WriteString(url.QueryEscape(r.Secret))
	if r.Issuer != "" {
		b.WriteString("&issuer=")
		b.WriteString(url.QueryEscape(r.Issuer))
	}
	b.WriteString("&algorithm=")
	b.WriteString(url.QueryEscape(alg))
	b.WriteString("&digits=")
	b.WriteString(strconv.Itoa(r.Digits))

	switch p := r.Params.(type) {
	case otp.CounterBased:
		b.WriteString("&counter=")
		b.WriteString(strconv.FormatUint(p.Counter, 10))
	case otp.TimeBased:
		b.WriteString("&period=")
		b.WriteString(strconv.Itoa(p.Period))
	default:
		b.WriteString("&period=")
		b.WriteString(strconv.Itoa(otp.DefaultPeriod))
	}
	return b.String()
}
