package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
	"github.com/jeremyhahn/go-otpimport/pkg/otpauth"
)

// OTP holds the code parameters of a stored account.
type OTP struct {
	// Link is the otpauth URI synthesized from the record.
	Link      string        `json:"link"`
	Kind      otp.Kind      `json:"tokenType"`
	Algorithm otp.Algorithm `json:"algorithm"`
	Digits    int           `json:"digits"`
	// Period is set for TOTP services only.
	Period int `json:"period,omitempty"`
	// Counter is set for HOTP services only.
	Counter uint64 `json:"counter,omitempty"`
	// Issuer is never absent; records without one get "".
	Issuer string `json:"issuer"`
}

// Service is the persisted form of an imported account.
type Service struct {
	ID        string    `json:"uid"`
	Name      string    `json:"name"`
	Secret    string    `json:"secret"`
	Position  int       `json:"position"`
	UpdatedAt time.Time `json:"updatedAt"`
	OTP       OTP       `json:"otp"`
}

// Record rebuilds the canonical record the service was converted from.
func (s Service) Record() otp.Record {
	rec := otp.Record{
		Label:     s.Name,
		Secret:    s.Secret,
		Issuer:    s.OTP.Issuer,
		Algorithm: s.OTP.Algorithm,
		Digits:    s.OTP.Digits,
	}
	if s.OTP.Kind == otp.KindHOTP {
		rec.Params = otp.CounterBased{Counter: s.OTP.Counter}
	} else {
		rec.Params = otp.TimeBased{Period: s.OTP.Period}
	}
	return rec
}

// Code returns the code to display at t. For HOTP services t is ignored and
// the code for the stored counter is returned.
func (s Service) Code(t time.Time) (otp.Code, error) {
	return otp.Generate(s.Record(), t)
}

// Converter turns canonical records into services. The zero value is ready
// to use.
type Converter struct {
	// NewID returns a fresh unique identifier. Defaults to uuid.NewString.
	NewID func() string
	// Now returns the timestamp stamped on new services. Defaults to time.Now.
	Now func() time.Time
}

// Convert builds a service from r at the given list position.
func (c Converter) Convert(r otp.Record, position int) Service {
	newID := c.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	kind := r.Kind()
	if kind == "" {
		kind = otp.KindTOTP
	}
	s := Service{
		ID:        newID(),
		Name:      r.Label,
		Secret:    r.Secret,
		Position:  position,
		UpdatedAt: now(),
		OTP: OTP{
			Link:      otpauth.Format(r),
			Kind:      kind,
			Algorithm: r.Algorithm,
			Digits:    r.Digits,
			Issuer:    r.Issuer,
		},
	}
	switch p := r.Params.(type) {
	case otp.TimeBased:
		s.OTP.Period = p.Period
	case otp.CounterBased:
		s.OTP.Counter = p.Counter
	default:
		s.OTP.Period = otp.DefaultPeriod
	}
	return s
}

// ConvertAll converts records in order, numbering positions from start.
func (c Converter) ConvertAll(records []otp.Record, start int) []Service {
	out := make([]Service, 0, len(records))
	for i, r := range records {
		out = append(out, c.Convert(r, start+i))
	}
	return out
}

// ToService converts a record with a random identifier, the current time
// and position zero.
func ToService(r otp.Record) Service {
	return Converter{}.Convert(r, 0)
}

// NextPosition returns the position after the highest one in services.
func NextPosition(services []Service) int {
	next := 0
	for _, s := range services {
		if s.Position >= next {
			next = s.Position + 1
		}
	}
	return next
}
