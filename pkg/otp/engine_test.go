package otp

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	potp "github.com/pquerna/otp"
	photp "github.com/pquerna/otp/hotp"
	ptotp "github.com/pquerna/otp/totp"
)

const (
	rfcSeed20 = "12345678901234567890"
	rfcSeed32 = "12345678901234567890123456789012"
	rfcSeed64 = "1234567890123456789012345678901234567890123456789012345678901234"
)

// TestHOTPRFC4226 checks the RFC 4226 Appendix D test vectors
func TestHOTPRFC4226(t *testing.T) {
	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}

	key, err := DecodeKey(rfcSeed20, EncodingASCII)
	if err != nil {
		t.Fatalf("DecodeKey: %v", err)
	}

	for counter, expected := range want {
		got, err := HOTP(key, uint64(counter), 6, AlgorithmSHA1)
		if err != nil {
			t.Fatalf("counter %d: unexpected error: %v", counter, err)
		}
		if got != expected {
			t.Errorf("counter %d: expected %s, got %s", counter, expected, got)
		}
	}
}

// TestTOTPRFC6238 checks the RFC 6238 Appendix B test vectors
func TestTOTPRFC6238(t *testing.T) {
	tests := []struct {
		seconds int64
		alg     Algorithm
		seed    string
		want    string
	}{
		{59, AlgorithmSHA1, rfcSeed20, "94287082"},
		{59, AlgorithmSHA256, rfcSeed32, "46119246"},
		{59, AlgorithmSHA512, rfcSeed64, "90693936"},
		{1111111109, AlgorithmSHA1, rfcSeed20, "07081804"},
		{1111111109, AlgorithmSHA256, rfcSeed32, "68084774"},
		{1111111109, AlgorithmSHA512, rfcSeed64, "25091201"},
		{1111111111, AlgorithmSHA1, rfcSeed20, "14050471"},
		{1111111111, AlgorithmSHA256, rfcSeed32, "67062674"},
		{1111111111, AlgorithmSHA512, rfcSeed64, "99943326"},
		{1234567890, AlgorithmSHA1, rfcSeed20, "89005924"},
		{1234567890, AlgorithmSHA256, rfcSeed32, "91819424"},
		{1234567890, AlgorithmSHA512, rfcSeed64, "93441116"},
		{2000000000, AlgorithmSHA1, rfcSeed20, "69279037"},
		{2000000000, AlgorithmSHA256, rfcSeed32, "90698825"},
		{2000000000, AlgorithmSHA512, rfcSeed64, "38618901"},
		{20000000000, AlgorithmSHA1, rfcSeed20, "65353130"},
		{20000000000, AlgorithmSHA256, rfcSeed32, "77737706"},
		{20000000000, AlgorithmSHA512, rfcSeed64, "47863826"},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg)+"/"+time.Unix(tt.seconds, 0).UTC().Format(time.RFC3339), func(t *testing.T) {
			code, err := TOTP([]byte(tt.seed), tt.seconds*1000, 30, 8, tt.alg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code.Value != tt.want {
				t.Errorf("expected %s, got %s", tt.want, code.Value)
			}
		})
	}
}

// TestTOTPWindow checks that codes are stable inside a step and change across steps
func TestTOTPWindow(t *testing.T) {
	key := []byte(rfcSeed20)
	const period = 30
	start := int64(1700000010) * 1000 / (period * 1000) * (period * 1000)

	first, err := TOTP(key, start, period, 6, AlgorithmSHA1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last, err := TOTP(key, start+period*1000-1, period, 6, AlgorithmSHA1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, err := TOTP(key, start+period*1000, period, 6, AlgorithmSHA1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Value != last.Value {
		t.Errorf("expected same code within a step, got %s and %s", first.Value, last.Value)
	}
	if first.Value == next.Value {
		t.Errorf("expected different code in the next step, both %s", first.Value)
	}
	if first.ExpiresAt != last.ExpiresAt {
		t.Errorf("expected same expiry within a step, got %d and %d", first.ExpiresAt, last.ExpiresAt)
	}
}

// TestTOTPExpiry checks the boundary arithmetic of ExpiresAt
func TestTOTPExpiry(t *testing.T) {
	key := []byte(rfcSeed20)

	tests := []struct {
		name   string
		ts     int64
		period int
		want   int64
	}{
		{"epoch", 0, 30, 30000},
		{"inside step", 12345, 30, 30000},
		{"last millisecond", 29999, 30, 30000},
		{"exact boundary", 30000, 30, 60000},
		{"sixty second period", 61000, 60, 120000},
		{"one second period", 1000, 1, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := TOTP(key, tt.ts, tt.period, 6, AlgorithmSHA1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code.ExpiresAt != tt.want {
				t.Errorf("expected expiry %d, got %d", tt.want, code.ExpiresAt)
			}
			if code.ExpiresAt <= tt.ts {
				t.Errorf("expiry %d not after timestamp %d", code.ExpiresAt, tt.ts)
			}
		})
	}
}

// TestEngineErrors checks the failure modes of HOTP and TOTP
func TestEngineErrors(t *testing.T) {
	key := []byte(rfcSeed20)

	if _, err := HOTP(key, 0, 6, "MD5"); !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("expected ErrUnsupportedAlgorithm, got %v", err)
	}
	if _, err := TOTP(key, 0, 0, 6, AlgorithmSHA1); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := TOTP(key, -1, 30, 6, AlgorithmSHA1); !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("expected ErrInvalidTimestamp, got %v", err)
	}
}

// TestTOTPPeriodBounds checks periods whose millisecond window would overflow
func TestTOTPPeriodBounds(t *testing.T) {
	key := []byte(rfcSeed20)

	// 1<<61 seconds wraps to a zero millisecond window
	for _, period := range []int{1 << 61, int(MaxPeriod) + 1, math.MaxInt} {
		if _, err := TOTP(key, 59000, period, 6, AlgorithmSHA1); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("period %d: expected ErrInvalidPeriod, got %v", period, err)
		}
	}

	r := Record{Label: "x", Secret: "JBSWY3DPEHPK3PXP", Algorithm: AlgorithmSHA1, Digits: 6, Params: TimeBased{Period: 1 << 61}}
	if err := r.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected record validation to reject period, got %v", err)
	}

	code, err := TOTP(key, 59000, int(MaxPeriod), 6, AlgorithmSHA1)
	if err != nil {
		t.Fatalf("unexpected error at MaxPeriod: %v", err)
	}
	if code.ExpiresAt != MaxPeriod*1000 {
		t.Errorf("expected expiry %d, got %d", MaxPeriod*1000, code.ExpiresAt)
	}
}

// TestTOTPExpiryOverflow checks timestamps whose next step exceeds int64
func TestTOTPExpiryOverflow(t *testing.T) {
	key := []byte(rfcSeed20)

	if _, err := TOTP(key, math.MaxInt64, 30, 6, AlgorithmSHA1); !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("expected ErrInvalidTimestamp, got %v", err)
	}

	ts := int64(math.MaxInt64) - 30000
	code, err := TOTP(key, ts, 30, 6, AlgorithmSHA1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code.ExpiresAt <= ts {
		t.Errorf("expiry %d not after timestamp %d", code.ExpiresAt, ts)
	}
}

// TestHOTPWidths checks padding for narrow and wide codes
func TestHOTPWidths(t *testing.T) {
	key := []byte(rfcSeed20)

	for _, digits := range []int{1, 6, 8, 9, 10, 12} {
		code, err := HOTP(key, 0, digits, AlgorithmSHA1)
		if err != nil {
			t.Fatalf("digits %d: unexpected error: %v", digits, err)
		}
		if len(code) != digits {
			t.Errorf("digits %d: got %q", digits, code)
		}
	}

	// counter 0 truncates to 1284755224 (RFC 4226 Appendix D)
	code, _ := HOTP(key, 0, 12, AlgorithmSHA1)
	if code != "001284755224" {
		t.Errorf("expected zero padded full value, got %s", code)
	}

	for _, digits := range []int{0, -3} {
		code, err := HOTP(key, 0, digits, AlgorithmSHA1)
		if err != nil {
			t.Fatalf("digits %d: unexpected error: %v", digits, err)
		}
		if code != "1284755224" {
			t.Errorf("digits %d: expected unreduced value, got %q", digits, code)
		}
	}

	for _, digits := range []int{65, 1 << 62} {
		code, err := HOTP(key, 0, digits, AlgorithmSHA1)
		if err != nil {
			t.Fatalf("digits %d: unexpected error: %v", digits, err)
		}
		if len(code) != 64 || !strings.HasSuffix(code, "1284755224") {
			t.Errorf("digits %d: expected 64 character padded code, got %q", digits, code)
		}
	}
}

// TestHOTPSHA384 checks the algorithm pquerna/otp does not cover
func TestHOTPSHA384(t *testing.T) {
	key := []byte(rfcSeed64[:48])

	a, err := HOTP(key, 7, 8, AlgorithmSHA384)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := HOTP(key, 7, 8, AlgorithmSHA384)
	c, _ := HOTP(key, 7, 8, AlgorithmSHA512)

	if a != b {
		t.Errorf("expected deterministic output, got %s and %s", a, b)
	}
	if a == c {
		t.Errorf("expected SHA-384 and SHA-512 codes to differ, both %s", a)
	}
}

// TestAgainstReference cross-checks the engine with github.com/pquerna/otp
func TestAgainstReference(t *testing.T) {
	const secret = "JBSWY3DPEHPK3PXP"
	key, err := DecodeKey(secret, EncodingBase32)
	if err != nil {
		t.Fatalf("DecodeKey: %v", err)
	}

	algs := []struct {
		ours   Algorithm
		theirs potp.Algorithm
	}{
		{AlgorithmSHA1, potp.AlgorithmSHA1},
		{AlgorithmSHA256, potp.AlgorithmSHA256},
		{AlgorithmSHA512, potp.AlgorithmSHA512},
	}
	digits := []struct {
		ours   int
		theirs potp.Digits
	}{
		{6, potp.DigitsSix},
		{8, potp.DigitsEight},
	}

	for _, alg := range algs {
		for _, d := range digits {
			for counter := uint64(0); counter < 20; counter++ {
				want, err := photp.GenerateCodeCustom(secret, counter, photp.ValidateOpts{
					Digits:    d.theirs,
					Algorithm: alg.theirs,
				})
				if err != nil {
					t.Fatalf("reference hotp: %v", err)
				}
				got, err := HOTP(key, counter, d.ours, alg.ours)
				if err != nil {
					t.Fatalf("HOTP: %v", err)
				}
				if got != want {
					t.Errorf("%s/%d counter %d: expected %s, got %s", alg.ours, d.ours, counter, want, got)
				}
			}

			at := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
			want, err := ptotp.GenerateCodeCustom(secret, at, ptotp.ValidateOpts{
				Period:    45,
				Digits:    d.theirs,
				Algorithm: alg.theirs,
			})
			if err != nil {
				t.Fatalf("reference totp: %v", err)
			}
			got, err := GenerateTOTP(secret, TOTPOptions{
				Digits:    d.ours,
				Algorithm: alg.ours,
				Period:    45,
				Time:      at,
			})
			if err != nil {
				t.Fatalf("GenerateTOTP: %v", err)
			}
			if got.Value != want {
				t.Errorf("%s/%d totp: expected %s, got %s", alg.ours, d.ours, want, got.Value)
			}
		}
	}
}

// TestGenerate tests the option-based and record-based entry points
func TestGenerate(t *testing.T) {
	t.Run("TOTP defaults", func(t *testing.T) {
		at := time.Unix(59, 0)
		code, err := GenerateTOTP("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", TOTPOptions{Time: at})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// last six digits of the RFC 6238 SHA-1 vector at T=59
		if code.Value != "287082" {
			t.Errorf("expected 287082, got %s", code.Value)
		}
		if code.ExpiresAt != 60000 {
			t.Errorf("expected expiry 60000, got %d", code.ExpiresAt)
		}
	})

	t.Run("HOTP hex", func(t *testing.T) {
		code, err := GenerateHOTP("3132333435363738393031323334353637383930", HOTPOptions{
			Encoding: EncodingHex,
			Counter:  9,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code != "520489" {
			t.Errorf("expected 520489, got %s", code)
		}
	})

	t.Run("record HOTP", func(t *testing.T) {
		rec := Record{
			Secret:    "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
			Algorithm: AlgorithmSHA1,
			Digits:    6,
			Params:    CounterBased{Counter: 3},
		}
		code, err := Generate(rec, time.Now())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if code.Value != "969429" || code.ExpiresAt != 0 {
			t.Errorf("unexpected code %+v", code)
		}
	})

	t.Run("record without params", func(t *testing.T) {
		_, err := Generate(Record{Secret: "GEZDGNBV", Algorithm: AlgorithmSHA1, Digits: 6}, time.Now())
		if !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("expected ErrInvalidRecord, got %v", err)
		}
	})

	t.Run("bad secret", func(t *testing.T) {
		_, err := GenerateTOTP("not base32!", TOTPOptions{})
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("expected ErrInvalidEncoding, got %v", err)
		}
	})
}
