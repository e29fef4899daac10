// Package otp computes HOTP (RFC 4226) and TOTP (RFC 6238) codes and defines
// the canonical Record shared by the import and export packages.
//
// The engine is a set of pure functions: HOTP and TOTP take raw key bytes,
// DecodeKey produces them from a hex, ASCII or Base32 secret, and
// GenerateTOTP / GenerateHOTP combine both steps with defaulted options.
//
// # TOTP Example
//
//	code, err := otp.GenerateTOTP("JBSWY3DPEHPK3PXP", otp.TOTPOptions{
//	    Digits:    6,
//	    Algorithm: otp.AlgorithmSHA1,
//	    Period:    30,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(code.Value, time.UnixMilli(code.ExpiresAt))
//
// # HOTP Example
//
//	code, err := otp.GenerateHOTP("3132333435363738393031323334353637383930", otp.HOTPOptions{
//	    Encoding: otp.EncodingHex,
//	    Counter:  1,
//	})
//	// code == "287082"
//
// # Records
//
// A Record is either time-based or counter-based. The kind-specific fields
// live in Params, which is TimeBased{Period} or CounterBased{Counter}:
//
//	rec := otp.Record{
//	    Label:     "ACME:alice@example.com",
//	    Issuer:    "ACME",
//	    Secret:    "JBSWY3DPEHPK3PXP",
//	    Algorithm: otp.AlgorithmSHA256,
//	    Digits:    8,
//	    Params:    otp.TimeBased{Period: 30},
//	}
//	code, err := otp.Generate(rec, time.Now())
//
// # Verifying Codes
//
// Authenticator checks a user-supplied code against a record, tolerating
// clock skew for TOTP and advancing the counter for HOTP:
//
//	auth, err := otp.NewAuthenticator(otp.Config{Record: rec, Skew: 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := auth.Authenticate(ctx, "123456"); err != nil {
//	    log.Printf("code rejected: %v", err)
//	}
//
// # Hash Algorithms
//
// SHA-1, SHA-256, SHA-384 and SHA-512 are supported. ParseAlgorithm is strict
// and returns ErrUnsupportedAlgorithm; NormalizeAlgorithm is the lenient form
// used for export files and falls back to SHA-1.
//
// # Thread Safety
//
// Every function in this package is free of shared state. Authenticator is
// immutable after construction and safe for concurrent use.
package otp
