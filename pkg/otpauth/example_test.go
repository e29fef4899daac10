package otpauth_test

import (
	"fmt"
	"log"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
	"github.com/jeremyhahn/go-otpimport/pkg/otpauth"
)

func ExampleParse() {
	u, err := otpauth.Parse("otpauth://totp/ACME%20Co:john@example.com?secret=JBSWY3DPEHPK3PXP&algorithm=SHA256&period=60")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(u.Issuer)
	fmt.Println(u.Account)
	fmt.Println(u.Algorithm, u.Digits, u.Period)
	// Output:
	// ACME Co
	// john@example.com
	// SHA-256 6 60
}

func ExampleFormat() {
	rec := otp.Record{
		Label:     "Bank:vault",
		Secret:    "JBSWY3DPEHPK3PXP",
		Issuer:    "Bank",
		Algorithm: otp.AlgorithmSHA1,
		Digits:    8,
		Params:    otp.CounterBased{Counter: 5},
	}
	fmt.Println(otpauth.Format(rec))
	fmt.Println(otpauth.Format(rec, otpauth.CompactAlgorithm()))
	// Output:
	// otpauth://hotp/Bank:vault?secret=JBSWY3DPEHPK3PXP&issuer=Bank&algorithm=SHA-1&digits=8&counter=5
	// otpauth://hotp/Bank:vault?secret=JBSWY3DPEHPK3PXP&issuer=Bank&algorithm=SHA1&digits=8&counter=5
}
