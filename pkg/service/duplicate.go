package service

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// IsDuplicate reports whether candidate matches an existing service by name
// and issuer, compared case-insensitively, and by identical secret.
func IsDuplicate(existing []Service, candidate Service) bool {
	name := fold(candidate.Name)
	issuer := fold(candidate.OTP.Issuer)
	for _, s := range existing {
		if s.Secret == candidate.Secret && fold(s.Name) == name && fold(s.OTP.Issuer) == issuer {
			return true
		}
	}
	return false
}

// fold normalizes to NFC and applies Unicode case folding, so composed and
// decomposed accents in any letter case compare equal.
func fold(s string) string {
	// a Caser keeps state and must not be shared between goroutines
	return cases.Fold().String(norm.NFC.String(s))
}
