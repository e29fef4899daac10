package provider

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
)

// FavoriteMarker prefixes labels of accounts starred in LastPass.
const FavoriteMarker = "★ "

// LastPass parses LastPass Authenticator JSON exports. LastPass only stores
// time-based accounts.
type LastPass struct {
	meta
}

// NewLastPass returns the LastPass provider.
func NewLastPass() *LastPass {
	return &LastPass{meta{
		name:        "lastpass",
		displayName: "LastPass Authenticator",
		extensions:  []string{".json"},
	}}
}

type lastPassAccount struct {
	IssuerName         string `json:"issuerName"`
	OriginalIssuerName string `json:"originalIssuerName"`
	UserName           string `json:"userName"`
	OriginalUserName   string `json:"originalUserName"`
	Secret             string `json:"secret"`
	Algorithm          string `json:"algorithm"`
	Digits             int    `json:"digits"`
	TimeStep           int    `json:"timeStep"`
	IsFavorite         bool   `json:"isFavorite"`
	FolderData         *struct {
		FolderID int `json:"folderId"`
	} `json:"folderData"`
}

type lastPassFolder struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CanParse accepts a JSON object whose accounts carry the secret,
// issuerName, timeStep and folderData members LastPass writes.
func (l *LastPass) CanParse(in Input) bool {
	var accounts []map[string]any
	if !in.DecodeField("accounts", &accounts) {
		return false
	}
	for _, a := range accounts {
		if hasKeys(a, "secret", "issuerName", "timeStep", "folderData") {
			return true
		}
	}
	return false
}

// Parse converts every account with a secret. Labels take the form
// "[★ ]issuer[:user][ [folder]]".
func (l *LastPass) Parse(in Input) ([]otp.Record, error) {
	var accounts []lastPassAccount
	if !in.DecodeField("accounts", &accounts) {
		return nil, fmt.Errorf("%w: LastPass export is missing the accounts array", ErrInvalidFormat)
	}

	folders := map[int]string{}
	var fl []lastPassFolder
	if in.DecodeField("folders", &fl) {
		for _, f := range fl {
			folders[f.ID] = f.Name
		}
	}

	var records []otp.Record
	for _, a := range accounts {
		secret := strings.ReplaceAll(strings.TrimSpace(a.Secret), " ", "")
		if secret == "" {
			continue
		}

		issuer := firstNonEmpty(a.IssuerName, a.OriginalIssuerName)
		user := firstNonEmpty(a.UserName, a.OriginalUserName)

		rec := otp.Record{
			Label:     lastPassLabel(a, issuer, user, folders),
			Secret:    secret,
			Issuer:    issuer,
			Algorithm: otp.NormalizeAlgorithm(a.Algorithm),
			Digits:    otp.DefaultDigits,
			Params:    otp.TimeBased{Period: otp.DefaultPeriod},
		}
		if a.Digits > 0 {
			rec.Digits = a.Digits
		}
		if a.TimeStep > 0 {
			rec.Params = otp.TimeBased{Period: a.TimeStep}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no LastPass accounts with a secret", ErrEmptyResult)
	}
	return records, nil
}

func lastPassLabel(a lastPassAccount, issuer, user string, folders map[int]string) string {
	var b strings.Builder
	if a.IsFavorite {
		b.WriteString(FavoriteMarker)
	}
	b.WriteString(issuer)
	if user != "" {
		if issuer != "" {
			b.WriteByte(':')
		}
		b.WriteString(user)
	}
	if a.FolderData != nil {
		if name := folders[a.FolderData.FolderID]; name != "" {
			b.WriteString(" [")
			b.WriteString(name)
			b.WriteByte(']')
		}
	}
	return b.String()
}

func hasKeys(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
