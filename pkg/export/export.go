// Package export writes canonical records back out in formats other
// authenticator apps import: otpauth text, Google Authenticator transfer
// URIs and QR codes.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	potp "github.com/pquerna/otp"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
	"github.com/jeremyhahn/go-otpimport/pkg/otpauth"
)

// DefaultQRSize is the QR code edge length in pixels used when size <= 0.
const DefaultQRSize = 256

// ErrNoRecords indicates an export of an empty record list.
var ErrNoRecords = errors.New("export: no records")

// Text returns one otpauth URI per line. The result can be imported again
// by the google-auth provider.
func Text(records []otp.Record) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(otpauth.Format(r))
		b.WriteByte('\n')
	}
	return b.String()
}

// GoogleMigration encodes records as one otpauth-migration URI for the
// Google Authenticator "Transfer accounts" scanner.
func GoogleMigration(records []otp.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	return otpauth.FormatMigration(records)
}

// QRCode renders the record's otpauth URI as a square QR code. The URI uses
// the compact algorithm spelling most scanner apps expect.
func QRCode(r otp.Record, size int) (image.Image, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultQRSize
	}

	key, err := potp.NewKeyFromURL(otpauth.Format(r, otpauth.CompactAlgorithm()))
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	img, err := key.Image(size, size)
	if err != nil {
		return nil, fmt.Errorf("export: qr code: %w", err)
	}
	return img, nil
}

// WritePNG writes the record's QR code to w as a PNG image.
func WritePNG(w io.Writer, r otp.Record, size int) error {
	img, err := QRCode(r, size)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: png: %w", err)
	}
	return nil
}
