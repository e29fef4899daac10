// Package provider imports OTP accounts from the export files of other
// authenticator apps.
//
// Each supported app is a Provider with a cheap detection heuristic
// (CanParse) and a parser (Parse) that yields canonical otp.Records. A
// Registry holds providers in detection order:
//
//	reg, err := provider.NewRegistry(provider.Config{})
//	if err != nil {
//	    return err
//	}
//	res, err := reg.ParseAuto(data)
//	if err != nil {
//	    var derr *provider.DetectionError
//	    if errors.As(err, &derr) {
//	        // ask the user to choose a provider, then call reg.ParseWith
//	    }
//	    return err
//	}
//	fmt.Println(res.Provider, len(res.Records))
//
// # Built-in Providers
//
//   - ente: Ente Auth plain-text export. Trashed entries are skipped and
//     tags are appended to labels. Encrypted exports fail with
//     ErrUnsupportedExportFormat.
//   - google-auth: otpauth lines, otpauth-migration transfer URIs, or JSON
//     with an accounts array.
//   - 2fas: 2FAS JSON backups (TOTP and HOTP) or otpauth lines.
//   - bitwarden: vault export as JSON or CSV. Only TOTP is imported.
//   - lastpass: LastPass Authenticator JSON. Favorites get FavoriteMarker
//     and folders are appended to labels.
//   - authy, microsoft: registered placeholders returning ErrNotImplemented.
//
// # Detection
//
// ParseAuto decodes JSON once and passes the same Input to every provider.
// When a provider claims the data but fails to parse it, the next provider
// is tried. Errors wrapping ErrUnsupportedExportFormat or ErrTrashedOnly
// end detection immediately because they identify the format with
// certainty.
//
// # Thread Safety
//
// Providers are stateless. Registry methods may be called concurrently,
// including Register.
package provider
