// Package service converts canonical OTP records into stored services and
// runs whole-file imports.
//
// A Converter stamps each record with an identifier, a timestamp, a list
// position and a synthesized otpauth link. An Importer parses an export
// with a provider.Registry, validates every record, drops duplicates of
// already stored services and returns the rest. Imports are all or
// nothing; a failed import returns no services.
package service
