// Package errs holds the sentinel errors shared by the protocol packages so
// that errors.Is works the same whichever layer detected the failure.
package errs

import "errors"

var (
	// ErrInvalidArgument reports a missing or malformed argument.
	ErrInvalidArgument = errors.New("seccure: invalid argument")

	// ErrCryptoBackend reports a failure of an underlying primitive, most
	// often the random source.
	ErrCryptoBackend = errors.New("seccure: crypto backend failure")
)
