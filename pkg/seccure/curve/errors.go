package curve

import "errors"

var (
	// ErrUnknownCurve indicates that no registered curve matches a name or
	// an encoded public key length.
	ErrUnknownCurve = errors.New("seccure: unknown curve")

	// ErrInvalidPoint indicates a point that fails decompression or
	// validation.
	ErrInvalidPoint = errors.New("seccure: invalid point")

	// ErrInvalidParams indicates a curve definition that does not describe a
	// usable curve.
	ErrInvalidParams = errors.New("seccure: invalid curve parameters")
)
