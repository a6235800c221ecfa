package seccure

import (
	"errors"
	"fmt"

	"github.com/hsiuhsiu/seccure-go/internal/errs"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/codec"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/ecies"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/exponent"
)

var (
	// ErrInvalidArgument indicates a missing or malformed argument.
	ErrInvalidArgument = errs.ErrInvalidArgument

	// ErrCryptoBackend indicates a failure of an underlying primitive.
	ErrCryptoBackend = errs.ErrCryptoBackend

	// ErrUninitializedSession indicates use of a nil or closed session.
	ErrUninitializedSession = errors.New("seccure: session not initialized")

	// ErrSessionClosed is returned by Close on a session that is already
	// closed.
	ErrSessionClosed = errors.New("seccure: session closed")

	// ErrUnknownCurve indicates that no curve matches a name or key length.
	ErrUnknownCurve = curve.ErrUnknownCurve

	// ErrInvalidPoint indicates a key or ephemeral point that fails
	// decompression or validation.
	ErrInvalidPoint = curve.ErrInvalidPoint

	// ErrDeserialization indicates malformed encoded input.
	ErrDeserialization = codec.ErrDeserialization

	// ErrBufferTooSmall indicates a value that does not fit its field.
	ErrBufferTooSmall = codec.ErrBufferTooSmall

	// ErrRandomExhausted indicates that sampling an exponent kept failing.
	ErrRandomExhausted = exponent.ErrRandomExhausted

	// ErrTruncated indicates an envelope too short to hold a key and tag.
	ErrTruncated = ecies.ErrTruncated

	// ErrAuthentication indicates an envelope whose tag does not verify.
	ErrAuthentication = ecies.ErrAuthentication

	// ErrInvalidSignature indicates a signature that does not verify.
	ErrInvalidSignature = errors.New("seccure: invalid signature")

	// ErrKeyReleased indicates use of a key pair or agreement after Free.
	ErrKeyReleased = errors.New("seccure: key material released")
)

// Error records the operation that failed along with the cause.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("seccure.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Op: op, Err: err}
}

func errorf(op string, format string, args ...any) error {
	return &Error{Op: op, Err: fmt.Errorf(format, args...)}
}
