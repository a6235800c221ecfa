package seccure

import (
	"fmt"

	"go-simpler.org/env"

	"github.com/hsiuhsiu/seccure-go/pkg/seccure/curve"
	"github.com/hsiuhsiu/seccure-go/pkg/seccure/logging"
)

// DefaultCurve is the curve a session uses when Options.Curve is empty.
const DefaultCurve = curve.DefaultName

// Options configures a Session. Start from DefaultOptions; the zero value
// disables SecureRandom.
type Options struct {
	// Curve names the curve. Any substring of a table name selects the first
	// matching curve, so "p256" selects secp256r1. Empty means DefaultCurve.
	Curve string

	// SecureRandom draws exponents and nonces from the operating system
	// CSPRNG. When false the session uses frand, a userspace ChaCha CSPRNG
	// seeded from the operating system.
	SecureRandom bool

	// Logger receives diagnostics. Nil binds to slog.Default().
	Logger logging.Logger
}

// DefaultOptions returns the default curve with SecureRandom enabled.
func DefaultOptions() Options {
	return Options{Curve: DefaultCurve, SecureRandom: true}
}

type envOptions struct {
	Curve        string `env:"SECCURE_CURVE" default:"p160" usage:"curve name or unique substring of one"`
	SecureRandom bool   `env:"SECCURE_SECURE_RANDOM" default:"true" usage:"use the operating system random source"`
}

// OptionsFromEnv reads SECCURE_CURVE and SECCURE_SECURE_RANDOM from src, or
// from the process environment when src is nil. Unset variables keep their
// defaults.
func OptionsFromEnv(src env.Source) (Options, error) {
	var e envOptions
	cfg := &env.Options{}
	if src != nil {
		cfg.Source = src
	}
	if err := env.Load(&e, cfg); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return Options{Curve: e.Curve, SecureRandom: e.SecureRandom}, nil
}

func (o Options) curveName() string {
	if o.Curve == "" {
		return DefaultCurve
	}
	return o.Curve
}
