// Package logging is the diagnostic channel of the seccure engine.
//
// The engine never fails an operation because of a warning. Conditions such
// as secure memory that could not be locked into RAM, or a secure-memory pool
// that ran out of slots, are reported here and the operation continues.
//
// # Logger Interface
//
// Logger is a small context-aware facade over log/slog:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// New(nil) binds to slog.Default(). Nop discards everything and is what
// tests and quiet hosts usually want:
//
//	opts := seccure.DefaultOptions()
//	opts.Logger = logging.New(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
//
// # Secrets
//
// Exponents, passphrases and derived keys are never logged. Use Redacted
// where a log line would otherwise want to mention one:
//
//	log.Debug(ctx, "derived exponent", "curve", params.Name, logging.Redacted("exponent"))
package logging
