package seccure

var (
	// Version is set at build time via ldflags.
	Version = "v0.0.0-in-progress"

	// WireFormat names the encoding family the library interoperates with.
	WireFormat = "seccure-0.5"
)

// KeyDerivationVersion identifies the passphrase-to-exponent construction.
// Keys derived under one version are not reproducible under another.
const KeyDerivationVersion = 1

// LibraryVersion returns the semantic version populated at build time. In
// development it defaults to v0.0.0-in-progress.
func LibraryVersion() string {
	return Version
}
