// Package exponent derives secret exponents in [1, n-1].
//
// Hash turns an arbitrary secret (typically a passphrase) into an exponent:
// SHA-256 of the secret keys an AES-256-CTR keystream with an all-zero
// counter block, the first OrderLenBin keystream bytes are read as a
// big-endian integer v, and the exponent is v mod (n-1) + 1. Keys derived
// from the same passphrase agree with every other seccure implementation, so
// this construction is frozen.
//
// Random draws bits(n) bits from a CSPRNG and rejects values outside
// [1, n-1].
package exponent
