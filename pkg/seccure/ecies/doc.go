// Package ecies implements the seccure hybrid encryption scheme.
//
// An envelope is
//
//	R (Binary point, PKLenBin bytes) ‖ ciphertext ‖ tag (MACLen bytes)
//
// where R = k·G for a fresh ephemeral exponent k. Both sides compute the
// shared point Z = (k·h)·Q = (d·h)·R, and the key block
//
//	SHA-512(X(Z) ‖ X(R) ‖ Y(R))
//
// with every coordinate Binary-encoded at ElemLenBin bytes. The first 32 bytes
// key AES-256-CTR with an all-zero initial counter block; the last 32 bytes
// key HMAC-SHA-256 over the ciphertext, truncated to MACLen bytes.
//
// Decrypt checks the tag in constant time before any plaintext is produced.
package ecies
